package utils

import (
	"fmt"
	"time"
)

// DateKeyLayout is the canonical YYYY-MM-DD form used to key DailySummary
// rows.
const DateKeyLayout = "2006-01-02"

// ZoneForOffset builds a fixed-offset zone from minutes east of UTC.
func ZoneForOffset(offsetMin int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d:%02d", offsetMin/60, abs(offsetMin%60)), offsetMin*60)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// DateKeyInZone converts an instant to its calendar date in the target
// offset. Every day-bucketing decision in the codebase goes through here;
// deriving a date from the UTC clock near midnight is off by one day for
// non-UTC zones.
func DateKeyInZone(t time.Time, offsetMin int) string {
	return t.In(ZoneForOffset(offsetMin)).Format(DateKeyLayout)
}

// TodayInZone returns today's date key in the target offset.
func TodayInZone(offsetMin int, now time.Time) string {
	return DateKeyInZone(now, offsetMin)
}

// ParseDateKey validates a YYYY-MM-DD string.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateKeyLayout, key)
}

// DayBoundsInZone returns the [start, end) instants of a calendar date in
// the target offset.
func DayBoundsInZone(key string, offsetMin int) (time.Time, time.Time, error) {
	loc := ZoneForOffset(offsetMin)
	start, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

// AddDaysToKey shifts a date key by n calendar days.
func AddDaysToKey(key string, n int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateKeyLayout), nil
}

// DaysBetweenKeys returns b − a in whole calendar days. Both keys must be
// valid; invalid input returns 0.
func DaysBetweenKeys(a, b string) int {
	ta, err := ParseDateKey(a)
	if err != nil {
		return 0
	}
	tb, err := ParseDateKey(b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}
