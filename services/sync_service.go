package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/utils"

	"gorm.io/gorm"
)

// StepProvider is the contract the sync flow needs from the external
// step-count source.
type StepProvider interface {
	FetchDailySteps(accessToken string, start, end time.Time) ([]StepBucket, error)
	RefreshAccessToken(refreshToken string) (string, time.Time, error)
}

// SyncService reconciles provider step buckets into DailySummary rows. The
// provider is authoritative for any day it covers: steps are overwritten,
// not incremented, which also makes re-syncing a window idempotent.
type SyncService struct {
	db        *gorm.DB
	provider  StepProvider
	summaries *SummaryService
	offsetMin int
	now       func() time.Time
}

func NewSyncService(db *gorm.DB, provider StepProvider, summaries *SummaryService, offsetMin int) *SyncService {
	return &SyncService{
		db:        db,
		provider:  provider,
		summaries: summaries,
		offsetMin: offsetMin,
		now:       time.Now,
	}
}

type ConnectInput struct {
	Provider     string    `json:"provider"`
	AccessToken  string    `json:"access_token" binding:"required"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Connect stores (or replaces) the user's provider credential.
func (s *SyncService) Connect(userID uint, in ConnectInput) error {
	if in.Provider == "" {
		in.Provider = "google_fit"
	}

	var tok models.FitnessToken
	err := s.db.Where("user_id = ?", userID).First(&tok).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tok = models.FitnessToken{
			UserID:       userID,
			Provider:     in.Provider,
			AccessToken:  in.AccessToken,
			RefreshToken: in.RefreshToken,
			ExpiresAt:    in.ExpiresAt,
		}
		return s.db.Create(&tok).Error
	}
	if err != nil {
		return err
	}

	tok.Provider = in.Provider
	tok.AccessToken = in.AccessToken
	if in.RefreshToken != "" {
		tok.RefreshToken = in.RefreshToken
	}
	tok.ExpiresAt = in.ExpiresAt
	return s.db.Save(&tok).Error
}

type SyncResult struct {
	Today      string               `json:"today"`
	TodaySteps int                  `json:"today_steps"`
	DaysSynced int                  `json:"days_synced"`
	Summary    *models.DailySummary `json:"summary"`
}

// Sync pulls the last 7 calendar days of step buckets (today plus the six
// preceding days, in the target offset) and overwrite-upserts each day's
// steps. An expired or rejected credential is refreshed once and the fetch
// retried once; a second rejection surfaces as a sync failure.
func (s *SyncService) Sync(userID uint) (*SyncResult, error) {
	var tok models.FitnessToken
	if err := s.db.Where("user_id = ?", userID).First(&tok).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotConnected
		}
		return nil, err
	}

	now := s.now()
	loc := utils.ZoneForOffset(s.offsetMin)
	local := now.In(loc)
	startOfToday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	windowStart := startOfToday.AddDate(0, 0, -6)
	windowEnd := startOfToday.AddDate(0, 0, 1)

	refreshed := false
	if !tok.ExpiresAt.IsZero() && now.After(tok.ExpiresAt) {
		if err := s.refresh(&tok); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
		}
		refreshed = true
	}

	buckets, err := s.provider.FetchDailySteps(tok.AccessToken, windowStart, windowEnd)
	if err != nil && errors.Is(err, ErrProviderAuth) && !refreshed {
		if rerr := s.refresh(&tok); rerr != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyncFailed, rerr)
		}
		buckets, err = s.provider.FetchDailySteps(tok.AccessToken, windowStart, windowEnd)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	today := utils.TodayInZone(s.offsetMin, now)
	todaySteps := 0
	for _, b := range buckets {
		// The bucket's calendar day is taken in the target offset; a UTC
		// date here is off by one for buckets near midnight.
		date := utils.DateKeyInZone(b.Start, s.offsetMin)
		if _, err := s.summaries.SetSteps(userID, date, b.Steps, models.StepsSynced); err != nil {
			return nil, err
		}
		if date == today {
			todaySteps = b.Steps
		}
	}

	summary, err := s.summaries.GetOrCreate(userID, today)
	if err != nil {
		return nil, err
	}

	return &SyncResult{
		Today:      today,
		TodaySteps: todaySteps,
		DaysSynced: len(buckets),
		Summary:    summary,
	}, nil
}

// refresh exchanges the stored refresh token and persists the new access
// token before any retry.
func (s *SyncService) refresh(tok *models.FitnessToken) error {
	if tok.RefreshToken == "" {
		return errors.New("no refresh token stored")
	}
	access, expiry, err := s.provider.RefreshAccessToken(tok.RefreshToken)
	if err != nil {
		return err
	}
	tok.AccessToken = access
	tok.ExpiresAt = expiry
	return s.db.Save(tok).Error
}
