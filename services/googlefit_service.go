package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// GoogleFitService talks to the Google Fit REST API: the dataset aggregate
// endpoint for day-bucketed step counts, and the OAuth token endpoint for
// refreshing an expired access token. The OAuth consent dance itself happens
// on the client; we only ever see issued tokens.
type GoogleFitService struct {
	clientID     string
	clientSecret string
	baseURL      string
	tokenURL     string
	client       *http.Client
}

func NewGoogleFitService() *GoogleFitService {
	return &GoogleFitService{
		clientID:     os.Getenv("GOOGLE_FIT_CLIENT_ID"),
		clientSecret: os.Getenv("GOOGLE_FIT_CLIENT_SECRET"),
		baseURL:      "https://www.googleapis.com/fitness/v1",
		tokenURL:     "https://oauth2.googleapis.com/token",
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// StepBucket is one provider day bucket: its start instant and the summed
// step count of every point inside it.
type StepBucket struct {
	Start time.Time
	Steps int
}

type aggregateRequest struct {
	AggregateBy     []aggregateBy `json:"aggregateBy"`
	BucketByTime    bucketByTime  `json:"bucketByTime"`
	StartTimeMillis int64         `json:"startTimeMillis"`
	EndTimeMillis   int64         `json:"endTimeMillis"`
}

type aggregateBy struct {
	DataTypeName string `json:"dataTypeName"`
}

type bucketByTime struct {
	DurationMillis int64 `json:"durationMillis"`
}

type aggregateResponse struct {
	Bucket []struct {
		StartTimeMillis string `json:"startTimeMillis"`
		Dataset         []struct {
			Point []struct {
				Value []struct {
					IntVal json.Number `json:"intVal"`
					FpVal  json.Number `json:"fpVal"`
				} `json:"value"`
			} `json:"point"`
		} `json:"dataset"`
	} `json:"bucket"`
}

// FetchDailySteps queries day-granularity step buckets for [start, end).
// A point whose value doesn't parse contributes 0 rather than failing the
// whole sync; buckets with no points still come back with Steps 0.
func (s *GoogleFitService) FetchDailySteps(accessToken string, start, end time.Time) ([]StepBucket, error) {
	reqBody := aggregateRequest{
		AggregateBy:     []aggregateBy{{DataTypeName: "com.google.step_count.delta"}},
		BucketByTime:    bucketByTime{DurationMillis: 24 * 60 * 60 * 1000},
		StartTimeMillis: start.UnixMilli(),
		EndTimeMillis:   end.UnixMilli(),
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/users/me/dataset:aggregate", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Google Fit aggregate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Google Fit response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: aggregate returned %d", ErrProviderAuth, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google fit aggregate error %d: %s", resp.StatusCode, string(body))
	}

	var ar aggregateResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, fmt.Errorf("failed to parse Google Fit JSON: %w", err)
	}

	buckets := make([]StepBucket, 0, len(ar.Bucket))
	for _, b := range ar.Bucket {
		startMillis, err := strconv.ParseInt(b.StartTimeMillis, 10, 64)
		if err != nil {
			continue
		}
		total := 0
		for _, ds := range b.Dataset {
			for _, p := range ds.Point {
				for _, v := range p.Value {
					if n, err := v.IntVal.Int64(); err == nil {
						total += int(n)
					} else if f, err := v.FpVal.Float64(); err == nil {
						total += int(f)
					}
				}
			}
		}
		buckets = append(buckets, StepBucket{
			Start: time.UnixMilli(startMillis).UTC(),
			Steps: total,
		})
	}
	return buckets, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// RefreshAccessToken exchanges a refresh token for a fresh access token.
func (s *GoogleFitService) RefreshAccessToken(refreshToken string) (string, time.Time, error) {
	form := url.Values{
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
		"refresh_token": {refreshToken},
		"grant_type":    {"refresh_token"},
	}

	resp, err := s.client.PostForm(s.tokenURL, form)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to call token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("%w: token endpoint returned %d: %s", ErrProviderAuth, resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to parse token JSON: %w", err)
	}
	return tr.AccessToken, time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second), nil
}
