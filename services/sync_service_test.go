package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStepProvider struct {
	buckets      []StepBucket
	authFailures int
	refreshErr   error

	fetchCalls   int
	refreshCalls int
	lastToken    string
	lastStart    time.Time
	lastEnd      time.Time
}

func (f *fakeStepProvider) FetchDailySteps(accessToken string, start, end time.Time) ([]StepBucket, error) {
	f.fetchCalls++
	f.lastToken = accessToken
	f.lastStart = start
	f.lastEnd = end
	if f.authFailures > 0 {
		f.authFailures--
		return nil, fmt.Errorf("%w: rejected", ErrProviderAuth)
	}
	return f.buckets, nil
}

func (f *fakeStepProvider) RefreshAccessToken(refreshToken string) (string, time.Time, error) {
	f.refreshCalls++
	if f.refreshErr != nil {
		return "", time.Time{}, f.refreshErr
	}
	return "fresh-token", time.Now().Add(time.Hour), nil
}

func TestSyncWithoutConnection(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewSyncService(db, &fakeStepProvider{}, newTestSummaryService(db), testOffsetMin)

	_, err := svc.Sync(user.ID)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestSyncBucketsLandOnLocalDays(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	sums := newTestSummaryService(db)
	provider := &fakeStepProvider{buckets: []StepBucket{
		// Bucket starts are provider instants at local midnight, which in UTC
		// sit on the previous calendar day.
		{Start: instantInZone("2024-03-01", 0).UTC(), Steps: 7000},
		{Start: instantInZone("2024-03-02", 0).UTC(), Steps: 0},
		{Start: instantInZone("2024-03-03", 0).UTC(), Steps: 4321},
	}}
	svc := NewSyncService(db, provider, sums, testOffsetMin)
	svc.now = func() time.Time { return instantInZone("2024-03-03", 12) }

	require.NoError(t, svc.Connect(user.ID, ConnectInput{AccessToken: "tok"}))

	result, err := svc.Sync(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-03", result.Today)
	assert.Equal(t, 4321, result.TodaySteps)
	assert.Equal(t, 3, result.DaysSynced)
	assert.Equal(t, 4321, result.Summary.Steps)

	// The window covers today plus the six preceding local days.
	assert.True(t, provider.lastStart.Equal(instantInZone("2024-02-26", 0)))
	assert.Equal(t, 7*24*time.Hour, provider.lastEnd.Sub(provider.lastStart))

	first, err := sums.GetOrCreate(user.ID, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 7000, first.Steps)
	assert.Equal(t, models.StepsSynced, first.StepsSource)

	// A zero bucket still materializes a row so the day reads as synced-empty.
	empty, err := sums.GetOrCreate(user.ID, "2024-03-02")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Steps)
	assert.Equal(t, models.StepsSynced, empty.StepsSource)
}

func TestSyncOverwritesManualSteps(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	sums := newTestSummaryService(db)
	provider := &fakeStepProvider{buckets: []StepBucket{
		{Start: instantInZone("2024-03-03", 0).UTC(), Steps: 8800},
	}}
	svc := NewSyncService(db, provider, sums, testOffsetMin)
	svc.now = func() time.Time { return instantInZone("2024-03-03", 12) }

	_, err := sums.SetSteps(user.ID, "2024-03-03", 1234, models.StepsManual)
	require.NoError(t, err)
	require.NoError(t, svc.Connect(user.ID, ConnectInput{AccessToken: "tok"}))

	// Re-syncing is idempotent: the provider figure wins every time.
	for i := 0; i < 2; i++ {
		result, err := svc.Sync(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 8800, result.TodaySteps)
	}

	sum, err := sums.GetOrCreate(user.ID, "2024-03-03")
	require.NoError(t, err)
	assert.Equal(t, 8800, sum.Steps)
	assert.Equal(t, models.StepsSynced, sum.StepsSource)
}

func TestSyncRefreshesOnceOnAuthRejection(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	provider := &fakeStepProvider{
		authFailures: 1,
		buckets: []StepBucket{
			{Start: instantInZone("2024-03-03", 0).UTC(), Steps: 100},
		},
	}
	svc := NewSyncService(db, provider, newTestSummaryService(db), testOffsetMin)
	svc.now = func() time.Time { return instantInZone("2024-03-03", 12) }

	require.NoError(t, svc.Connect(user.ID, ConnectInput{
		AccessToken: "stale", RefreshToken: "refresh",
	}))

	result, err := svc.Sync(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DaysSynced)
	assert.Equal(t, 1, provider.refreshCalls)
	assert.Equal(t, 2, provider.fetchCalls)
	assert.Equal(t, "fresh-token", provider.lastToken)

	// The refreshed credential was persisted for the next sync.
	var tok models.FitnessToken
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&tok).Error)
	assert.Equal(t, "fresh-token", tok.AccessToken)
}

func TestSyncFailsWhenRefreshDoesNotHelp(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	provider := &fakeStepProvider{authFailures: 2}
	svc := NewSyncService(db, provider, newTestSummaryService(db), testOffsetMin)
	svc.now = func() time.Time { return instantInZone("2024-03-03", 12) }

	require.NoError(t, svc.Connect(user.ID, ConnectInput{
		AccessToken: "stale", RefreshToken: "refresh",
	}))

	_, err := svc.Sync(user.ID)
	assert.ErrorIs(t, err, ErrSyncFailed)
	assert.Equal(t, 1, provider.refreshCalls)
	assert.Equal(t, 2, provider.fetchCalls)
}

func TestSyncRefreshesExpiredTokenUpfront(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	provider := &fakeStepProvider{buckets: []StepBucket{
		{Start: instantInZone("2024-03-03", 0).UTC(), Steps: 50},
	}}
	svc := NewSyncService(db, provider, newTestSummaryService(db), testOffsetMin)
	svc.now = func() time.Time { return instantInZone("2024-03-03", 12) }

	require.NoError(t, svc.Connect(user.ID, ConnectInput{
		AccessToken: "expired", RefreshToken: "refresh",
		ExpiresAt: instantInZone("2024-03-01", 0),
	}))

	_, err := svc.Sync(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.refreshCalls)
	assert.Equal(t, 1, provider.fetchCalls)
	assert.Equal(t, "fresh-token", provider.lastToken)
}

func TestSyncWithoutRefreshTokenSurfacesFailure(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	provider := &fakeStepProvider{authFailures: 1}
	svc := NewSyncService(db, provider, newTestSummaryService(db), testOffsetMin)
	svc.now = func() time.Time { return instantInZone("2024-03-03", 12) }

	require.NoError(t, svc.Connect(user.ID, ConnectInput{AccessToken: "stale"}))

	_, err := svc.Sync(user.ID)
	assert.ErrorIs(t, err, ErrSyncFailed)
	assert.Zero(t, provider.refreshCalls)
}

func TestConnectReplacesCredential(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewSyncService(db, &fakeStepProvider{}, newTestSummaryService(db), testOffsetMin)

	require.NoError(t, svc.Connect(user.ID, ConnectInput{
		AccessToken: "first", RefreshToken: "refresh-1",
	}))
	// A reconnect without a refresh token keeps the stored one.
	require.NoError(t, svc.Connect(user.ID, ConnectInput{AccessToken: "second"}))

	var tok models.FitnessToken
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&tok).Error)
	assert.Equal(t, "second", tok.AccessToken)
	assert.Equal(t, "refresh-1", tok.RefreshToken)
	assert.Equal(t, "google_fit", tok.Provider)

	var count int64
	db.Model(&models.FitnessToken{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}
