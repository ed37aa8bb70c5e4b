package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStreak(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	day := func(offset int) *time.Time {
		d := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
		return &d
	}

	tests := []struct {
		name        string
		current     int
		lastActive  *time.Time
		wantStreak  int
		wantOutcome string
	}{
		{"first activity", 0, nil, 1, StreakStarted},
		{"yesterday extends", 4, day(-1), 5, StreakExtended},
		{"same day holds", 4, day(0), 4, StreakUnchanged},
		{"two days ago resets", 4, day(-2), 1, StreakReset},
		{"long gap resets", 9, day(-30), 1, StreakReset},
		{"future date holds", 3, day(1), 3, StreakUnchanged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak, today, outcome := NextStreak(tt.current, tt.lastActive, now, time.UTC)
			assert.Equal(t, tt.wantStreak, streak)
			assert.Equal(t, tt.wantOutcome, outcome)
			assert.True(t, today.Equal(*day(0)))
		})
	}
}

func TestNextStreakUsesLocationCalendar(t *testing.T) {
	istanbul := time.FixedZone("TRT", 3*60*60)
	// 22:30 UTC on the 9th is already the 10th in Istanbul.
	now := time.Date(2024, 3, 9, 22, 30, 0, 0, time.UTC)
	last := time.Date(2024, 3, 9, 0, 0, 0, 0, istanbul)

	streak, today, outcome := NextStreak(2, &last, now, istanbul)
	assert.Equal(t, 3, streak)
	assert.Equal(t, StreakExtended, outcome)
	assert.Equal(t, 10, today.Day())
}

func TestRecordActivityConsecutiveDays(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "Ayşe", "ayse@example.com")
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		streak, err := env.svc.Streaks.RecordActivity(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, i, streak)
		env.clock.AdvanceDays(1)
	}
	assert.Equal(t, 5, env.user(t, u.ID).CurrentStreak)
}

func TestRecordActivityGapResets(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "Ayşe", "ayse@example.com")
	ctx := context.Background()

	_, err := env.svc.Streaks.RecordActivity(ctx, u.ID)
	require.NoError(t, err)
	env.clock.AdvanceDays(1)
	_, err = env.svc.Streaks.RecordActivity(ctx, u.ID)
	require.NoError(t, err)

	env.clock.AdvanceDays(2)
	streak, err := env.svc.Streaks.RecordActivity(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestRecordActivitySameDayIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "Ayşe", "ayse@example.com")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		streak, err := env.svc.Streaks.RecordActivity(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, streak)
	}
	got := env.user(t, u.ID)
	require.NotNil(t, got.LastActiveDate)
	assert.True(t, got.LastActiveDate.Equal(CalendarDay(env.clock.Now(), time.UTC)))
}

func TestRecordActivityConcurrentSameDay(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "Ayşe", "ayse@example.com")
	ctx := context.Background()

	// Yesterday's activity; today's concurrent calls may extend it only once.
	_, err := env.svc.Streaks.RecordActivity(ctx, u.ID)
	require.NoError(t, err)
	env.clock.AdvanceDays(1)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			env.svc.Streaks.Touch(ctx, u.ID)
		}()
	}
	wg.Wait()
	assert.Equal(t, 2, env.user(t, u.ID).CurrentStreak)
}

func TestTouchSwallowsErrors(t *testing.T) {
	env := newTestEnv(t)
	assert.NotPanics(t, func() {
		env.svc.Streaks.Touch(context.Background(), "missing")
	})
}

func TestStreakSet(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "Ayşe", "ayse@example.com")
	require.NoError(t, env.svc.Streaks.Set(context.Background(), u.ID, 12))

	env.clock.AdvanceDays(1)
	streak, err := env.svc.Streaks.RecordActivity(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 13, streak)
}
