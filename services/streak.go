package services

import (
	"context"
	stderrors "errors"
	"time"

	"go.uber.org/zap"

	"healthtrack-server/store"
	"healthtrack-server/utils/metrics"
)

const (
	StreakStarted   = "started"
	StreakExtended  = "extended"
	StreakReset     = "reset"
	StreakUnchanged = "unchanged"

	maxStreakAttempts = 3
)

var errStreakContended = stderrors.New("streak: too many concurrent updates")

// NextStreak computes the streak after an activity at now. The returned day is
// today's calendar date in loc and is always what gets persisted.
func NextStreak(current int, lastActive *time.Time, now time.Time, loc *time.Location) (int, time.Time, string) {
	today := CalendarDay(now, loc)
	if lastActive == nil {
		return 1, today, StreakStarted
	}
	last := CalendarDay(*lastActive, loc)
	yesterday := today.AddDate(0, 0, -1)

	switch {
	case !last.Before(today):
		return current, today, StreakUnchanged
	case last.Equal(yesterday):
		return current + 1, today, StreakExtended
	default:
		return 1, today, StreakReset
	}
}

// StreakTracker keeps the consecutive-day activity counter on users.
type StreakTracker struct {
	users   store.Users
	now     Clock
	loc     *time.Location
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewStreakTracker(users store.Users, now Clock, loc *time.Location, log *zap.Logger, m *metrics.Metrics) *StreakTracker {
	return &StreakTracker{users: users, now: now, loc: loc, log: log, metrics: m}
}

// RecordActivity applies one activity for userID at the server's current
// time and returns the resulting streak. The write is conditional on the
// lastActiveDate that was read, so concurrent same-day calls cannot both
// extend the streak.
func (t *StreakTracker) RecordActivity(ctx context.Context, userID string) (int, error) {
	for attempt := 0; attempt < maxStreakAttempts; attempt++ {
		u, err := t.users.GetByID(ctx, userID)
		if err != nil {
			return 0, err
		}
		streak, today, outcome := NextStreak(u.CurrentStreak, u.LastActiveDate, t.now(), t.loc)
		err = t.users.SetStreak(ctx, userID, u.LastActiveDate, streak, today)
		if err == nil {
			t.metrics.StreakUpdated(outcome)
			t.log.Debug("streak_updated",
				zap.String("user_id", userID),
				zap.String("outcome", outcome),
				zap.Int("streak", streak),
			)
			return streak, nil
		}
		if !stderrors.Is(err, store.ErrConflict) {
			return 0, err
		}
	}
	return 0, errStreakContended
}

// Touch records activity as a side effect of another action. Failures are
// logged and counted but never returned.
func (t *StreakTracker) Touch(ctx context.Context, userID string) {
	if _, err := t.RecordActivity(ctx, userID); err != nil {
		t.metrics.SideEffectFailed("streak")
		t.log.Warn("streak_update_failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// Set forces the streak to value with today as the last active day. Used
// when loading fixtures.
func (t *StreakTracker) Set(ctx context.Context, userID string, value int) error {
	for attempt := 0; attempt < maxStreakAttempts; attempt++ {
		u, err := t.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		err = t.users.SetStreak(ctx, userID, u.LastActiveDate, value, CalendarDay(t.now(), t.loc))
		if !stderrors.Is(err, store.ErrConflict) {
			return err
		}
	}
	return errStreakContended
}
