// Package services holds the application logic between the HTTP handlers
// and the store: authentication, gamification (points, streaks, rankings),
// the friend request state machine and the record CRUD flows.
package services

import (
	"time"

	"go.uber.org/zap"

	"healthtrack-server/store"
	"healthtrack-server/utils/metrics"
)

type Config struct {
	JWTSecret     string
	JWTExpiration time.Duration
	Location      *time.Location
	Now           Clock
	Cache         UserCache
}

// Services is the wired set used by the router and the seed command.
type Services struct {
	Auth        *AuthService
	Users       *UserService
	Friends     *FriendService
	Points      *PointsLedger
	Streaks     *StreakTracker
	Health      *HealthService
	Exercises   *ExerciseService
	Medications *MedicationService
}

func New(st *store.Store, cfg Config, log *zap.Logger, m *metrics.Metrics) *Services {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	users := WithUserCache(st.Users, cfg.Cache)

	points := NewPointsLedger(users, log, m)
	streaks := NewStreakTracker(users, now, loc, log, m)
	return &Services{
		Auth:        NewAuthService(users, cfg.JWTSecret, cfg.JWTExpiration, now, log),
		Users:       NewUserService(users, points, log),
		Friends:     NewFriendService(users, now, log, m),
		Points:      points,
		Streaks:     streaks,
		Health:      NewHealthService(st.HealthRecords, points, streaks, now, log),
		Exercises:   NewExerciseService(st.Exercises, points, now, log),
		Medications: NewMedicationService(st.Medications, points, streaks, now, log),
	}
}
