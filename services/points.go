package services

import (
	"context"

	"go.uber.org/zap"

	"healthtrack-server/models"
	"healthtrack-server/store"
	"healthtrack-server/utils/metrics"
)

// Point actions and their fixed deltas. Exercise creation uses the
// caller-supplied amount when present.
const (
	ActionHealthCreate     = "health_create"
	ActionExerciseCreate   = "exercise_create"
	ActionMedicationCreate = "medication_create"
	ActionMedicationEdit   = "medication_edit"
	ActionMedicationDelete = "medication_delete"
	ActionManual           = "manual"

	HealthCreatePoints     = 5
	DefaultExercisePoints  = 10
	MedicationCreatePoints = 5
	MedicationEditPoints   = 2
	MedicationDeletePoints = -1
)

// PointsLedger applies signed deltas to user points with a single atomic
// increment per call. No floor or ceiling is enforced.
type PointsLedger struct {
	users   store.Users
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewPointsLedger(users store.Users, log *zap.Logger, m *metrics.Metrics) *PointsLedger {
	return &PointsLedger{users: users, log: log, metrics: m}
}

func (l *PointsLedger) Adjust(ctx context.Context, userID, action string, delta int) (*models.User, error) {
	u, err := l.users.IncrementPoints(ctx, userID, delta)
	if err != nil {
		return nil, err
	}
	l.metrics.PointsAdjusted(action, delta)
	l.log.Debug("points_adjusted",
		zap.String("user_id", userID),
		zap.String("action", action),
		zap.Int("delta", delta),
		zap.Int("points", u.Points),
	)
	return u, nil
}

// Award adjusts points as a side effect of another action. Failures are
// logged and counted but never returned.
func (l *PointsLedger) Award(ctx context.Context, userID, action string, delta int) {
	if _, err := l.Adjust(ctx, userID, action, delta); err != nil {
		l.metrics.SideEffectFailed("points")
		l.log.Warn("points_award_failed",
			zap.String("user_id", userID),
			zap.String("action", action),
			zap.Int("delta", delta),
			zap.Error(err),
		)
	}
}
