package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"healthtrack-server/models"
	"healthtrack-server/store"
	"healthtrack-server/utils/errors"
)

var (
	ErrExerciseNotFound       = errors.ErrNotFound.WithMessage("Egzersiz kaydı bulunamadı veya yetkiniz yok")
	ErrExerciseDeleteNotFound = errors.ErrNotFound.WithMessage("Egzersiz kaydı bulunamadı veya bu kaydı silme yetkiniz yok")
	ErrInvalidDuration        = errors.ErrInvalidInput.WithMessage("Süre pozitif olmalıdır")
)

// ExerciseService manages exercise logs. Creating one awards its points but
// does not count toward the activity streak.
type ExerciseService struct {
	exercises store.Exercises
	points    *PointsLedger
	now       Clock
	log       *zap.Logger
}

func NewExerciseService(exercises store.Exercises, points *PointsLedger, now Clock, log *zap.Logger) *ExerciseService {
	return &ExerciseService{exercises: exercises, points: points, now: now, log: log}
}

func (s *ExerciseService) Create(ctx context.Context, userID string, req models.CreateExerciseRequest) (*models.Exercise, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Type) == "" || req.Duration == 0 {
		return nil, ErrMissingFields
	}
	if req.Duration < 0 {
		return nil, ErrInvalidDuration
	}

	now := s.now()
	ex := &models.Exercise{
		UserID:    userID,
		Name:      req.Name,
		Type:      req.Type,
		Duration:  req.Duration,
		Date:      now,
		Notes:     req.Notes,
		Points:    DefaultExercisePoints,
		CreatedAt: now,
	}
	if req.Date != nil {
		ex.Date = *req.Date
	}
	if req.Points != nil {
		ex.Points = *req.Points
	}
	if err := s.exercises.Create(ctx, ex); err != nil {
		return nil, errors.Internal(err)
	}

	s.points.Award(ctx, userID, ActionExerciseCreate, ex.Points)
	return ex, nil
}

func (s *ExerciseService) List(ctx context.Context, userID string) ([]models.Exercise, error) {
	list, err := s.exercises.List(ctx, userID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return list, nil
}

func (s *ExerciseService) Update(ctx context.Context, userID, id string, req models.UpdateExerciseRequest) (*models.Exercise, error) {
	if req.Duration != nil && *req.Duration <= 0 {
		return nil, ErrInvalidDuration
	}
	ex, err := s.exercises.Update(ctx, userID, id, req)
	if err != nil {
		return nil, recordError(err, ErrExerciseNotFound)
	}
	return ex, nil
}

func (s *ExerciseService) Delete(ctx context.Context, userID, id string) error {
	if err := s.exercises.Delete(ctx, userID, id); err != nil {
		return recordError(err, ErrExerciseDeleteNotFound)
	}
	return nil
}
