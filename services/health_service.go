package services

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"healthtrack-server/models"
	"healthtrack-server/store"
	"healthtrack-server/utils/errors"
)

var (
	ErrHealthFieldsRequired = errors.ErrInvalidInput.WithMessage("Tip ve değer alanları zorunludur")
	ErrHealthTypeUnknown    = errors.ErrInvalidInput.WithMessage("Geçersiz sağlık verisi tipi")
	ErrHealthRecordNotFound = errors.ErrNotFound.WithMessage("Kayıt bulunamadı veya yetkiniz yok")
	ErrHealthDeleteNotFound = errors.ErrNotFound.WithMessage("Sağlık verisi bulunamadı veya bu kaydı silme yetkiniz yok")
)

// HealthService manages health records. Creating one awards points and
// counts as activity for the streak.
type HealthService struct {
	records store.HealthRecords
	points  *PointsLedger
	streak  *StreakTracker
	now     Clock
	log     *zap.Logger
}

func NewHealthService(records store.HealthRecords, points *PointsLedger, streak *StreakTracker, now Clock, log *zap.Logger) *HealthService {
	return &HealthService{records: records, points: points, streak: streak, now: now, log: log}
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func recordError(err error, notFound *errors.APIError) error {
	if stderrors.Is(err, store.ErrNotFound) {
		return notFound
	}
	return errors.Internal(err)
}

func (s *HealthService) Create(ctx context.Context, userID string, req models.CreateHealthRecordRequest) (*models.HealthRecord, error) {
	if req.Type == "" || blank(req.Value) {
		return nil, ErrHealthFieldsRequired
	}
	if !models.IsHealthType(req.Type) {
		return nil, ErrHealthTypeUnknown
	}

	now := s.now()
	rec := &models.HealthRecord{
		UserID:       userID,
		Type:         req.Type,
		Value:        req.Value,
		Date:         now,
		Notes:        req.Notes,
		Mood:         req.Mood,
		StressLevel:  req.StressLevel,
		SleepQuality: req.SleepQuality,
		CreatedAt:    now,
	}
	if req.Date != nil {
		rec.Date = *req.Date
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, errors.Internal(err)
	}

	s.points.Award(ctx, userID, ActionHealthCreate, HealthCreatePoints)
	s.streak.Touch(ctx, userID)
	return rec, nil
}

func (s *HealthService) Get(ctx context.Context, userID, id string) (*models.HealthRecord, error) {
	rec, err := s.records.Get(ctx, userID, id)
	if err != nil {
		return nil, recordError(err, ErrHealthRecordNotFound)
	}
	return rec, nil
}

// List returns the user's records newest first, optionally filtered by type.
func (s *HealthService) List(ctx context.Context, userID, recordType string) ([]models.HealthRecord, error) {
	if recordType != "" && !models.IsHealthType(recordType) {
		return nil, ErrHealthTypeUnknown
	}
	recs, err := s.records.List(ctx, userID, recordType)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return recs, nil
}

func (s *HealthService) Update(ctx context.Context, userID, id string, req models.UpdateHealthRecordRequest) (*models.HealthRecord, error) {
	if req.Type != nil && !models.IsHealthType(*req.Type) {
		return nil, ErrHealthTypeUnknown
	}
	rec, err := s.records.Update(ctx, userID, id, req)
	if err != nil {
		return nil, recordError(err, ErrHealthRecordNotFound)
	}
	return rec, nil
}

func (s *HealthService) Delete(ctx context.Context, userID, id string) error {
	if err := s.records.Delete(ctx, userID, id); err != nil {
		return recordError(err, ErrHealthDeleteNotFound)
	}
	return nil
}
