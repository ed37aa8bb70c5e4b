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
	ErrMedicationFieldsRequired = errors.ErrInvalidInput.WithMessage("İlaç adı ve dozajı zorunludur.")
	ErrMedicationNotFound       = errors.ErrNotFound.WithMessage("İlaç bulunamadı veya yetkiniz yok")
)

// MedicationService manages medications. Create, edit and delete each move
// the owner's points; create also counts as streak activity.
type MedicationService struct {
	medications store.Medications
	points      *PointsLedger
	streak      *StreakTracker
	now         Clock
	log         *zap.Logger
}

func NewMedicationService(medications store.Medications, points *PointsLedger, streak *StreakTracker, now Clock, log *zap.Logger) *MedicationService {
	return &MedicationService{medications: medications, points: points, streak: streak, now: now, log: log}
}

func (s *MedicationService) Create(ctx context.Context, userID string, req models.CreateMedicationRequest) (*models.Medication, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Dosage) == "" {
		return nil, ErrMedicationFieldsRequired
	}

	med := &models.Medication{
		UserID:        userID,
		Name:          req.Name,
		Dosage:        req.Dosage,
		Frequency:     req.Frequency,
		Time:          req.Time,
		RemainingDays: models.DefaultMedicationRemainingDays,
		Notes:         req.Notes,
		IsActive:      true,
		CreatedAt:     s.now(),
	}
	if med.Frequency == "" {
		med.Frequency = models.DefaultMedicationFrequency
	}
	if req.RemainingDays != nil {
		med.RemainingDays = *req.RemainingDays
	}
	if req.IsActive != nil {
		med.IsActive = *req.IsActive
	}
	if err := s.medications.Create(ctx, med); err != nil {
		return nil, errors.Internal(err)
	}

	s.points.Award(ctx, userID, ActionMedicationCreate, MedicationCreatePoints)
	s.streak.Touch(ctx, userID)
	return med, nil
}

func (s *MedicationService) List(ctx context.Context, userID string) ([]models.Medication, error) {
	list, err := s.medications.List(ctx, userID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return list, nil
}

func (s *MedicationService) Update(ctx context.Context, userID, id string, req models.UpdateMedicationRequest) (*models.Medication, error) {
	med, err := s.medications.Update(ctx, userID, id, req)
	if err != nil {
		return nil, recordError(err, ErrMedicationNotFound)
	}
	s.points.Award(ctx, userID, ActionMedicationEdit, MedicationEditPoints)
	return med, nil
}

func (s *MedicationService) Delete(ctx context.Context, userID, id string) error {
	if err := s.medications.Delete(ctx, userID, id); err != nil {
		return recordError(err, ErrMedicationNotFound)
	}
	s.points.Award(ctx, userID, ActionMedicationDelete, MedicationDeletePoints)
	return nil
}
