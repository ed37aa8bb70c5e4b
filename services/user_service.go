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
	ErrInvalidPointsAmount = errors.ErrInvalidInput.WithMessage("Geçersiz puan miktarı")
	ErrAvatarURLRequired   = errors.ErrInvalidInput.WithMessage("Avatar URL gerekli")
)

type UserService struct {
	users  store.Users
	points *PointsLedger
	log    *zap.Logger
}

func NewUserService(users store.Users, points *PointsLedger, log *zap.Logger) *UserService {
	return &UserService{users: users, points: points, log: log}
}

// userError maps store failures on a user lookup to API errors.
func userError(err error) error {
	switch {
	case stderrors.Is(err, store.ErrNotFound):
		return ErrUserNotFound
	case stderrors.Is(err, store.ErrDuplicateEmail):
		return ErrEmailTaken
	default:
		return errors.Internal(err)
	}
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userError(err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return users, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, callerID, targetID string, p models.ProfileUpdate) (*models.User, error) {
	if callerID != targetID {
		return nil, errors.ErrForbidden
	}
	if p.Empty() {
		return nil, errors.ErrInvalidInput.WithMessage("Güncellenecek en az bir alan gerekli")
	}
	u, err := s.users.UpdateProfile(ctx, targetID, p)
	if err != nil {
		return nil, userError(err)
	}
	s.log.Info("profile_updated", zap.String("user_id", targetID))
	return u, nil
}

func (s *UserService) SetAvatar(ctx context.Context, callerID, targetID, url string) error {
	if callerID != targetID {
		return errors.ErrForbidden
	}
	if url == "" {
		return ErrAvatarURLRequired
	}
	if err := s.users.SetAvatar(ctx, targetID, url); err != nil {
		return userError(err)
	}
	return nil
}

// AdjustPoints applies a caller-chosen delta to the caller's own points.
func (s *UserService) AdjustPoints(ctx context.Context, callerID, targetID string, amount *int) (*models.User, error) {
	if amount == nil {
		return nil, ErrInvalidPointsAmount
	}
	if callerID != targetID {
		return nil, errors.ErrForbidden
	}
	u, err := s.points.Adjust(ctx, targetID, ActionManual, *amount)
	if err != nil {
		return nil, userError(err)
	}
	return u, nil
}

func (s *UserService) Progress(ctx context.Context, id string) (Progress, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return Progress{}, userError(err)
	}
	return ProgressFor(u.Points, u.CurrentStreak), nil
}
