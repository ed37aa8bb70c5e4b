// Package store defines the persistence contracts used by the services.
// Implementations live in store/mongostore and store/memstore.
package store

import (
	"context"
	"errors"
	"time"

	"healthtrack-server/models"
)

var (
	ErrNotFound       = errors.New("store: not found")
	ErrDuplicateEmail = errors.New("store: email already registered")
	// ErrConflict reports that a conditional write lost to a concurrent change.
	ErrConflict = errors.New("store: conflicting update")
)

type Users interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, p models.ProfileUpdate) (*models.User, error)
	SetAvatar(ctx context.Context, id, url string) error

	// IncrementPoints applies delta atomically and returns the updated user.
	IncrementPoints(ctx context.Context, id string, delta int) (*models.User, error)

	// SetStreak writes streak and lastActive only if the stored lastActiveDate
	// still equals prevLastActive (nil meaning unset). It returns ErrConflict
	// when the stored value moved.
	SetStreak(ctx context.Context, id string, prevLastActive *time.Time, streak int, lastActive time.Time) error

	// AddFriendRequest appends req to the receiver unless the sender is
	// already a friend or already has a pending request (ErrConflict).
	AddFriendRequest(ctx context.Context, receiverID string, req models.FriendRequest) error
	// RemoveFriendRequest reports whether a request from senderID was removed.
	RemoveFriendRequest(ctx context.Context, receiverID, senderID string) (bool, error)
	// AcceptFriendRequest consumes the pending request and links both users.
	// ErrNotFound when the request is gone.
	AcceptFriendRequest(ctx context.Context, receiverID, senderID string) error
	// RemoveFriendship unlinks both users; ErrNotFound when they were not friends.
	RemoveFriendship(ctx context.Context, userID, friendID string) error
}

type HealthRecords interface {
	Create(ctx context.Context, r *models.HealthRecord) error
	Get(ctx context.Context, userID, id string) (*models.HealthRecord, error)
	// List returns records newest first; an empty recordType matches all.
	List(ctx context.Context, userID, recordType string) ([]models.HealthRecord, error)
	Update(ctx context.Context, userID, id string, req models.UpdateHealthRecordRequest) (*models.HealthRecord, error)
	Delete(ctx context.Context, userID, id string) error
}

type Exercises interface {
	Create(ctx context.Context, e *models.Exercise) error
	List(ctx context.Context, userID string) ([]models.Exercise, error)
	Update(ctx context.Context, userID, id string, req models.UpdateExerciseRequest) (*models.Exercise, error)
	Delete(ctx context.Context, userID, id string) error
}

type Medications interface {
	Create(ctx context.Context, m *models.Medication) error
	List(ctx context.Context, userID string) ([]models.Medication, error)
	Update(ctx context.Context, userID, id string, req models.UpdateMedicationRequest) (*models.Medication, error)
	Delete(ctx context.Context, userID, id string) error
}

// Store bundles the collections a running server needs.
type Store struct {
	Users         Users
	HealthRecords HealthRecords
	Exercises     Exercises
	Medications   Medications
	Close         func(ctx context.Context) error
}
