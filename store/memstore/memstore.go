// Package memstore is a mutex-guarded, process-local implementation of the
// store contracts. It backs STORAGE=memory and the service and handler tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"healthtrack-server/models"
	"healthtrack-server/store"
)

type DB struct {
	mu          sync.RWMutex
	users       map[string]*models.User
	health      map[string]*models.HealthRecord
	exercises   map[string]*models.Exercise
	medications map[string]*models.Medication
}

func New() *DB {
	return &DB{
		users:       make(map[string]*models.User),
		health:      make(map[string]*models.HealthRecord),
		exercises:   make(map[string]*models.Exercise),
		medications: make(map[string]*models.Medication),
	}
}

// Store exposes the DB through the store bundle.
func (db *DB) Store() *store.Store {
	return &store.Store{
		Users:         userStore{db},
		HealthRecords: healthStore{db},
		Exercises:     exerciseStore{db},
		Medications:   medicationStore{db},
		Close:         func(context.Context) error { return nil },
	}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Friends = append([]string{}, u.Friends...)
	c.FriendRequests = append([]models.FriendRequest{}, u.FriendRequests...)
	if u.LastActiveDate != nil {
		t := *u.LastActiveDate
		c.LastActiveDate = &t
	}
	return &c
}

type userStore struct{ db *DB }

func (s userStore) Create(_ context.Context, u *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.users {
		if existing.Email == u.Email {
			return store.ErrDuplicateEmail
		}
	}
	u.ID = newID()
	u.Friends = []string{}
	u.FriendRequests = []models.FriendRequest{}
	s.db.users[u.ID] = cloneUser(u)
	return nil
}

func (s userStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, u := range s.db.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s userStore) sorted(keep func(*models.User) bool) []models.User {
	out := make([]models.User, 0)
	for _, u := range s.db.users {
		if keep(u) {
			out = append(out, *cloneUser(u))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s userStore) List(_ context.Context) ([]models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.sorted(func(*models.User) bool { return true }), nil
}

func (s userStore) ListByIDs(_ context.Context, ids []string) ([]models.User, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.sorted(func(u *models.User) bool { return want[u.ID] }), nil
}

func (s userStore) UpdateProfile(_ context.Context, id string, p models.ProfileUpdate) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if p.Email != nil && *p.Email != u.Email {
		for _, other := range s.db.users {
			if other.Email == *p.Email {
				return nil, store.ErrDuplicateEmail
			}
		}
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		age := *p.Age
		u.Age = &age
	}
	if p.Height != nil {
		h := *p.Height
		u.Height = &h
	}
	if p.Weight != nil {
		w := *p.Weight
		u.Weight = &w
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.ActivityLevel != nil {
		u.ActivityLevel = *p.ActivityLevel
	}
	return cloneUser(u), nil
}

func (s userStore) SetAvatar(_ context.Context, id, url string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.AvatarURL = &url
	return nil
}

func (s userStore) IncrementPoints(_ context.Context, id string, delta int) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.Points += delta
	return cloneUser(u), nil
}

func (s userStore) SetStreak(_ context.Context, id string, prevLastActive *time.Time, streak int, lastActive time.Time) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return store.ErrNotFound
	}
	switch {
	case prevLastActive == nil && u.LastActiveDate != nil,
		prevLastActive != nil && (u.LastActiveDate == nil || !u.LastActiveDate.Equal(*prevLastActive)):
		return store.ErrConflict
	}
	u.CurrentStreak = streak
	u.LastActiveDate = &lastActive
	return nil
}

func (s userStore) AddFriendRequest(_ context.Context, receiverID string, req models.FriendRequest) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[receiverID]
	if !ok {
		return store.ErrNotFound
	}
	if _, pending := u.PendingRequestFrom(req.From); pending || u.HasFriend(req.From) {
		return store.ErrConflict
	}
	u.FriendRequests = append(u.FriendRequests, req)
	return nil
}

func pullRequest(u *models.User, senderID string) bool {
	kept := u.FriendRequests[:0]
	removed := false
	for _, r := range u.FriendRequests {
		if r.From == senderID {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	u.FriendRequests = kept
	return removed
}

func addFriend(u *models.User, id string) {
	if !u.HasFriend(id) {
		u.Friends = append(u.Friends, id)
	}
}

func pullFriend(u *models.User, id string) bool {
	kept := u.Friends[:0]
	removed := false
	for _, f := range u.Friends {
		if f == id {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	u.Friends = kept
	return removed
}

func (s userStore) RemoveFriendRequest(_ context.Context, receiverID, senderID string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[receiverID]
	if !ok {
		return false, store.ErrNotFound
	}
	return pullRequest(u, senderID), nil
}

func (s userStore) AcceptFriendRequest(_ context.Context, receiverID, senderID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	receiver, ok := s.db.users[receiverID]
	if !ok {
		return store.ErrNotFound
	}
	if _, pending := receiver.PendingRequestFrom(senderID); !pending {
		return store.ErrNotFound
	}
	sender, ok := s.db.users[senderID]
	if !ok {
		return store.ErrNotFound
	}
	pullRequest(receiver, senderID)
	addFriend(receiver, senderID)
	pullRequest(sender, receiverID)
	addFriend(sender, receiverID)
	return nil
}

func (s userStore) RemoveFriendship(_ context.Context, userID, friendID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[userID]
	if !ok || !u.HasFriend(friendID) {
		return store.ErrNotFound
	}
	pullFriend(u, friendID)
	if f, ok := s.db.users[friendID]; ok {
		pullFriend(f, userID)
	}
	return nil
}
