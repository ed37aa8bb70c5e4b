package memstore

import (
	"context"
	"sort"

	"healthtrack-server/models"
	"healthtrack-server/store"
)

type healthStore struct{ db *DB }

func (s healthStore) Create(_ context.Context, r *models.HealthRecord) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	r.ID = newID()
	c := *r
	s.db.health[r.ID] = &c
	return nil
}

func (s healthStore) get(userID, id string) (*models.HealthRecord, error) {
	r, ok := s.db.health[id]
	if !ok || r.UserID != userID {
		return nil, store.ErrNotFound
	}
	return r, nil
}

func (s healthStore) Get(_ context.Context, userID, id string) (*models.HealthRecord, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	r, err := s.get(userID, id)
	if err != nil {
		return nil, err
	}
	c := *r
	return &c, nil
}

func (s healthStore) List(_ context.Context, userID, recordType string) ([]models.HealthRecord, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	out := make([]models.HealthRecord, 0)
	for _, r := range s.db.health {
		if r.UserID == userID && (recordType == "" || r.Type == recordType) {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s healthStore) Update(_ context.Context, userID, id string, req models.UpdateHealthRecordRequest) (*models.HealthRecord, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	r, err := s.get(userID, id)
	if err != nil {
		return nil, err
	}
	if req.Type != nil {
		r.Type = *req.Type
	}
	if req.Value != nil {
		r.Value = req.Value
	}
	if req.Date != nil {
		r.Date = *req.Date
	}
	if req.Notes != nil {
		notes := *req.Notes
		r.Notes = &notes
	}
	if req.Mood != nil {
		r.Mood = req.Mood
	}
	if req.StressLevel != nil {
		r.StressLevel = req.StressLevel
	}
	if req.SleepQuality != nil {
		r.SleepQuality = req.SleepQuality
	}
	c := *r
	return &c, nil
}

func (s healthStore) Delete(_ context.Context, userID, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, err := s.get(userID, id); err != nil {
		return err
	}
	delete(s.db.health, id)
	return nil
}

type exerciseStore struct{ db *DB }

func (s exerciseStore) Create(_ context.Context, e *models.Exercise) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	e.ID = newID()
	c := *e
	s.db.exercises[e.ID] = &c
	return nil
}

func (s exerciseStore) List(_ context.Context, userID string) ([]models.Exercise, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	out := make([]models.Exercise, 0)
	for _, e := range s.db.exercises {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s exerciseStore) Update(_ context.Context, userID, id string, req models.UpdateExerciseRequest) (*models.Exercise, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	e, ok := s.db.exercises[id]
	if !ok || e.UserID != userID {
		return nil, store.ErrNotFound
	}
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Type != nil {
		e.Type = *req.Type
	}
	if req.Duration != nil {
		e.Duration = *req.Duration
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.Notes != nil {
		e.Notes = *req.Notes
	}
	c := *e
	return &c, nil
}

func (s exerciseStore) Delete(_ context.Context, userID, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	e, ok := s.db.exercises[id]
	if !ok || e.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.db.exercises, id)
	return nil
}

type medicationStore struct{ db *DB }

func (s medicationStore) Create(_ context.Context, m *models.Medication) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m.ID = newID()
	c := *m
	s.db.medications[m.ID] = &c
	return nil
}

func (s medicationStore) List(_ context.Context, userID string) ([]models.Medication, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	out := make([]models.Medication, 0)
	for _, m := range s.db.medications {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s medicationStore) Update(_ context.Context, userID, id string, req models.UpdateMedicationRequest) (*models.Medication, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m, ok := s.db.medications[id]
	if !ok || m.UserID != userID {
		return nil, store.ErrNotFound
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Dosage != nil {
		m.Dosage = *req.Dosage
	}
	if req.Frequency != nil {
		m.Frequency = *req.Frequency
	}
	if req.Time != nil {
		m.Time = *req.Time
	}
	if req.RemainingDays != nil {
		m.RemainingDays = *req.RemainingDays
	}
	if req.Notes != nil {
		m.Notes = *req.Notes
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if req.LastTaken != nil {
		t := *req.LastTaken
		m.LastTaken = &t
	}
	c := *m
	return &c, nil
}

func (s medicationStore) Delete(_ context.Context, userID, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m, ok := s.db.medications[id]
	if !ok || m.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.db.medications, id)
	return nil
}
