//go:build integration

package mongostore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.uber.org/zap"

	"healthtrack-server/models"
	"healthtrack-server/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	// A single-node container has no replica set, so the pairwise writes run sequentially.
	st, err := Open(ctx, Options{URI: uri, Database: "healthtrack_test"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(ctx) })
	return st
}

func newUser(t *testing.T, st *store.Store, name, email string) *models.User {
	t.Helper()
	u := &models.User{
		Name:          name,
		Email:         email,
		PasswordHash:  "hash",
		Gender:        models.DefaultGender,
		ActivityLevel: models.DefaultActivityLevel,
		Role:          models.RoleUser,
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, st.Users.Create(context.Background(), u))
	return u
}

func TestUserStoreIntegration(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	alice := newUser(t, st, "Alice", "alice@example.com")
	bob := newUser(t, st, "Bob", "bob@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		err := st.Users.Create(ctx, &models.User{Name: "Other", Email: "alice@example.com"})
		assert.ErrorIs(t, err, store.ErrDuplicateEmail)
	})

	t.Run("points increment", func(t *testing.T) {
		u, err := st.Users.IncrementPoints(ctx, alice.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, u.Points)
		u, err = st.Users.IncrementPoints(ctx, alice.ID, -1)
		require.NoError(t, err)
		assert.Equal(t, 4, u.Points)
	})

	t.Run("streak compare and swap", func(t *testing.T) {
		day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, st.Users.SetStreak(ctx, alice.ID, nil, 1, day))
		assert.ErrorIs(t, st.Users.SetStreak(ctx, alice.ID, nil, 1, day), store.ErrConflict)

		next := day.AddDate(0, 0, 1)
		require.NoError(t, st.Users.SetStreak(ctx, alice.ID, &day, 2, next))

		u, err := st.Users.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, u.CurrentStreak)
		require.NotNil(t, u.LastActiveDate)
		assert.True(t, u.LastActiveDate.Equal(next))
	})

	t.Run("friend request lifecycle", func(t *testing.T) {
		req := models.FriendRequest{From: alice.ID, FromName: alice.Name, FromEmail: alice.Email, Date: time.Now().UTC()}
		require.NoError(t, st.Users.AddFriendRequest(ctx, bob.ID, req))
		assert.ErrorIs(t, st.Users.AddFriendRequest(ctx, bob.ID, req), store.ErrConflict)

		require.NoError(t, st.Users.AcceptFriendRequest(ctx, bob.ID, alice.ID))
		assert.ErrorIs(t, st.Users.AcceptFriendRequest(ctx, bob.ID, alice.ID), store.ErrNotFound)

		a, err := st.Users.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		b, err := st.Users.GetByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{bob.ID}, a.Friends)
		assert.Equal(t, []string{alice.ID}, b.Friends)
		assert.Empty(t, b.FriendRequests)

		assert.ErrorIs(t, st.Users.AddFriendRequest(ctx, bob.ID, req), store.ErrConflict)

		require.NoError(t, st.Users.RemoveFriendship(ctx, alice.ID, bob.ID))
		assert.ErrorIs(t, st.Users.RemoveFriendship(ctx, alice.ID, bob.ID), store.ErrNotFound)
	})
}

func TestRecordStoresIntegration(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	owner := newUser(t, st, "Owner", "owner@example.com")
	other := newUser(t, st, "Other", "other@example.com")

	now := time.Now().UTC().Truncate(time.Millisecond)
	rec := &models.HealthRecord{UserID: owner.ID, Type: "weight", Value: 72.5, Date: now, CreatedAt: now}
	require.NoError(t, st.HealthRecords.Create(ctx, rec))
	require.NoError(t, st.HealthRecords.Create(ctx, &models.HealthRecord{
		UserID: owner.ID, Type: "bloodPressure", Value: "120/80", Date: now.Add(-time.Hour), CreatedAt: now,
	}))

	all, err := st.HealthRecords.List(ctx, owner.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "weight", all[0].Type)

	weights, err := st.HealthRecords.List(ctx, owner.ID, "weight")
	require.NoError(t, err)
	require.Len(t, weights, 1)
	assert.Equal(t, 72.5, weights[0].Value)

	_, err = st.HealthRecords.Get(ctx, other.ID, rec.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, st.HealthRecords.Delete(ctx, other.ID, rec.ID), store.ErrNotFound)

	ex := &models.Exercise{UserID: owner.ID, Name: "Koşu", Type: "cardio", Duration: 30, Points: 10, Date: now, CreatedAt: now}
	require.NoError(t, st.Exercises.Create(ctx, ex))
	dur := 45
	updated, err := st.Exercises.Update(ctx, owner.ID, ex.ID, models.UpdateExerciseRequest{Duration: &dur})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.Duration)
	require.NoError(t, st.Exercises.Delete(ctx, owner.ID, ex.ID))

	med := &models.Medication{UserID: owner.ID, Name: "Aspirin", Dosage: "100mg", Frequency: models.DefaultMedicationFrequency,
		RemainingDays: models.DefaultMedicationRemainingDays, IsActive: true, CreatedAt: now}
	require.NoError(t, st.Medications.Create(ctx, med))
	meds, err := st.Medications.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Nil(t, meds[0].LastTaken)
}
