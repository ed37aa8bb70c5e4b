package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"healthtrack-server/models"
	"healthtrack-server/store"
	"healthtrack-server/store/memstore"
	"healthtrack-server/utils/metrics"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) AdvanceDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.AddDate(0, 0, n)
}

type testEnv struct {
	store *store.Store
	svc   *Services
	clock *fakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := newFakeClock()
	st := memstore.New().Store()
	svc := New(st, Config{
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
		Location:      time.UTC,
		Now:           clock.Now,
	}, zap.NewNop(), metrics.New())
	return &testEnv{store: st, svc: svc, clock: clock}
}

func (e *testEnv) register(t *testing.T, name, email string) *models.User {
	t.Helper()
	_, u, err := e.svc.Auth.Register(context.Background(), models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) user(t *testing.T, id string) *models.User {
	t.Helper()
	u, err := e.store.Users.GetByID(context.Background(), id)
	require.NoError(t, err)
	return u
}
