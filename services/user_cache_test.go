package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthtrack-server/models"
	"healthtrack-server/store"
	"healthtrack-server/store/memstore"
)

type mapCache struct {
	mu      sync.Mutex
	users   map[string]models.User
	hits    int
	deletes int
}

func newMapCache() *mapCache {
	return &mapCache{users: make(map[string]models.User)}
}

func (c *mapCache) Get(_ context.Context, id string) (*models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.users[id]
	if ok {
		c.hits++
	}
	return &u, ok
}

func (c *mapCache) Set(_ context.Context, u *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[u.ID] = *u
}

func (c *mapCache) Delete(_ context.Context, ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.users, id)
	}
	c.deletes++
}

func TestCachedUsersReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	inner := memstore.New().Store().Users
	cache := newMapCache()
	users := WithUserCache(inner, cache)

	u := &models.User{Name: "Can", Email: "can@example.com"}
	require.NoError(t, users.Create(ctx, u))

	_, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	_, err = users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	_, err = users.IncrementPoints(ctx, u.ID, 5)
	require.NoError(t, err)
	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Points)

	// Failed writes still invalidate.
	_, _ = users.IncrementPoints(ctx, "missing", 1)
	assert.Equal(t, 2, cache.deletes)
}

func TestWithUserCacheNil(t *testing.T) {
	inner := memstore.New().Store().Users
	assert.Equal(t, inner, WithUserCache(inner, nil))
}

// slowUsers runs during once, after the inner read and before returning it.
type slowUsers struct {
	store.Users
	during func()
}

func (s *slowUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if f := s.during; f != nil {
		s.during = nil
		f()
	}
	return u, err
}

func TestCachedUsersDoesNotRefillWithReadOlderThanMutation(t *testing.T) {
	ctx := context.Background()
	inner := &slowUsers{Users: memstore.New().Store().Users}
	cache := newMapCache()
	users := WithUserCache(inner, cache)

	u := &models.User{Name: "Deniz", Email: "deniz@example.com"}
	require.NoError(t, users.Create(ctx, u))

	inner.during = func() {
		_, err := users.IncrementPoints(ctx, u.ID, 7)
		require.NoError(t, err)
	}
	stale, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, stale.Points)

	cache.mu.Lock()
	_, cached := cache.users[u.ID]
	cache.mu.Unlock()
	assert.False(t, cached, "a read that overlapped a write must not fill the cache")

	fresh, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, fresh.Points)
}
