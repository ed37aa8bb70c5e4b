package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"healthtrack-server/models"
	"healthtrack-server/store"
)

const userCacheTTL = 10 * time.Minute

// UserCache is a read-through cache for user documents keyed by id.
type UserCache interface {
	Get(ctx context.Context, id string) (*models.User, bool)
	Set(ctx context.Context, u *models.User)
	Delete(ctx context.Context, ids ...string)
}

// RedisUserCache stores JSON users under user:<id>. Cached users carry no
// password hash; credential checks go through GetByEmail, which is never
// cached.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisUserCache(client *redis.Client, log *zap.Logger) *RedisUserCache {
	return &RedisUserCache{client: client, ttl: userCacheTTL, log: log}
}

func userKey(id string) string {
	return "user:" + id
}

func (c *RedisUserCache) Get(ctx context.Context, id string) (*models.User, bool) {
	raw, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("user_cache_get_failed", zap.String("user_id", id), zap.Error(err))
		}
		return nil, false
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		c.log.Warn("user_cache_decode_failed", zap.String("user_id", id), zap.Error(err))
		return nil, false
	}
	return &u, true
}

func (c *RedisUserCache) Set(ctx context.Context, u *models.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, userKey(u.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("user_cache_set_failed", zap.String("user_id", u.ID), zap.Error(err))
	}
}

func (c *RedisUserCache) Delete(ctx context.Context, ids ...string) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, userKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("user_cache_delete_failed", zap.Strings("user_ids", ids), zap.Error(err))
	}
}

// cachedUsers serves GetByID through a UserCache and invalidates the
// affected ids on every mutation, whether or not the mutation succeeded.
//
// Each id carries a generation bumped when a mutation finishes. A read only
// fills the cache if no mutation of that id finished while it was loading,
// and the fill happens under mu so a later invalidation deletes after it.
// Generations are per process; other instances are bounded by the TTL.
type cachedUsers struct {
	store.Users
	cache UserCache

	mu   sync.Mutex
	gens map[string]uint64
}

// WithUserCache wraps users with a read-through cache. A nil cache returns
// users unchanged.
func WithUserCache(users store.Users, cache UserCache) store.Users {
	if cache == nil {
		return users
	}
	return &cachedUsers{Users: users, cache: cache, gens: make(map[string]uint64)}
}

func (c *cachedUsers) generation(id string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[id]
}

func (c *cachedUsers) invalidate(ctx context.Context, ids ...string) {
	c.mu.Lock()
	for _, id := range ids {
		c.gens[id]++
	}
	c.mu.Unlock()
	c.cache.Delete(ctx, ids...)
}

func (c *cachedUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := c.cache.Get(ctx, id); ok {
		return u, nil
	}
	gen := c.generation(id)
	u, err := c.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[id] == gen {
		c.cache.Set(ctx, u)
	}
	return u, nil
}

func (c *cachedUsers) UpdateProfile(ctx context.Context, id string, p models.ProfileUpdate) (*models.User, error) {
	defer c.invalidate(ctx, id)
	return c.Users.UpdateProfile(ctx, id, p)
}

func (c *cachedUsers) SetAvatar(ctx context.Context, id, url string) error {
	defer c.invalidate(ctx, id)
	return c.Users.SetAvatar(ctx, id, url)
}

func (c *cachedUsers) IncrementPoints(ctx context.Context, id string, delta int) (*models.User, error) {
	defer c.invalidate(ctx, id)
	return c.Users.IncrementPoints(ctx, id, delta)
}

func (c *cachedUsers) SetStreak(ctx context.Context, id string, prevLastActive *time.Time, streak int, lastActive time.Time) error {
	defer c.invalidate(ctx, id)
	return c.Users.SetStreak(ctx, id, prevLastActive, streak, lastActive)
}

func (c *cachedUsers) AddFriendRequest(ctx context.Context, receiverID string, req models.FriendRequest) error {
	defer c.invalidate(ctx, receiverID)
	return c.Users.AddFriendRequest(ctx, receiverID, req)
}

func (c *cachedUsers) RemoveFriendRequest(ctx context.Context, receiverID, senderID string) (bool, error) {
	defer c.invalidate(ctx, receiverID)
	return c.Users.RemoveFriendRequest(ctx, receiverID, senderID)
}

func (c *cachedUsers) AcceptFriendRequest(ctx context.Context, receiverID, senderID string) error {
	defer c.invalidate(ctx, receiverID, senderID)
	return c.Users.AcceptFriendRequest(ctx, receiverID, senderID)
}

func (c *cachedUsers) RemoveFriendship(ctx context.Context, userID, friendID string) error {
	defer c.invalidate(ctx, userID, friendID)
	return c.Users.RemoveFriendship(ctx, userID, friendID)
}
