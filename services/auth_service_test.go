package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"healthtrack-server/models"
	"healthtrack-server/utils/errors"
)

func TestRegisterDefaultsAndHash(t *testing.T) {
	env := newTestEnv(t)
	token, u, err := env.svc.Auth.Register(context.Background(), models.RegisterRequest{
		Name:     "Zeynep",
		Email:    "zeynep@example.com",
		Password: "parola123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.DefaultGender, u.Gender)
	assert.Equal(t, models.DefaultActivityLevel, u.ActivityLevel)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Zero(t, u.Points)
	assert.NotEqual(t, "parola123", env.user(t, u.ID).PasswordHash)

	id, err := env.svc.Auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.svc.Auth.Register(ctx, models.RegisterRequest{Email: "x@example.com", Password: "p"})
	assert.Equal(t, ErrMissingFields, err)

	env.register(t, "Zeynep", "zeynep@example.com")
	_, _, err = env.svc.Auth.Register(ctx, models.RegisterRequest{Name: "Z", Email: "zeynep@example.com", Password: "p"})
	assert.Equal(t, ErrEmailTaken, err)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "Zeynep", "zeynep@example.com")

	token, got, err := env.svc.Auth.Login(ctx, "zeynep@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, token)

	_, _, err = env.svc.Auth.Login(ctx, "zeynep@example.com", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)
	_, _, err = env.svc.Auth.Login(ctx, "nobody@example.com", "secret123")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestParseTokenRejectsExpiredAndForeign(t *testing.T) {
	env := newTestEnv(t)
	token, err := env.svc.Auth.GenerateToken("abc")
	require.NoError(t, err)

	env.clock.AdvanceDays(1)
	_, err = env.svc.Auth.ParseToken(token)
	assert.ErrorIs(t, err, errors.ErrInvalidToken)

	other := NewAuthService(env.store.Users, "other-secret", time.Hour, env.clock.Now, zap.NewNop())
	foreign, err := other.GenerateToken("abc")
	require.NoError(t, err)
	_, err = env.svc.Auth.ParseToken(foreign)
	assert.ErrorIs(t, err, errors.ErrInvalidToken)

	_, err = env.svc.Auth.ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}
