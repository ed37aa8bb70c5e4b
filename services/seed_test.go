package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const demoFixture = `
users:
  - name: Ali
    email: ali@example.com
    password: secret123
    points: 120
    currentStreak: 4
    friends: [banu@example.com]
  - name: Banu
    email: banu@example.com
    password: secret123
    friends: [ali@example.com, cem@example.com]
  - name: Cem
    email: cem@example.com
    password: secret123
`

func TestSeederApplyIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	fixture, err := LoadFixture(strings.NewReader(demoFixture))
	require.NoError(t, err)
	require.Len(t, fixture.Users, 3)

	seeder := NewSeeder(env.svc, env.store.Users, zap.NewNop())
	report, err := seeder.Apply(ctx, fixture)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Created: 3, Friendships: 2}, report)

	ali, err := env.store.Users.GetByEmail(ctx, "ali@example.com")
	require.NoError(t, err)
	assert.Equal(t, 120, ali.Points)
	assert.Equal(t, 4, ali.CurrentStreak)
	assert.Len(t, ali.Friends, 1)

	banu, err := env.store.Users.GetByEmail(ctx, "banu@example.com")
	require.NoError(t, err)
	assert.Len(t, banu.Friends, 2)

	report, err = seeder.Apply(ctx, fixture)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Skipped: 3}, report)
}

func TestLoadFixtureRejectsUnknownFields(t *testing.T) {
	_, err := LoadFixture(strings.NewReader("users:\n  - name: A\n    nickname: x\n"))
	assert.Error(t, err)
}
