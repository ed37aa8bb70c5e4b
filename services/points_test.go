package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustConcurrentIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "Mehmet", "mehmet@example.com")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = env.svc.Points.Adjust(ctx, u.ID, ActionHealthCreate, 5)
		}()
		go func() {
			defer wg.Done()
			_, _ = env.svc.Points.Adjust(ctx, u.ID, ActionMedicationDelete, -1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, env.user(t, u.ID).Points)
}

func TestAdjustAllowsNegativeTotals(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "Mehmet", "mehmet@example.com")

	got, err := env.svc.Points.Adjust(context.Background(), u.ID, ActionMedicationDelete, -3)
	require.NoError(t, err)
	assert.Equal(t, -3, got.Points)
}

func TestAwardSwallowsErrors(t *testing.T) {
	env := newTestEnv(t)
	assert.NotPanics(t, func() {
		env.svc.Points.Award(context.Background(), "missing", ActionHealthCreate, 5)
	})
}
