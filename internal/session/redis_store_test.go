package session

import (
	"context"
	"os"
	"testing"
	"time"

	"lifeplan/internal/form"
	"lifeplan/internal/recommendation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live Redis only when REDIS_ADDR is set.
func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping integration test")
	}

	store := NewRedisStore(addr)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))

	id := NewID()
	defer store.Delete(ctx, id)

	want := form.Snapshot{
		Data:            recommendation.FormData{Age: "30", Income: "50000", Dependents: "1", Risk: "Low"},
		State:           form.Succeeded,
		Recommendations: []recommendation.Recommendation{{Plan: "Term 20", RiskTolerance: recommendation.RiskLow}},
	}
	require.NoError(t, store.Set(ctx, id, want, time.Minute))

	got, ok, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok, err = store.Get(ctx, NewID())
	require.NoError(t, err)
	assert.False(t, ok)
}
