package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.PointsAdjusted("health_data_created", 5)
	m.PointsAdjusted("medication_deleted", -1)
	m.StreakUpdated("extended")
	m.StreakUpdated("extended")
	m.FriendshipTransition("accepted")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.points.WithLabelValues("health_data_created", "positive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.points.WithLabelValues("medication_deleted", "negative")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.streaks.WithLabelValues("extended")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.friendships.WithLabelValues("accepted")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/health", "200", 0.01)
		m.PointsAdjusted("manual", 3)
		m.StreakUpdated("reset")
		m.FriendshipTransition("rejected")
		m.SideEffectFailed("streak")
	})
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/api/friends", "200", 0.02)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "healthtrack_http_requests_total")
}
