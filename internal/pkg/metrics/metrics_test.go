package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservers(t *testing.T) {
	m := NewMetrics()

	m.ObserveChat(OutcomeRelay)
	m.ObserveChat(OutcomeRelay)
	m.ObserveChat(OutcomeEmpty)
	m.ObserveRecommendation(2, false)
	m.ObserveLogin(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChatRequestsTotal.WithLabelValues(OutcomeRelay)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChatRequestsTotal.WithLabelValues(OutcomeEmpty)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RelaxationLevelTotal.WithLabelValues("2", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttemptsTotal.WithLabelValues("failure")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.SessionsResetTotal.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "keuzehulp_sessions_reset_total 1")
}
