package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRegistration(t *testing.T) {
	before := testutil.ToFloat64(RegistrationsTotal.WithLabelValues(ActionJoin, OutcomeFull))

	RecordRegistration(ActionJoin, OutcomeFull)
	RecordRegistration(ActionJoin, OutcomeFull)

	after := testutil.ToFloat64(RegistrationsTotal.WithLabelValues(ActionJoin, OutcomeFull))
	assert.Equal(t, before+2, after)
}

func TestHandler(t *testing.T) {
	RecordRegistration(ActionLeave, OutcomeOK)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `festflow_registrations_total{action="leave",outcome="ok"}`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
