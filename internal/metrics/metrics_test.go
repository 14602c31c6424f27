package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCosts struct{}

func (staticCosts) CostsByModel() map[string]float64 { return map[string]float64{"gemini-2.0-flash": 0.25} }
func (staticCosts) CallsByModel() map[string]int64   { return map[string]int64{"gemini-2.0-flash": 3} }

func TestRecordAgentCall(t *testing.T) {
	before := testutil.ToFloat64(AgentCalls.WithLabelValues("planner", "m-test", "success"))
	RecordAgentCall("planner", "m-test", "success", time.Second, 10, 20, 0.01)

	assert.Equal(t, before+1, testutil.ToFloat64(AgentCalls.WithLabelValues("planner", "m-test", "success")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(AgentTokens.WithLabelValues("planner", "m-test", "output")), 20.0)
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("/test-route", "4xx"))
	RecordHTTPRequest("/test-route", 422, 10*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("/test-route", "4xx")))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "2xx", statusLabel(200))
	assert.Equal(t, "4xx", statusLabel(429))
	assert.Equal(t, "5xx", statusLabel(500))
}

func TestInitIsIdempotent(t *testing.T) {
	require.NotPanics(t, func() {
		Init()
		Init()
	})
}

func TestCustomCollector(t *testing.T) {
	c := NewCustomCollector(staticCosts{}, nil)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	expected := `
# HELP health_model_calls_current Successful generations per model since process start
# TYPE health_model_calls_current gauge
health_model_calls_current{model="gemini-2.0-flash"} 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "health_model_calls_current"))
	assert.Equal(t, 2, testutil.CollectAndCount(c))
}
