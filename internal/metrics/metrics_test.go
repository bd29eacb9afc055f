package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taoyao-code/meshmsg/internal/mesh/message"
	"github.com/taoyao-code/meshmsg/internal/mesh/opcode"
)

func TestObserverCountsAssembly(t *testing.T) {
	reg := NewRegistry()
	m := NewAppMetrics(reg)

	obs := Observers(m.Observer(), nil)
	obs.OnAssembled(message.Event{Opcode: opcode.SceneStoreUnacknowledged, Parameters: []byte{0x04, 0x00}})
	obs.OnAssembled(message.Event{Opcode: opcode.SceneStoreUnacknowledged, Parameters: []byte{0x05, 0x00}})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AssembledTotal.WithLabelValues("SCENE_STORE_UNACKNOWLEDGED")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.AssembledBytes))
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := NewRegistry()
	m := NewAppMetrics(reg)
	m.RateLimitedTotal.Inc()

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "http_rate_limited_total 1"))
}
