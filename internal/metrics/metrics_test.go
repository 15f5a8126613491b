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
	m.ModelLoads.WithLabelValues("fallback").Inc()
	m.Transitions.WithLabelValues("immersive").Inc()
	m.Transitions.WithLabelValues("immersive").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ModelLoads.WithLabelValues("fallback")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ModelLoads.WithLabelValues("asset")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transitions.WithLabelValues("immersive")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Frames.WithLabelValues("inline").Add(3)
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `viewer_frames_total{mode="inline"} 3`)
}
