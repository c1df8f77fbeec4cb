package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_RecordRequest(t *testing.T) {
	obs, err := New("internmatch-test")
	require.NoError(t, err)
	defer obs.Shutdown()

	obs.RecordRequest(context.Background(), "list_internships", "ok", 12*time.Millisecond)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "client_requests") {
			found = true
		}
	}
	assert.True(t, found, "request counter should be exported")
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordRequest(context.Background(), "login", "network", time.Second)
		obs.Shutdown()
	})
	assert.NotPanics(t, func() {
		(&Observability{}).RecordRequest(context.Background(), "login", "ok", time.Second)
	})
}
