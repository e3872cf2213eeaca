package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "trendsmith-test"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	span, ctx := NewSpan(context.Background(), "noop")
	span.AddAttributes()
	span.SetError(errors.New("ignored"))
	span.End()
	assert.NotNil(t, ctx)
}

func TestTrackUpstream_RecordsOutcome(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequests.WithLabelValues("test-svc", "op", "error"))

	done := TrackUpstream("test-svc", "op")
	done(errors.New("boom"))

	after := testutil.ToFloat64(UpstreamRequests.WithLabelValues("test-svc", "op", "error"))
	assert.Equal(t, before+1, after)
}

func TestRepoLogger_WritesTable(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(slog.Default())

	NewRepoLogger("trends").LogDelete(context.Background(), slog.String("trend_id", "t1"))

	out := buf.String()
	assert.Contains(t, out, "table=trends")
	assert.Contains(t, out, "operation=delete")
	assert.Contains(t, out, "trend_id=t1")
}
