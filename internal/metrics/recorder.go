package metrics

import (
	"context"
	"time"
)

// Recorder fans measurements out to the in-process stats and to whichever
// of CloudWatch and Sentry are configured. Methods on a nil *Recorder do
// nothing.
type Recorder struct {
	stats      *Stats
	cloudwatch *Client
	sentry     *SentryMetrics
}

// NewRecorder builds a Recorder. cloudwatch and sentry may be nil.
func NewRecorder(cloudwatch *Client, sentry *SentryMetrics) *Recorder {
	return &Recorder{
		stats:      NewStats(),
		cloudwatch: cloudwatch,
		sentry:     sentry,
	}
}

func (r *Recorder) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if r == nil {
		return
	}
	r.stats.addRequest(statusCode)
	r.sentry.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	r.cloudwatch.RecordAPIRequest(endpoint, statusCode, duration)
}

func (r *Recorder) RecordGeneration(ctx context.Context, g Generation) {
	if r == nil {
		return
	}
	r.stats.addGeneration(g)
	r.sentry.RecordGeneration(ctx, g)
	r.cloudwatch.RecordGeneration(g)
}

// Snapshot returns the in-process counters; a nil Recorder reports zeros.
func (r *Recorder) Snapshot() StatsSnapshot {
	if r == nil {
		return NewStats().Snapshot()
	}
	return r.stats.Snapshot()
}
