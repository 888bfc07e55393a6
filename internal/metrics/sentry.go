package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryMetrics records request and generation spans on the request's
// Sentry transaction. Spans are dropped when Sentry is not initialized.
type SentryMetrics struct{}

func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{}
}

// RecordAPIRequest adds a span describing a finished request.
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}

	ok := statusCode < http.StatusBadRequest
	span := sentry.StartSpan(ctx, "api.request")
	span.Description = fmt.Sprintf("%s -> %d", endpoint, statusCode)
	span.SetTag("endpoint", endpoint)
	span.SetTag("status_class", statusClass(statusCode))
	span.SetData("duration_ms", duration.Milliseconds())
	finish(span, ok, sentry.SpanStatusInternalError)
}

// RecordGeneration tags the current transaction with the melody's shape
// and adds a child span for the generation itself.
func (m *SentryMetrics) RecordGeneration(ctx context.Context, g Generation) {
	if m == nil {
		return
	}

	if tx := sentry.TransactionFromContext(ctx); tx != nil {
		tx.SetTag("melody.time_signature", g.TimeSignature)
		tx.SetTag("melody.outcome", g.outcome())
		tx.SetData("melody.partial_bars", g.PartialBars)
	}

	span := sentry.StartSpan(ctx, "melody.fill")
	span.Description = fmt.Sprintf("%d bars of %s", g.Bars, g.TimeSignature)
	span.SetTag("time_signature", g.TimeSignature)
	span.SetTag("partial", strconv.FormatBool(g.PartialBars > 0))
	span.SetData("duration_ms", g.Duration.Milliseconds())
	span.SetData("notes", g.Notes)
	finish(span, !g.Failed, sentry.SpanStatusInvalidArgument)
}

func finish(span *sentry.Span, ok bool, failure sentry.SpanStatus) {
	span.Status = sentry.SpanStatusOK
	if !ok {
		span.Status = failure
	}
	span.Finish()
}
