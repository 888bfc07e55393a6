// Package logger writes leveled log lines with sorted key=value fields and
// mirrors them to Sentry as breadcrumbs. Errors are captured as events.
package logger

import (
	"context"
	"fmt"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/togramago/melodygen/internal/generator"
)

// Fields are structured key/value pairs attached to a log line.
type Fields map[string]interface{}

// Tags promoted from fields onto captured Sentry events.
var sentryTagFields = []string{"request_id", "time_signature", "source"}

type level struct {
	name   string
	sentry sentry.Level
}

var (
	levelDebug = level{"DEBUG", sentry.LevelDebug}
	levelInfo  = level{"INFO", sentry.LevelInfo}
	levelWarn  = level{"WARN", sentry.LevelWarning}
)

var debugEnabled atomic.Bool

// SetDebug turns Debug output on or off.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// DebugEnabled reports whether Debug lines are written.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// WithContext returns the request fields every handler log line carries.
func WithContext(c *gin.Context) Fields {
	return Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}
}

func Info(msg string, fields Fields) {
	write(levelInfo, msg, fields)
}

func Warn(msg string, fields Fields) {
	write(levelWarn, msg, fields)
}

// Debug is a no-op unless SetDebug(true) was called.
func Debug(msg string, fields Fields) {
	if DebugEnabled() {
		write(levelDebug, msg, fields)
	}
}

// Error logs err and captures it in Sentry with fields as context.
func Error(msg string, err error, fields Fields) {
	log.Printf("[ERROR] %s: %v %s", msg, err, formatFields(fields))

	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetContext("fields", sentry.Context(maps.Clone(fields)))
		for _, key := range sentryTagFields {
			if v, ok := fields[key].(string); ok && v != "" {
				scope.SetTag(key, v)
			}
		}
		hub.CaptureException(fmt.Errorf("%s: %w", msg, err))
	})
}

func write(l level, msg string, fields Fields) {
	log.Printf("[%s] %s %s", l.name, msg, formatFields(fields))

	if sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "log",
		Message:  msg,
		Data:     maps.Clone(fields),
		Level:    l.sentry,
	})
}

// LogGenerationRequest logs a finished generation, warns about partial
// bars and adds a span to the request's Sentry transaction.
func LogGenerationRequest(ctx context.Context, m *generator.Melody, duration time.Duration, fields Fields) {
	f := Fields{
		"key":            m.Key(),
		"time_signature": m.TimeSignature,
		"bars":           m.BarCount(),
		"voices":         len(m.Voices),
		"seed":           m.Seed,
		"closure":        m.Closure,
		"partial_bars":   m.PartialBars(),
		"duration_ms":    duration.Milliseconds(),
	}
	maps.Copy(f, fields)
	Info("Generation completed", f)

	if partial := m.PartialBars(); partial > 0 {
		Warn("Generation left partial bars", Fields{
			"request_id":   f["request_id"],
			"partial_bars": partial,
			"shortest":     m.ShortestNote.String(),
		})
	}

	if sentry.GetHubFromContext(ctx) != nil {
		span := sentry.StartSpan(ctx, "melody.generate")
		span.Description = m.Key()
		span.SetData("bars", m.BarCount())
		span.SetData("partial_bars", m.PartialBars())
		span.Finish()
	}
}

// GeneratorObserver returns an observer that writes generator events as
// Debug lines, or nil when debug logging is off.
func GeneratorObserver(fields Fields) generator.Observer {
	if !DebugEnabled() {
		return nil
	}
	return func(e generator.Event) {
		f := Fields{"voice": e.Voice, "bar": e.BarIndex + 1}
		maps.Copy(f, fields)
		switch e.Kind {
		case generator.EventNote:
			f["pitch"] = e.Note.Pitch.String()
			f["duration"] = e.Note.Duration.String()
			f["time"] = e.Note.Start
			f["remaining"] = e.Remaining
		case generator.EventBar, generator.EventPartial:
			if e.Bar != nil {
				f["notes"] = len(e.Bar.Notes)
				f["filled"] = e.Bar.Filled
				f["length"] = e.Bar.Length
			}
		}
		Debug("generator "+e.Kind.String(), f)
	}
}

// formatFields renders fields as {k=v, ...} in key order.
func formatFields(fields Fields) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		parts = append(parts, k+"="+formatValue(fields[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', 3, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
