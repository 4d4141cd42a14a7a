package salesboard

import (
	"context"

	"github.com/rs/zerolog"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// LoggerTelemetry writes events as structured zerolog lines.
type LoggerTelemetry struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewLoggerTelemetry logs events at info level.
func NewLoggerTelemetry(logger zerolog.Logger) *LoggerTelemetry {
	return &LoggerTelemetry{logger: logger, level: zerolog.InfoLevel}
}

// WithLevel returns a copy logging at level.
func (t *LoggerTelemetry) WithLevel(level zerolog.Level) *LoggerTelemetry {
	next := *t
	next.level = level
	return &next
}

// Record implements Telemetry.
func (t *LoggerTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	if t == nil {
		return
	}
	entry := t.logger.WithLevel(t.level).Str("event", event)
	if len(payload) > 0 {
		entry = entry.Fields(payload)
	}
	entry.Msg("salesboard event")
}
