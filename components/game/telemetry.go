package game

import (
	"context"
	"log/slog"
	"slices"
)

// Telemetry receives named store and command events with a flat payload.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// TelemetryFunc adapts a plain function to Telemetry.
type TelemetryFunc func(ctx context.Context, event string, payload map[string]any)

// Record calls f.
func (f TelemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	f(ctx, event, payload)
}

// DiscardTelemetry drops every event.
var DiscardTelemetry Telemetry = TelemetryFunc(func(context.Context, string, map[string]any) {})

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return DiscardTelemetry
	}
	return t
}

// LogTelemetry writes telemetry events as debug log lines, payload keys in
// sorted order.
type LogTelemetry struct {
	Logger *slog.Logger
}

// Record logs event with payload flattened into attributes.
func (t LogTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, payload[k]))
	}
	logger.LogAttrs(ctx, slog.LevelDebug, event, attrs...)
}
