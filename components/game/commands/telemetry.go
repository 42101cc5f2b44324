package commands

import "github.com/goliatone/go-gamedash/components/game"

// Telemetry is the sink commands report to; it is the store's Telemetry.
type Telemetry = game.Telemetry

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return game.DiscardTelemetry
	}
	return t
}
