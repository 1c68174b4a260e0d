package pipeline

import "assetpipe/internal/bus"

// Bus is the process-wide notification surface of the pipeline: three
// independently subscribable streams that any number of observers can
// attach to. Per-stream delivery order matches the dispatcher's emission
// order. The bus is created at startup (implicitly by New when the caller
// does not supply one) and carries no state across restarts.
type Bus struct {
	// AssetGenerated fires once per successfully delivered asset.
	AssetGenerated *bus.Stream[*GeneratedAsset]
	// GenerationFailed carries a human-readable message per failed request.
	GenerationFailed *bus.Stream[string]
	// ProgressUpdated carries fractions in [0,1] as a request advances.
	ProgressUpdated *bus.Stream[float64]
}

// NewBus returns a bus with empty streams.
func NewBus() *Bus {
	return &Bus{
		AssetGenerated:   bus.NewStream[*GeneratedAsset](),
		GenerationFailed: bus.NewStream[string](),
		ProgressUpdated:  bus.NewStream[float64](),
	}
}
