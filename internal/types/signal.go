package types

import "github.com/moznion/go-optional"

// StructureClass grades a structure signal.
type StructureClass string

const (
	StructureConfirmed StructureClass = "CONFIRMED"
	StructurePotential StructureClass = "POTENTIAL"
)

// StructureComponents holds the per-component scores of a detector. A detector
// fills only the components it uses.
type StructureComponents struct {
	// breakout detector
	Compression  float64
	ATRExpansion float64
	Volume       float64

	// pullback detector
	Location    float64
	PriceAction float64
	Volatility  float64
	Momentum    float64
	Potential   float64
}

// StructureSignal is the output of a structure detector.
type StructureSignal struct {
	Class      StructureClass
	Direction  Direction
	Score      float64
	Components StructureComponents

	Nearest         optional.Option[NearestSR]
	ATR             float64
	VolumeState     string
	VolatilityState VolatilityState
}
