package types

// SRType tells a support level from a resistance level.
type SRType string

const (
	SRTypeSupport    SRType = "support"
	SRTypeResistance SRType = "resistance"
)

// SRCluster is a group of nearby extrema collapsed into one price level.
type SRCluster struct {
	Level   float64
	Members int
	// Strength equals Members.
	Strength int
}

// SRLevels holds the clustered levels for one evaluation. Supports are
// ascending by price, resistances descending.
type SRLevels struct {
	Supports    []SRCluster
	Resistances []SRCluster
}

// NearestSR is the level closest to the current price.
type NearestSR struct {
	Type  SRType
	Level float64
	// Distance is the relative distance to price as a fraction.
	Distance float64
	Strength int
}

// Favors reports whether the level supports the given trade direction.
func (n NearestSR) Favors(d Direction) bool {
	return (n.Type == SRTypeSupport && d == DirectionLong) ||
		(n.Type == SRTypeResistance && d == DirectionShort)
}
