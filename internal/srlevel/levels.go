// Package srlevel derives support and resistance levels by clustering local
// extrema of the recent high/low history.
package srlevel

import (
	"math"
	"slices"
	"sort"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/internal/utils"
)

const (
	// DefaultMaxSearchPct bounds how far the nearest level may be from price.
	DefaultMaxSearchPct = 0.03
	// DefaultProximity is the distance beyond which a level has no location influence.
	DefaultProximity = 0.015

	epsilon = 1e-9
)

// Params controls ComputeLevels.
type Params struct {
	Lookback  int     `yaml:"lookback" json:"lookback" validate:"gte=0"`
	Window    int     `yaml:"window" json:"window" validate:"gte=2"`
	Tolerance float64 `yaml:"tolerance" json:"tolerance" validate:"gt=0,lt=1"`
	MaxLevels int     `yaml:"max_levels" json:"max_levels" validate:"gte=1"`
}

// DefaultParams returns the intraday defaults: 240 bars, window 5, 0.5%
// tolerance and five levels per side.
func DefaultParams() Params {
	return Params{
		Lookback:  240,
		Window:    5,
		Tolerance: 0.005,
		MaxLevels: 5,
	}
}

// DetectExtrema returns the local maxima and minima of series. A point is a
// maximum when it is strictly greater than every point within window/2 on
// both sides; minima are symmetric. Edges are never classified and series
// shorter than 2*window+1 yield nothing.
func DetectExtrema(series []float64, window int) (maxima, minima []float64) {
	maxima, minima = []float64{}, []float64{}

	n := len(series)
	if window < 1 || n < 2*window+1 {
		return maxima, minima
	}

	half := window / 2
	for i := half; i < n-half; i++ {
		center := series[i]
		isMax, isMin := true, true

		for j := i - half; j <= i+half; j++ {
			if j == i {
				continue
			}

			if center <= series[j] {
				isMax = false
			}

			if center >= series[j] {
				isMin = false
			}
		}

		if isMax {
			maxima = append(maxima, center)
		}

		if isMin {
			minima = append(minima, center)
		}
	}

	return maxima, minima
}

// Cluster groups sorted points greedily: a point joins the current cluster
// when it is within tolerancePct of the running cluster mean. The result does
// not depend on the order of points.
func Cluster(points []float64, tolerancePct float64) []types.SRCluster {
	if len(points) == 0 {
		return []types.SRCluster{}
	}

	sorted := slices.Clone(points)
	sort.Float64s(sorted)

	clusters := []types.SRCluster{}
	sum, count := sorted[0], 1

	flush := func() {
		clusters = append(clusters, types.SRCluster{
			Level:    utils.Round(sum/float64(count), 6),
			Members:  count,
			Strength: count,
		})
	}

	for _, p := range sorted[1:] {
		mean := sum / float64(count)
		if math.Abs(p-mean) <= mean*tolerancePct {
			sum += p
			count++

			continue
		}

		flush()

		sum, count = p, 1
	}

	flush()

	return clusters
}

// ComputeLevels clusters maxima of highs into resistances and minima of lows
// into supports over the last Lookback bars. Each side keeps the MaxLevels
// clusters closest to the midpoint of the newest bar; supports are returned
// ascending and resistances descending.
func ComputeLevels(highs, lows []float64, params Params) types.SRLevels {
	levels := types.SRLevels{Supports: []types.SRCluster{}, Resistances: []types.SRCluster{}}

	if params.Lookback > 0 {
		highs = utils.Tail(highs, params.Lookback)
		lows = utils.Tail(lows, params.Lookback)
	}

	if len(highs) == 0 || len(lows) == 0 {
		return levels
	}

	maxima, _ := DetectExtrema(highs, params.Window)
	_, minima := DetectExtrema(lows, params.Window)

	ref := (highs[len(highs)-1] + lows[len(lows)-1]) / 2

	levels.Supports = closest(Cluster(minima, params.Tolerance), ref, params.MaxLevels)
	levels.Resistances = closest(Cluster(maxima, params.Tolerance), ref, params.MaxLevels)

	sort.Slice(levels.Supports, func(i, j int) bool { return levels.Supports[i].Level < levels.Supports[j].Level })
	sort.Slice(levels.Resistances, func(i, j int) bool { return levels.Resistances[i].Level > levels.Resistances[j].Level })

	return levels
}

func closest(clusters []types.SRCluster, ref float64, limit int) []types.SRCluster {
	if limit <= 0 || len(clusters) <= limit {
		return clusters
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return math.Abs(clusters[i].Level-ref) < math.Abs(clusters[j].Level-ref)
	})

	return clusters[:limit]
}

// Nearest returns the level with the smallest relative distance to price, or
// absent when that distance exceeds maxSearchPct. Support distance is measured
// against the level and resistance distance against the price.
func Nearest(price float64, levels types.SRLevels, maxSearchPct float64) optional.Option[types.NearestSR] {
	best := types.NearestSR{}
	bestDist := math.Inf(1)

	for _, s := range levels.Supports {
		dist := math.Abs(price-s.Level) / math.Max(s.Level, epsilon)
		if dist < bestDist {
			bestDist = dist
			best = types.NearestSR{Type: types.SRTypeSupport, Level: s.Level, Distance: dist, Strength: s.Strength}
		}
	}

	for _, r := range levels.Resistances {
		dist := math.Abs(r.Level-price) / math.Max(price, epsilon)
		if dist < bestDist {
			bestDist = dist
			best = types.NearestSR{Type: types.SRTypeResistance, Level: r.Level, Distance: dist, Strength: r.Strength}
		}
	}

	if math.IsInf(bestDist, 1) || bestDist > maxSearchPct {
		return optional.None[types.NearestSR]()
	}

	return optional.Some(best)
}

// LocationScore grades how favorable the nearest level is for direction, in
// [-1, 1]. It is zero beyond threshold, scales with closeness and with the
// level's strength, and is positive when the level favors direction.
func LocationScore(nearest optional.Option[types.NearestSR], direction types.Direction, threshold float64) float64 {
	n, err := nearest.Take()
	if err != nil || n.Distance > threshold {
		return 0
	}

	closeness := math.Max(0, (threshold-n.Distance)/(threshold+epsilon))
	strength := math.Min(1.5, 0.75+0.25*float64(max(n.Strength, 1)))

	sign := -1.0
	if n.Favors(direction) {
		sign = 1.0
	}

	return utils.Round(utils.Clamp(sign*closeness*strength, -1, 1), 3)
}
