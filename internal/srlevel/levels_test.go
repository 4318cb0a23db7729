package srlevel

import (
	"math/rand"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/types"
	"github.com/stretchr/testify/suite"
)

type SRLevelTestSuite struct {
	suite.Suite
}

func TestSRLevelSuite(t *testing.T) {
	suite.Run(t, new(SRLevelTestSuite))
}

func (suite *SRLevelTestSuite) TestDetectExtrema() {
	series := []float64{1, 2, 3, 2, 1, 2, 3, 4, 3, 2, 1}

	maxima, minima := DetectExtrema(series, 5)
	suite.Equal([]float64{3, 4}, maxima)
	suite.Equal([]float64{1}, minima)
}

func (suite *SRLevelTestSuite) TestDetectExtremaStrict() {
	series := []float64{1, 1, 3, 3, 1, 1, 1, 1, 1, 1, 1}

	maxima, minima := DetectExtrema(series, 5)
	suite.Empty(maxima, "equal neighbours are not extrema")
	suite.Empty(minima)
}

func (suite *SRLevelTestSuite) TestDetectExtremaShortSeries() {
	maxima, minima := DetectExtrema([]float64{1, 3, 1, 3, 1}, 5)
	suite.Empty(maxima)
	suite.Empty(minima)
}

func (suite *SRLevelTestSuite) TestCluster() {
	clusters := Cluster([]float64{100, 100.2, 100.4, 105, 105.1}, 0.005)

	suite.Require().Len(clusters, 2)
	suite.InDelta(100.2, clusters[0].Level, 1e-9)
	suite.Equal(3, clusters[0].Members)
	suite.Equal(3, clusters[0].Strength)
	suite.InDelta(105.05, clusters[1].Level, 1e-9)
	suite.Equal(2, clusters[1].Members)

	suite.Empty(Cluster(nil, 0.005))
}

func (suite *SRLevelTestSuite) TestClusterIgnoresInputOrder() {
	points := []float64{100, 100.3, 99.8, 102, 102.4, 110, 109.7, 100.1, 101.9, 110.2}
	want := Cluster(points, 0.005)

	rng := rand.New(rand.NewSource(7))
	for range 20 {
		shuffled := append([]float64(nil), points...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		suite.Equal(want, Cluster(shuffled, 0.005))
	}
}

func (suite *SRLevelTestSuite) TestComputeLevels() {
	highs := []float64{}
	lows := []float64{}

	// three swings: highs peak at 110, 120, 130 and lows bottom at 90, 95, 93
	for _, swing := range []struct{ peak, trough float64 }{{110, 90}, {120, 95}, {130, 93}} {
		highs = append(highs, 100, 102, swing.peak, 102, 100, 100)
		lows = append(lows, 98, 97, swing.trough, 97, 98, 98)
	}

	levels := ComputeLevels(highs, lows, Params{Lookback: 240, Window: 5, Tolerance: 0.005, MaxLevels: 2})

	suite.Len(levels.Resistances, 2)
	suite.Equal(120.0, levels.Resistances[0].Level)
	suite.Equal(110.0, levels.Resistances[1].Level)

	suite.Len(levels.Supports, 2)
	suite.Equal(93.0, levels.Supports[0].Level)
	suite.Equal(95.0, levels.Supports[1].Level)
}

func (suite *SRLevelTestSuite) TestComputeLevelsEmpty() {
	levels := ComputeLevels(nil, nil, DefaultParams())
	suite.Empty(levels.Supports)
	suite.Empty(levels.Resistances)
}

func (suite *SRLevelTestSuite) TestNearest() {
	levels := types.SRLevels{
		Supports:    []types.SRCluster{{Level: 98, Members: 2, Strength: 2}},
		Resistances: []types.SRCluster{{Level: 101, Members: 1, Strength: 1}},
	}

	nearest := Nearest(100.5, levels, DefaultMaxSearchPct)
	suite.Require().True(nearest.IsSome())
	suite.Equal(types.SRTypeResistance, nearest.Unwrap().Type)
	suite.InDelta(0.5/100.5, nearest.Unwrap().Distance, 1e-12)

	nearest = Nearest(98.3, levels, DefaultMaxSearchPct)
	suite.Equal(types.SRTypeSupport, nearest.Unwrap().Type)
	suite.Equal(2, nearest.Unwrap().Strength)

	suite.True(Nearest(200, levels, DefaultMaxSearchPct).IsNone())
	suite.True(Nearest(100, types.SRLevels{}, DefaultMaxSearchPct).IsNone())
}

func (suite *SRLevelTestSuite) TestLocationScoreThreshold() {
	support := func(dist float64, strength int) optional.Option[types.NearestSR] {
		return optional.Some(types.NearestSR{Type: types.SRTypeSupport, Level: 100, Distance: dist, Strength: strength})
	}

	suite.Equal(0.0, LocationScore(optional.None[types.NearestSR](), types.DirectionLong, DefaultProximity))
	suite.Equal(0.0, LocationScore(support(0.016, 3), types.DirectionLong, DefaultProximity))
	suite.Equal(1.0, LocationScore(support(0, 1), types.DirectionLong, DefaultProximity))
	suite.Equal(-1.0, LocationScore(support(0, 3), types.DirectionShort, DefaultProximity))
	suite.InDelta(0.5, LocationScore(support(0.0075, 1), types.DirectionLong, DefaultProximity), 1e-3)
	suite.InDelta(0.625, LocationScore(support(0.0075, 2), types.DirectionLong, DefaultProximity), 1e-3)
}

func (suite *SRLevelTestSuite) TestLocationScoreMonotonic() {
	prev := 2.0

	for dist := 0.0; dist <= 0.02; dist += 0.001 {
		nearest := optional.Some(types.NearestSR{Type: types.SRTypeResistance, Level: 100, Distance: dist, Strength: 1})
		score := LocationScore(nearest, types.DirectionShort, DefaultProximity)

		suite.LessOrEqual(score, prev)
		suite.GreaterOrEqual(score, 0.0)
		prev = score
	}
}
