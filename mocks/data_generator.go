package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/internal/utils"
)

// DataGenerator produces synthetic 1-minute bars for tests and benchmarks.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how bars are generated.
type GeneratorConfig struct {
	// StartTime is the timestamp of the first bar
	StartTime time.Time
	// Count is the number of bars to generate
	Count int
	// InitialPrice is the open of the first bar
	InitialPrice float64
	// Volatility is the per-bar standard deviation of returns (0.002 = 0.2%)
	Volatility float64
	// Drift is the mean per-bar return (positive for an uptrend)
	Drift float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the relative spread of volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns one NSE session of flat, liquid bars.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartTime:      time.Date(2025, 3, 10, 3, 45, 0, 0, time.UTC),
		Count:          375,
		InitialPrice:   100.0,
		Volatility:     0.002,
		Drift:          0,
		VolumeBase:     60000,
		VolumeVariance: 0.3,
	}
}

// Generate returns Count consecutive 1-minute bars following a geometric
// Brownian motion. Every bar is valid.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.Bar {
	bars := make([]types.Bar, config.Count)
	price := config.InitialPrice
	ts := config.StartTime.UTC().Truncate(time.Minute)

	for i := range bars {
		open := price

		// Box-Muller
		u1 := math.Max(g.rng.Float64(), math.SmallestNonzeroFloat64)
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		closePrice := open * (1 + config.Volatility*z + config.Drift)
		if closePrice <= 0 {
			closePrice = open * 0.99
		}

		high := math.Max(open, closePrice) + math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
		low := math.Min(open, closePrice) - math.Abs(g.rng.Float64()*config.Volatility*open*0.5)

		if low <= 0 {
			low = math.Min(open, closePrice) * 0.99
		}

		volume := config.VolumeBase * (1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance)
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		bars[i] = types.Bar{
			Timestamp: ts,
			Open:      utils.Round(open, 4),
			High:      utils.Round(high, 4),
			Low:       utils.Round(low, 4),
			Close:     utils.Round(closePrice, 4),
			Volume:    utils.Round(volume, 0),
		}

		// keep the rounded bar consistent
		bars[i].High = math.Max(bars[i].High, math.Max(bars[i].Open, bars[i].Close))
		bars[i].Low = math.Min(bars[i].Low, math.Min(bars[i].Open, bars[i].Close))

		price = closePrice
		ts = ts.Add(time.Minute)
	}

	return bars
}

// GenerateUniverse generates bars for each instrument, varying the initial
// price and volatility slightly per instrument.
func (g *DataGenerator) GenerateUniverse(instruments []string, base GeneratorConfig) map[string][]types.Bar {
	out := make(map[string][]types.Bar, len(instruments))

	for _, inst := range instruments {
		config := base
		config.InitialPrice = base.InitialPrice * (0.8 + g.rng.Float64()*0.4)
		config.Volatility = base.Volatility * (0.8 + g.rng.Float64()*0.4)

		out[inst] = g.Generate(config)
	}

	return out
}

// GenerateSession returns one default session for a fixed seed.
func GenerateSession(seed int64) []types.Bar {
	return NewDataGenerator(seed).Generate(DefaultConfig())
}
