package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// DataGenerator generates realistic price series for testing and benchmarking.
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

// GeneratorConfig configures how price samples are generated.
type GeneratorConfig struct {
	// StartTime is the timestamp of the first sample
	StartTime time.Time
	// Interval is the duration between samples
	Interval time.Duration
	// Count is the number of samples to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% per sample)
	Volatility float64
	// Trend is the drift factor spread across the whole series (-0.01 to 0.01 for bearish to bullish)
	Trend float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartTime:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:     5 * time.Minute,
		Count:        10000,
		InitialPrice: 27000.0,
		Volatility:   0.002, // 0.2% per sample
		Trend:        0.0,   // neutral
	}
}

// Generate creates a price series based on the configuration.
// Prices follow a geometric Brownian motion model and timestamps are strictly increasing.
func (g *DataGenerator) Generate(config GeneratorConfig) types.PriceSeries {
	series := make(types.PriceSeries, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		series[i] = types.PriceSample{
			Timestamp: currentTime.UnixMilli(),
			Price:     roundToDecimals(currentPrice, 4),
		}

		// Using Box-Muller transform for normal distribution
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		drift := config.Trend / float64(config.Count) // Distribute trend across samples

		next := currentPrice * (1 + config.Volatility*z + drift)
		if next <= 0 {
			next = currentPrice * 0.99 // Prevent negative prices
		}

		currentPrice = next
		currentTime = currentTime.Add(config.Interval)
	}

	return series
}

// GenerateMultiSymbol generates one series per symbol.
func (g *DataGenerator) GenerateMultiSymbol(symbols []string, baseConfig GeneratorConfig) map[string]types.PriceSeries {
	result := make(map[string]types.PriceSeries, len(symbols))

	for _, symbol := range symbols {
		config := baseConfig
		// Vary initial price and volatility slightly per symbol
		config.InitialPrice = baseConfig.InitialPrice * (0.8 + g.rng.Float64()*0.4)
		config.Volatility = baseConfig.Volatility * (0.8 + g.rng.Float64()*0.4)

		result[symbol] = g.Generate(config)
	}

	return result
}

// Generate10K is a convenience function to generate 10,000 samples
// with default settings for benchmarking.
func Generate10K() types.PriceSeries {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Count = 10000

	return gen.Generate(config)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
