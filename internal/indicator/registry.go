package indicator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/omupade20/prop8/internal/types"
)

// IndicatorRegistry manages the indicators reported for each instrument.
type IndicatorRegistry interface {
	RegisterIndicator(indicator Indicator) error
	GetIndicator(name string) (Indicator, error)
	ListIndicators() []string
	RemoveIndicator(name string) error
	// Evaluate computes every registered indicator over series and returns
	// the present readings keyed by name.
	Evaluate(series types.Series) map[string]float64
}

// IndicatorRegistryV1 is a mutex guarded IndicatorRegistry.
type IndicatorRegistryV1 struct {
	indicators map[string]Indicator
	mu         sync.RWMutex
}

// NewIndicatorRegistry creates an empty registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		indicators: make(map[string]Indicator),
		mu:         sync.RWMutex{},
	}
}

// NewDefaultRegistry creates a registry with the indicators the decision
// pipeline reads: EMA 9/21/50, RSI 14, ATR 14, ADX 14 and the MACD histogram.
func NewDefaultRegistry() IndicatorRegistry {
	r := NewIndicatorRegistry()
	for _, ind := range []Indicator{
		NewEMA(9), NewEMA(21), NewEMA(50),
		NewRSI(14), NewATR(14), NewADX(14),
		NewMACDHistogram(12, 26, 9),
	} {
		// names are unique
		_ = r.RegisterIndicator(ind)
	}

	return r
}

// RegisterIndicator adds an indicator to the registry.
func (r *IndicatorRegistryV1) RegisterIndicator(indicator Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := indicator.Name()
	if _, exists := r.indicators[name]; exists {
		return fmt.Errorf("RegisterIndicator: indicator with name %s already registered", name)
	}

	r.indicators[name] = indicator

	return nil
}

// GetIndicator retrieves an indicator by name.
func (r *IndicatorRegistryV1) GetIndicator(name string) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indicator, exists := r.indicators[name]
	if !exists {
		return nil, fmt.Errorf("GetIndicator: indicator with name %s not found", name)
	}

	return indicator, nil
}

// ListIndicators returns the registered names in sorted order.
func (r *IndicatorRegistryV1) ListIndicators() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.indicators))
	for name := range r.indicators {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// RemoveIndicator removes an indicator from the registry.
func (r *IndicatorRegistryV1) RemoveIndicator(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[name]; !exists {
		return fmt.Errorf("RemoveIndicator: indicator with name %s not found", name)
	}

	delete(r.indicators, name)

	return nil
}

// Evaluate implements IndicatorRegistry.
func (r *IndicatorRegistryV1) Evaluate(series types.Series) map[string]float64 {
	r.mu.RLock()
	indicators := make([]Indicator, 0, len(r.indicators))
	for _, ind := range r.indicators {
		indicators = append(indicators, ind)
	}
	r.mu.RUnlock()

	out := make(map[string]float64, len(indicators))
	for _, ind := range indicators {
		if v := ind.Compute(series); v.IsSome() {
			out[ind.Name()] = v.Unwrap()
		}
	}

	return out
}
