package pricing

import (
	"fmt"
	"math"
)

// Tier identifies a price-quality package.
type Tier string

const (
	TierEco      Tier = "eco"
	TierStandard Tier = "standard"
	TierLux      Tier = "lux"
)

// Tiers lists every tier in presentation order.
func Tiers() []Tier {
	return []Tier{TierEco, TierStandard, TierLux}
}

// UnmarshalText rejects unknown tier tags.
func (t *Tier) UnmarshalText(text []byte) error {
	switch tier := Tier(text); tier {
	case TierEco, TierStandard, TierLux:
		*t = tier
		return nil
	}
	return fmt.Errorf("%w: tier %q", ErrUnknownCategory, string(text))
}

type tierStyle struct {
	name        string
	theme       string
	recommended bool
}

var tierStyles = map[Tier]tierStyle{
	TierEco:      {name: "Gói Tiết Kiệm", theme: "gray"},
	TierStandard: {name: "Gói Phổ Thông", theme: "blue", recommended: true},
	TierLux:      {name: "Gói Cao Cấp", theme: "amber"},
}

// PriceConfig holds the base unit price per converted m² for each tier.
type PriceConfig struct {
	Eco      float64 `json:"eco" yaml:"eco"`
	Standard float64 `json:"standard" yaml:"standard"`
	Lux      float64 `json:"lux" yaml:"lux"`
}

// DefaultPrices returns the stock price table.
func DefaultPrices() PriceConfig {
	return PriceConfig{
		Eco:      DefaultEcoPrice,
		Standard: DefaultStandardPrice,
		Lux:      DefaultLuxPrice,
	}
}

// Price returns the base unit price of a tier.
func (p PriceConfig) Price(t Tier) (float64, error) {
	switch t {
	case TierEco:
		return p.Eco, nil
	case TierStandard:
		return p.Standard, nil
	case TierLux:
		return p.Lux, nil
	}
	return 0, fmt.Errorf("%w: tier %q", ErrUnknownCategory, string(t))
}

// With returns a copy of p with the tier price replaced.
func (p PriceConfig) With(t Tier, price float64) (PriceConfig, error) {
	switch t {
	case TierEco:
		p.Eco = price
	case TierStandard:
		p.Standard = price
	case TierLux:
		p.Lux = price
	default:
		return p, fmt.Errorf("%w: tier %q", ErrUnknownCategory, string(t))
	}
	return p, nil
}

// Clamp returns a copy of p with negative prices raised to zero.
func (p PriceConfig) Clamp() PriceConfig {
	return PriceConfig{
		Eco:      math.Max(0, p.Eco),
		Standard: math.Max(0, p.Standard),
		Lux:      math.Max(0, p.Lux),
	}
}

// Step moves one tier price by steps*PriceStep and clamps the result at zero.
func (p PriceConfig) Step(t Tier, steps int) (PriceConfig, error) {
	current, err := p.Price(t)
	if err != nil {
		return p, err
	}
	return p.With(t, math.Max(0, current+float64(steps)*PriceStep))
}

// CostBreakdown is the priced result for one tier.
type CostBreakdown struct {
	Tier             Tier    `json:"tier"`
	Name             string  `json:"name"`
	BasePrice        float64 `json:"basePrice"`
	SiteMultiplier   float64 `json:"siteMultiplier"`
	FinalUnitPrice   float64 `json:"finalUnitPrice"`
	ConstructionCost float64 `json:"constructionCost"`
	ElevatorCost     float64 `json:"elevatorCost"`
	PoolCost         float64 `json:"poolCost"`
	TotalCost        float64 `json:"totalCost"`
	Theme            string  `json:"theme"`
	Recommended      bool    `json:"recommended"`
}

// SiteMultiplier returns the K-factor shared by all tiers:
// 1 plus the facade, road and neighbor surcharges.
func SiteMultiplier(in Input) (float64, error) {
	facade, err := in.Facades.Coefficient()
	if err != nil {
		return 0, err
	}
	road, err := in.Road.Coefficient()
	if err != nil {
		return 0, err
	}
	neighbors, err := in.Neighbors.Coefficient()
	if err != nil {
		return 0, err
	}
	return 1 + facade + road + neighbors, nil
}

// ElevatorCost returns the one-time elevator add-on.
func ElevatorCost(in Input) float64 {
	if !in.HasElevator {
		return 0
	}
	extraStops := max(0, in.ElevatorStops-ElevatorIncludedStops)
	return ElevatorBaseCost + float64(extraStops)*ElevatorStopCost
}

// PoolCost returns the pool add-on.
func PoolCost(in Input) float64 {
	if !in.HasPool {
		return 0
	}
	return in.PoolArea * PoolUnitCost
}

// ComputeCosts prices the converted area for every tier. The result always
// has three entries ordered Eco, Standard, Lux. Prices are used as given.
func ComputeCosts(in Input, areas AreaBreakdown, prices PriceConfig) ([]CostBreakdown, error) {
	multiplier, err := SiteMultiplier(in)
	if err != nil {
		return nil, err
	}

	elevatorCost := ElevatorCost(in)
	poolCost := PoolCost(in)

	tiers := Tiers()
	packages := make([]CostBreakdown, 0, len(tiers))
	for _, tier := range tiers {
		basePrice, _ := prices.Price(tier)
		style := tierStyles[tier]

		finalUnitPrice := basePrice * multiplier
		constructionCost := areas.TotalConvertedArea * finalUnitPrice

		packages = append(packages, CostBreakdown{
			Tier:             tier,
			Name:             style.name,
			BasePrice:        basePrice,
			SiteMultiplier:   multiplier,
			FinalUnitPrice:   finalUnitPrice,
			ConstructionCost: constructionCost,
			ElevatorCost:     elevatorCost,
			PoolCost:         poolCost,
			TotalCost:        constructionCost + elevatorCost + poolCost,
			Theme:            style.theme,
			Recommended:      style.recommended,
		})
	}

	return packages, nil
}

// Result groups the full estimate for one set of inputs.
type Result struct {
	Areas    AreaBreakdown   `json:"areas"`
	Packages []CostBreakdown `json:"packages"`
}

// Recommended returns the package flagged as the default choice.
func (r Result) Recommended() (CostBreakdown, bool) {
	for _, p := range r.Packages {
		if p.Recommended {
			return p, true
		}
	}
	return CostBreakdown{}, false
}

// Estimate computes areas and tier costs in one call.
func Estimate(in Input, prices PriceConfig) (Result, error) {
	areas, err := ComputeAreas(in)
	if err != nil {
		return Result{}, fmt.Errorf("compute areas: %w", err)
	}

	packages, err := ComputeCosts(in, areas, prices)
	if err != nil {
		return Result{}, fmt.Errorf("compute costs: %w", err)
	}

	return Result{Areas: areas, Packages: packages}, nil
}
