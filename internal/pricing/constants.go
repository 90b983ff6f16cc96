package pricing

// Add-on costs in VND. They are the same for every tier.
const (
	// ElevatorBaseCost covers an elevator with up to ElevatorIncludedStops stops.
	ElevatorBaseCost      = 400_000_000.0
	ElevatorStopCost      = 15_000_000.0
	ElevatorIncludedStops = 3
	PoolUnitCost          = 9_000_000.0
)

// Area weights for a rooftop structure and the open terrace around it.
const (
	RoofTopStructureWeight = 1.0
	TerraceWeight          = 0.5
)

// Default base unit prices per converted m².
const (
	DefaultEcoPrice      = 6_000_000.0
	DefaultStandardPrice = 7_500_000.0
	DefaultLuxPrice      = 10_000_000.0
)

// PriceStep is the increment used when adjusting a tier price up or down.
const PriceStep = 100_000.0
