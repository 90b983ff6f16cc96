package pricing

import "math"

// Input holds the physical parameters of a building and its site.
// Numeric fields are not range checked here; callers validate them.
type Input struct {
	Width       float64        `json:"width" yaml:"width" validate:"gt=0"`
	Length      float64        `json:"length" yaml:"length" validate:"gt=0"`
	Floors      int            `json:"floors" yaml:"floors" validate:"gte=0"`
	Foundation  FoundationType `json:"foundation" yaml:"foundation" validate:"required"`
	Basement    BasementType   `json:"basement" yaml:"basement" validate:"required"`
	HasRoofTop  bool           `json:"hasRoofTop" yaml:"hasRoofTop"`
	RoofTopArea float64        `json:"roofTopArea" yaml:"roofTopArea" validate:"gte=0"`
	Roof        RoofType       `json:"roof" yaml:"roof" validate:"required"`

	Facades   FacadeCount       `json:"facades" yaml:"facades" validate:"required"`
	Road      RoadWidth         `json:"road" yaml:"road" validate:"required"`
	Neighbors NeighborCondition `json:"neighbors" yaml:"neighbors" validate:"required"`

	HasElevator   bool    `json:"hasElevator" yaml:"hasElevator"`
	ElevatorStops int     `json:"elevatorStops" yaml:"elevatorStops" validate:"gte=0"`
	HasPool       bool    `json:"hasPool" yaml:"hasPool"`
	PoolArea      float64 `json:"poolArea" yaml:"poolArea" validate:"gte=0"`
}

// DefaultInput returns a typical 5x20 m townhouse with two upper floors.
func DefaultInput() Input {
	return Input{
		Width:         5,
		Length:        20,
		Floors:        2,
		Foundation:    FoundationPile,
		Basement:      BasementNone,
		RoofTopArea:   20,
		Roof:          RoofConcrete,
		Facades:       FacadeOne,
		Road:          RoadMedium,
		Neighbors:     NeighborsBothBuilt,
		ElevatorStops: 3,
		PoolArea:      25,
	}
}

// AreaBreakdown is the converted area of a building, in m².
// TotalConvertedArea is the sum of the four component areas.
type AreaBreakdown struct {
	LandArea           float64 `json:"landArea"`
	FoundationArea     float64 `json:"foundationArea"`
	BasementArea       float64 `json:"basementArea"`
	MainFloorArea      float64 `json:"mainFloorArea"`
	RoofAndRoofTopArea float64 `json:"roofAndRoofTopArea"`
	TotalConvertedArea float64 `json:"totalConvertedArea"`
}

// ComputeAreas converts building parameters into converted areas.
// It fails only when a category is not recognized.
func ComputeAreas(in Input) (AreaBreakdown, error) {
	foundationCoeff, err := in.Foundation.Coefficient()
	if err != nil {
		return AreaBreakdown{}, err
	}
	basementCoeff, err := in.Basement.Coefficient()
	if err != nil {
		return AreaBreakdown{}, err
	}
	roofCoeff, err := in.Roof.Coefficient()
	if err != nil {
		return AreaBreakdown{}, err
	}

	landArea := in.Width * in.Length
	foundationArea := landArea * foundationCoeff
	basementArea := landArea * basementCoeff

	// Ground floor plus every upper floor.
	mainFloorArea := landArea * float64(1+in.Floors)

	var roofArea float64
	if in.HasRoofTop {
		terraceArea := math.Max(0, landArea-in.RoofTopArea)
		roofArea = in.RoofTopArea*RoofTopStructureWeight +
			terraceArea*TerraceWeight +
			in.RoofTopArea*roofCoeff
	} else {
		roofArea = landArea * roofCoeff
	}

	return AreaBreakdown{
		LandArea:           landArea,
		FoundationArea:     foundationArea,
		BasementArea:       basementArea,
		MainFloorArea:      mainFloorArea,
		RoofAndRoofTopArea: roofArea,
		TotalConvertedArea: foundationArea + basementArea + mainFloorArea + roofArea,
	}, nil
}
