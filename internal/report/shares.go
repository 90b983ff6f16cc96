package report

import "github.com/Simplici0/housecost/internal/pricing"

// Share is one slice of the converted-area chart.
type Share struct {
	Label   string  `json:"label"`
	Area    float64 `json:"area"`
	Percent float64 `json:"percent"`
}

// AreaShares groups the converted area into floors, foundation (including
// basement) and roof. Percentages are zero when the total is not positive.
func AreaShares(areas pricing.AreaBreakdown) []Share {
	shares := []Share{
		{Label: "Sàn các tầng", Area: areas.MainFloorArea},
		{Label: "Móng", Area: areas.FoundationArea + areas.BasementArea},
		{Label: "Mái", Area: areas.RoofAndRoofTopArea},
	}

	if areas.TotalConvertedArea <= 0 {
		return shares
	}
	for i := range shares {
		shares[i].Percent = shares[i].Area / areas.TotalConvertedArea * 100
	}
	return shares
}
