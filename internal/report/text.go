package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Simplici0/housecost/internal/pricing"
)

// Quote is everything needed to print an estimate.
type Quote struct {
	Title    string
	Notes    string
	Input    pricing.Input
	Prices   pricing.PriceConfig
	Areas    pricing.AreaBreakdown
	Packages []pricing.CostBreakdown
}

// WriteText writes a plain-text quote.
func WriteText(w io.Writer, q Quote) error {
	var b strings.Builder

	if q.Title != "" {
		fmt.Fprintf(&b, "%s\n", q.Title)
	}
	if q.Notes != "" {
		fmt.Fprintf(&b, "Ghi chú: %s\n", q.Notes)
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}

	in := q.Input
	b.WriteString("Thông số công trình:\n")
	fmt.Fprintf(&b, "- Kích thước: %sm x %sm\n", Number(in.Width), Number(in.Length))
	fmt.Fprintf(&b, "- Số tầng lầu: %d\n", in.Floors)
	fmt.Fprintf(&b, "- Kết cấu: %s, %s, %s\n", in.Foundation.Label(), in.Basement.Label(), in.Roof.Label())
	if in.HasRoofTop {
		fmt.Fprintf(&b, "- Tum: %s\n", Area(in.RoofTopArea))
	}
	fmt.Fprintf(&b, "- Vị trí: %s, đường %s, %s\n", in.Facades.Label(), in.Road.Label(), in.Neighbors.Label())
	if in.HasElevator {
		fmt.Fprintf(&b, "- Thang máy: %d điểm dừng\n", in.ElevatorStops)
	}
	if in.HasPool {
		fmt.Fprintf(&b, "- Hồ bơi: %s\n", Area(in.PoolArea))
	}

	a := q.Areas
	b.WriteString("\nDiện tích quy đổi:\n")
	fmt.Fprintf(&b, "- Diện tích đất: %s\n", Area(a.LandArea))
	fmt.Fprintf(&b, "- Móng: %s\n", Area(a.FoundationArea))
	if a.BasementArea > 0 {
		fmt.Fprintf(&b, "- Tầng hầm: %s\n", Area(a.BasementArea))
	}
	fmt.Fprintf(&b, "- Thân (Trệt + Lầu): %s\n", Area(a.MainFloorArea))
	fmt.Fprintf(&b, "- Mái & Tum: %s\n", Area(a.RoofAndRoofTopArea))
	fmt.Fprintf(&b, "- Tổng: %s\n", Area(a.TotalConvertedArea))

	b.WriteString("\nTỷ trọng:\n")
	for _, s := range AreaShares(a) {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", s.Label, s.Percent)
	}

	b.WriteString("\nGói thi công:\n")
	for _, p := range q.Packages {
		marker := ""
		if p.Recommended {
			marker = " (khuyên dùng)"
		}
		fmt.Fprintf(&b, "* %s%s\n", p.Name, marker)
		fmt.Fprintf(&b, "  Đơn giá: %s/m² x K %s\n", VND(p.FinalUnitPrice), Number(p.SiteMultiplier))
		fmt.Fprintf(&b, "  Phần thô & hoàn thiện: %s\n", VND(p.ConstructionCost))
		if p.ElevatorCost > 0 {
			fmt.Fprintf(&b, "  Thang máy: + %s\n", VND(p.ElevatorCost))
		}
		if p.PoolCost > 0 {
			fmt.Fprintf(&b, "  Hồ bơi: + %s\n", VND(p.PoolCost))
		}
		fmt.Fprintf(&b, "  Tổng: %s (%s)\n", VND(p.TotalCost), Compact(p.TotalCost))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
