package report

import (
	"math"
	"strings"
	"testing"

	"github.com/Simplici0/housecost/internal/pricing"
)

func TestCompact(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{in: 2_998_125_000, want: "3,00 Tỷ"},
		{in: 2_990_000_000, want: "2,99 Tỷ"},
		{in: 1_000_000_000, want: "1,00 Tỷ"},
		{in: 430_000_000, want: "430 Triệu"},
		{in: 0, want: "0 Triệu"},
	}

	for _, tc := range cases {
		if got := Compact(tc.in); got != tc.want {
			t.Fatalf("Compact(%v)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoundVND(t *testing.T) {
	if got := RoundVND(7_687_499.6).IntPart(); got != 7_687_500 {
		t.Fatalf("RoundVND=%d, want 7687500", got)
	}
}

func TestVNDIncludesCurrencySymbol(t *testing.T) {
	got := VND(7_687_500)
	if !strings.HasSuffix(got, " ₫") {
		t.Fatalf("VND=%q, want ₫ suffix", got)
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, got)
	if digits != "7687500" {
		t.Fatalf("VND=%q, digits %q", got, digits)
	}
}

func TestAreaShares(t *testing.T) {
	shares := AreaShares(pricing.AreaBreakdown{
		FoundationArea:     40,
		BasementArea:       60,
		MainFloorArea:      300,
		RoofAndRoofTopArea: 100,
		TotalConvertedArea: 500,
	})

	want := map[string]float64{"Sàn các tầng": 60, "Móng": 20, "Mái": 20}
	total := 0.0
	for _, s := range shares {
		if math.Abs(s.Percent-want[s.Label]) > 1e-9 {
			t.Fatalf("%s percent=%v, want %v", s.Label, s.Percent, want[s.Label])
		}
		total += s.Percent
	}
	if math.Abs(total-100) > 1e-9 {
		t.Fatalf("shares sum to %v", total)
	}
}

func TestAreaShares_ZeroTotal(t *testing.T) {
	for _, s := range AreaShares(pricing.AreaBreakdown{}) {
		if s.Percent != 0 || math.IsNaN(s.Percent) {
			t.Fatalf("expected zero share, got %+v", s)
		}
	}
}

func TestWriteText(t *testing.T) {
	in := pricing.DefaultInput()
	in.HasElevator = true
	in.ElevatorStops = 5

	result, err := pricing.Estimate(in, pricing.DefaultPrices())
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	var b strings.Builder
	err = WriteText(&b, Quote{
		Title:    "Nhà phố Q7",
		Input:    in,
		Prices:   pricing.DefaultPrices(),
		Areas:    result.Areas,
		Packages: result.Packages,
	})
	if err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	body := b.String()
	for _, expected := range []string{"Nhà phố Q7", "Móng cọc", "Thang máy: 5 điểm dừng", "Gói Phổ Thông (khuyên dùng)", "Gói Tiết Kiệm", "Gói Cao Cấp", "Tỷ trọng:"} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q, got: %s", expected, body)
		}
	}
	if strings.Contains(body, "Tầng hầm") {
		t.Fatalf("expected basement row to be hidden without basement: %s", body)
	}
}
