package main

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"testing"

	"github.com/Simplici0/housecost/internal/advice"
	"github.com/Simplici0/housecost/internal/pricing"
)

const defaultInputJSON = `{
	"width": 5, "length": 20, "floors": 2,
	"foundation": "pile", "basement": "none", "roof": "concrete",
	"facades": "one", "road": "medium", "neighbors": "both_built"
}`

func TestHandleEstimate_DefaultTownhouse(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv.routes(), http.MethodPost, "/api/estimate", defaultInputJSON)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp estimateResponse
	decodeBody(t, rr, &resp)

	if resp.Areas.TotalConvertedArea != 390 {
		t.Fatalf("totalConvertedArea=%v, want 390", resp.Areas.TotalConvertedArea)
	}
	if len(resp.Packages) != 3 || resp.Packages[1].Tier != pricing.TierStandard {
		t.Fatalf("unexpected packages: %+v", resp.Packages)
	}
	if math.Abs(resp.Packages[1].TotalCost-2_998_125_000) > 1e-3 {
		t.Fatalf("standard total=%v", resp.Packages[1].TotalCost)
	}
	if resp.Prices != pricing.DefaultPrices() {
		t.Fatalf("expected stored default prices, got %+v", resp.Prices)
	}
	if len(resp.Shares) != 3 {
		t.Fatalf("expected 3 area shares, got %d", len(resp.Shares))
	}
}

func TestHandleEstimate_PriceOverrideIsClamped(t *testing.T) {
	srv := newTestServer(t)

	body := strings.Replace(defaultInputJSON, `"floors": 2,`, `"floors": 2, "prices": {"eco": -100, "standard": 1000, "lux": 2000},`, 1)
	rr := doJSON(t, srv.routes(), http.MethodPost, "/api/estimate", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp estimateResponse
	decodeBody(t, rr, &resp)
	if resp.Prices.Eco != 0 || resp.Packages[0].TotalCost != 0 {
		t.Fatalf("expected eco price clamped to 0, got %+v", resp.Prices)
	}
	if resp.Packages[1].BasePrice != 1000 {
		t.Fatalf("expected standard override, got %v", resp.Packages[1].BasePrice)
	}
}

func TestHandleEstimate_PartialOverrideKeepsStoredPrices(t *testing.T) {
	srv := newTestServer(t)

	body := strings.Replace(defaultInputJSON, `"floors": 2,`, `"floors": 2, "prices": {"eco": 6500000},`, 1)
	rr := doJSON(t, srv.routes(), http.MethodPost, "/api/estimate", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp estimateResponse
	decodeBody(t, rr, &resp)
	want := pricing.PriceConfig{Eco: 6_500_000, Standard: pricing.DefaultStandardPrice, Lux: pricing.DefaultLuxPrice}
	if resp.Prices != want {
		t.Fatalf("prices=%+v, want %+v", resp.Prices, want)
	}
	for _, p := range resp.Packages {
		if p.TotalCost <= 0 {
			t.Fatalf("%s priced at %v", p.Tier, p.TotalCost)
		}
	}
}

func TestHandleEstimate_UnknownCategory(t *testing.T) {
	srv := newTestServer(t)

	body := strings.Replace(defaultInputJSON, `"pile"`, `"floating"`, 1)
	rr := doJSON(t, srv.routes(), http.MethodPost, "/api/estimate", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "unknown category") {
		t.Fatalf("expected unknown category error, got %s", rr.Body.String())
	}
}

func TestHandleEstimate_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	cases := map[string]string{
		"zero width":        strings.Replace(defaultInputJSON, `"width": 5`, `"width": 0`, 1),
		"missing roof":      strings.Replace(defaultInputJSON, `"roof": "concrete",`, ``, 1),
		"elevator no stops": strings.Replace(defaultInputJSON, `"floors": 2,`, `"floors": 2, "hasElevator": true,`, 1),
		"unknown field":     strings.Replace(defaultInputJSON, `"floors": 2,`, `"floors": 2, "garage": true,`, 1),
		"not json":          `width=5`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := doJSON(t, srv.routes(), http.MethodPost, "/api/estimate", body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}
		})
	}
}

type stubAdvisor struct {
	text string
	err  error
	in   pricing.Input
}

func (s *stubAdvisor) Advise(_ context.Context, in pricing.Input, _ pricing.AreaBreakdown) (string, error) {
	s.in = in
	return s.text, s.err
}

func TestHandleAdvice(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv.routes(), http.MethodPost, "/api/advice", defaultInputJSON)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without advisor, got %d", rr.Code)
	}

	stub := &stubAdvisor{text: "Nên chọn móng cọc."}
	srv.advisor = stub
	rr = doJSON(t, srv.routes(), http.MethodPost, "/api/advice", defaultInputJSON)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp adviceResponse
	decodeBody(t, rr, &resp)
	if resp.Advice != "Nên chọn móng cọc." || stub.in.Foundation != pricing.FoundationPile {
		t.Fatalf("unexpected advice response %+v, input %+v", resp, stub.in)
	}

	srv.advisor = &stubAdvisor{err: errors.New("backend down")}
	rr = doJSON(t, srv.routes(), http.MethodPost, "/api/advice", defaultInputJSON)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
	decodeBody(t, rr, &resp)
	if resp.Advice != advice.FallbackText {
		t.Fatalf("expected fallback text, got %q", resp.Advice)
	}
}
