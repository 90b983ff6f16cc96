package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Simplici0/housecost/internal/advice"
	"github.com/Simplici0/housecost/internal/pricing"
	"github.com/Simplici0/housecost/internal/report"
)

const maxBodyBytes = 1 << 20

type estimateRequest struct {
	pricing.Input
	Prices *priceOverride `json:"prices,omitempty"`
}

type estimateResponse struct {
	Input    pricing.Input           `json:"input"`
	Prices   pricing.PriceConfig     `json:"prices"`
	Areas    pricing.AreaBreakdown   `json:"areas"`
	Packages []pricing.CostBreakdown `json:"packages"`
	Shares   []report.Share          `json:"shares"`
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON decodes a request body into dst, rejecting unknown fields and
// trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// validateInput checks the struct tags on the input plus the elevator rule
// the tags cannot express.
func (s *server) validateInput(v any, in pricing.Input) error {
	if err := s.validate.Struct(v); err != nil {
		return err
	}
	if in.HasElevator && in.ElevatorStops < 1 {
		return errors.New("elevatorStops must be at least 1 when hasElevator is set")
	}
	return nil
}

// writeRequestError maps decode and validation failures to a 400 response.
func writeRequestError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

// resolvePrices returns the stored config with any override merged on top.
func (s *server) resolvePrices(ctx context.Context, override *priceOverride) (pricing.PriceConfig, error) {
	stored, err := s.getPriceConfig(ctx)
	if err != nil {
		return pricing.PriceConfig{}, err
	}
	if override == nil {
		return stored, nil
	}
	return override.apply(stored).Clamp(), nil
}

func (s *server) computeEstimate(ctx context.Context, req estimateRequest) (estimateResponse, error) {
	prices, err := s.resolvePrices(ctx, req.Prices)
	if err != nil {
		return estimateResponse{}, err
	}

	result, err := pricing.Estimate(req.Input, prices)
	if err != nil {
		return estimateResponse{}, err
	}

	return estimateResponse{
		Input:    req.Input,
		Prices:   prices,
		Areas:    result.Areas,
		Packages: result.Packages,
		Shares:   report.AreaShares(result.Areas),
	}, nil
}

func (s *server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, err)
		return
	}
	if err := s.validateInput(req, req.Input); err != nil {
		writeRequestError(w, err)
		return
	}

	resp, err := s.computeEstimate(r.Context(), req)
	if errors.Is(err, pricing.ErrUnknownCategory) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.log.Error("compute estimate", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute estimate")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if s.advisor == nil {
		writeError(w, http.StatusServiceUnavailable, "advice is not configured")
		return
	}

	var in pricing.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeRequestError(w, err)
		return
	}
	if err := s.validateInput(in, in); err != nil {
		writeRequestError(w, err)
		return
	}

	areas, err := pricing.ComputeAreas(in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.adviceTimeout)
	defer cancel()

	text, err := s.advisor.Advise(ctx, in, areas)
	if err != nil {
		s.log.Warn("advice generation failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, adviceResponse{Advice: advice.FallbackText})
		return
	}

	writeJSON(w, http.StatusOK, adviceResponse{Advice: strings.TrimSpace(text)})
}
