package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Simplici0/housecost/internal/pricing"
	"github.com/Simplici0/housecost/internal/report"
)

var errEstimateNotFound = errors.New("estimate not found")

type saveEstimateRequest struct {
	estimateRequest
	Title string `json:"title" validate:"max=200"`
	Notes string `json:"notes" validate:"max=2000"`
}

type estimateRecord struct {
	ID        string                  `json:"id"`
	CreatedAt string                  `json:"createdAt"`
	Title     string                  `json:"title"`
	Notes     string                  `json:"notes"`
	Input     pricing.Input           `json:"input"`
	Prices    pricing.PriceConfig     `json:"prices"`
	Areas     pricing.AreaBreakdown   `json:"areas"`
	Packages  []pricing.CostBreakdown `json:"packages"`
}

type estimateListItem struct {
	ID            string  `json:"id"`
	CreatedAt     string  `json:"createdAt"`
	Title         string  `json:"title"`
	StandardTotal float64 `json:"standardTotal"`
}

func (s *server) saveEstimate(ctx context.Context, rec estimateRecord) (estimateRecord, error) {
	inputJSON, err := json.Marshal(rec.Input)
	if err != nil {
		return estimateRecord{}, fmt.Errorf("encode input: %w", err)
	}
	pricesJSON, err := json.Marshal(rec.Prices)
	if err != nil {
		return estimateRecord{}, fmt.Errorf("encode prices: %w", err)
	}
	areasJSON, err := json.Marshal(rec.Areas)
	if err != nil {
		return estimateRecord{}, fmt.Errorf("encode areas: %w", err)
	}
	packagesJSON, err := json.Marshal(rec.Packages)
	if err != nil {
		return estimateRecord{}, fmt.Errorf("encode packages: %w", err)
	}

	rec.ID = uuid.NewString()
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO estimates (public_id, title, notes, input_json, prices_json, areas_json, packages_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at
	`, rec.ID, rec.Title, rec.Notes, string(inputJSON), string(pricesJSON), string(areasJSON), string(packagesJSON)).Scan(&rec.CreatedAt)
	if err != nil {
		return estimateRecord{}, fmt.Errorf("insert estimate: %w", err)
	}
	return rec, nil
}

func (s *server) listEstimates(ctx context.Context, query string) ([]estimateListItem, error) {
	search := "%" + escapeLike(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			public_id,
			created_at,
			COALESCE(title, ''),
			packages_json
		FROM estimates
		WHERE (? = '' OR COALESCE(title, '') LIKE ? ESCAPE '\' OR COALESCE(notes, '') LIKE ? ESCAPE '\')
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query estimates: %w", err)
	}
	defer rows.Close()

	items := make([]estimateListItem, 0)
	for rows.Next() {
		var item estimateListItem
		var packagesJSON string
		if err := rows.Scan(&item.ID, &item.CreatedAt, &item.Title, &packagesJSON); err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		item.StandardTotal = standardTotalFromJSON(packagesJSON)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate estimates: %w", err)
	}

	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using '\' as the
// escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// standardTotalFromJSON returns the recommended tier total from a stored
// packages snapshot, or 0 when it cannot be read.
func standardTotalFromJSON(packagesJSON string) float64 {
	var packages []pricing.CostBreakdown
	if err := json.Unmarshal([]byte(packagesJSON), &packages); err != nil {
		return 0
	}
	for _, p := range packages {
		if p.Tier == pricing.TierStandard {
			return p.TotalCost
		}
	}
	return 0
}

// getEstimate reads a stored snapshot as saved, without recomputing it.
func (s *server) getEstimate(ctx context.Context, id string) (estimateRecord, error) {
	var rec estimateRecord
	var inputJSON, pricesJSON, areasJSON, packagesJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT public_id, created_at, COALESCE(title, ''), COALESCE(notes, ''),
			input_json, prices_json, areas_json, packages_json
		FROM estimates
		WHERE public_id = ?
	`, id).Scan(&rec.ID, &rec.CreatedAt, &rec.Title, &rec.Notes, &inputJSON, &pricesJSON, &areasJSON, &packagesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return estimateRecord{}, errEstimateNotFound
	}
	if err != nil {
		return estimateRecord{}, fmt.Errorf("query estimate: %w", err)
	}

	if err := json.Unmarshal([]byte(inputJSON), &rec.Input); err != nil {
		return estimateRecord{}, fmt.Errorf("decode input snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(pricesJSON), &rec.Prices); err != nil {
		return estimateRecord{}, fmt.Errorf("decode prices snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(areasJSON), &rec.Areas); err != nil {
		return estimateRecord{}, fmt.Errorf("decode areas snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(packagesJSON), &rec.Packages); err != nil {
		return estimateRecord{}, fmt.Errorf("decode packages snapshot: %w", err)
	}
	return rec, nil
}

func (s *server) handleEstimateCreate(w http.ResponseWriter, r *http.Request) {
	var req saveEstimateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, err)
		return
	}
	if err := s.validateInput(req, req.Input); err != nil {
		writeRequestError(w, err)
		return
	}

	computed, err := s.computeEstimate(r.Context(), req.estimateRequest)
	if errors.Is(err, pricing.ErrUnknownCategory) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.log.Error("compute estimate", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute estimate")
		return
	}

	rec, err := s.saveEstimate(r.Context(), estimateRecord{
		Title:    strings.TrimSpace(req.Title),
		Notes:    strings.TrimSpace(req.Notes),
		Input:    computed.Input,
		Prices:   computed.Prices,
		Areas:    computed.Areas,
		Packages: computed.Packages,
	})
	if err != nil {
		s.log.Error("save estimate", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save estimate")
		return
	}

	s.log.Info("estimate saved", zap.String("id", rec.ID))
	writeJSON(w, http.StatusCreated, rec)
}

func (s *server) handleEstimatesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := s.listEstimates(r.Context(), query)
	if err != nil {
		s.log.Error("list estimates", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load estimates")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) loadEstimate(w http.ResponseWriter, r *http.Request) (estimateRecord, bool) {
	rec, err := s.getEstimate(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, errEstimateNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return estimateRecord{}, false
	}
	if err != nil {
		s.log.Error("load estimate", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load estimate")
		return estimateRecord{}, false
	}
	return rec, true
}

func (s *server) handleEstimateDetail(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadEstimate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *server) handleEstimateText(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadEstimate(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	err := report.WriteText(w, report.Quote{
		Title:    rec.Title,
		Notes:    rec.Notes,
		Input:    rec.Input,
		Prices:   rec.Prices,
		Areas:    rec.Areas,
		Packages: rec.Packages,
	})
	if err != nil {
		s.log.Warn("write estimate text", zap.Error(err))
	}
}
