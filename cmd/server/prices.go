package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/housecost/internal/pricing"
)

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// priceOverride carries the tier prices a request sets. Tiers left out keep
// the stored price.
type priceOverride struct {
	Eco      *float64 `json:"eco,omitempty"`
	Standard *float64 `json:"standard,omitempty"`
	Lux      *float64 `json:"lux,omitempty"`
}

func (o priceOverride) empty() bool {
	return o.Eco == nil && o.Standard == nil && o.Lux == nil
}

// apply returns base with the set tiers replaced.
func (o priceOverride) apply(base pricing.PriceConfig) pricing.PriceConfig {
	if o.Eco != nil {
		base.Eco = *o.Eco
	}
	if o.Standard != nil {
		base.Standard = *o.Standard
	}
	if o.Lux != nil {
		base.Lux = *o.Lux
	}
	return base
}

// getPriceConfig reads the price_config singleton created by the seed.
func (s *server) getPriceConfig(ctx context.Context) (pricing.PriceConfig, error) {
	return readPriceConfig(ctx, s.db)
}

func readPriceConfig(ctx context.Context, q queryRower) (pricing.PriceConfig, error) {
	var p pricing.PriceConfig
	err := q.QueryRowContext(ctx, `
		SELECT eco_price, standard_price, lux_price
		FROM price_config
		WHERE id = 1
	`).Scan(&p.Eco, &p.Standard, &p.Lux)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.PriceConfig{}, fmt.Errorf("price_config singleton not found")
		}
		return pricing.PriceConfig{}, fmt.Errorf("query price_config: %w", err)
	}
	return p, nil
}

func writePriceConfig(ctx context.Context, e execer, p pricing.PriceConfig) error {
	_, err := e.ExecContext(ctx, `
		UPDATE price_config
		SET
			eco_price = ?,
			standard_price = ?,
			lux_price = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, p.Eco, p.Standard, p.Lux)
	if err != nil {
		return fmt.Errorf("update price_config: %w", err)
	}
	return nil
}

// updatePriceConfig merges o onto the stored prices and saves the result with
// negative prices clamped to zero.
func (s *server) updatePriceConfig(ctx context.Context, o priceOverride) (pricing.PriceConfig, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return pricing.PriceConfig{}, fmt.Errorf("begin price update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := readPriceConfig(ctx, tx)
	if err != nil {
		return pricing.PriceConfig{}, err
	}
	next := o.apply(current).Clamp()
	if err := writePriceConfig(ctx, tx, next); err != nil {
		return pricing.PriceConfig{}, err
	}
	if err := tx.Commit(); err != nil {
		return pricing.PriceConfig{}, fmt.Errorf("commit price update: %w", err)
	}
	return next, nil
}

// stepPrice moves one tier by steps*PriceStep inside a transaction.
func (s *server) stepPrice(ctx context.Context, tier pricing.Tier, steps int) (pricing.PriceConfig, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return pricing.PriceConfig{}, fmt.Errorf("begin price step: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := readPriceConfig(ctx, tx)
	if err != nil {
		return pricing.PriceConfig{}, err
	}
	next, err := current.Step(tier, steps)
	if err != nil {
		return pricing.PriceConfig{}, err
	}
	if err := writePriceConfig(ctx, tx, next); err != nil {
		return pricing.PriceConfig{}, err
	}
	if err := tx.Commit(); err != nil {
		return pricing.PriceConfig{}, fmt.Errorf("commit price step: %w", err)
	}
	return next, nil
}

func (s *server) handleGetPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := s.getPriceConfig(r.Context())
	if err != nil {
		s.log.Error("load price config", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load price config")
		return
	}
	writeJSON(w, http.StatusOK, prices)
}

func (s *server) handleAdminPricesUpdate(w http.ResponseWriter, r *http.Request) {
	var prices priceOverride
	if err := decodeJSON(w, r, &prices); err != nil {
		writeRequestError(w, err)
		return
	}
	if prices.empty() {
		writeError(w, http.StatusBadRequest, "at least one of eco, standard, lux is required")
		return
	}

	saved, err := s.updatePriceConfig(r.Context(), prices)
	if err != nil {
		s.log.Error("save price config", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save price config")
		return
	}

	s.log.Info("price config updated",
		zap.Float64("eco", saved.Eco),
		zap.Float64("standard", saved.Standard),
		zap.Float64("lux", saved.Lux),
	)
	writeJSON(w, http.StatusOK, saved)
}

func (s *server) handleAdminPriceStep(w http.ResponseWriter, r *http.Request) {
	var tier pricing.Tier
	if err := tier.UnmarshalText([]byte(chi.URLParam(r, "tier"))); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var steps int
	switch r.URL.Query().Get("dir") {
	case "up":
		steps = 1
	case "down":
		steps = -1
	default:
		writeError(w, http.StatusBadRequest, "dir must be up or down")
		return
	}

	prices, err := s.stepPrice(r.Context(), tier, steps)
	if err != nil {
		s.log.Error("step price", zap.String("tier", string(tier)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update price")
		return
	}
	writeJSON(w, http.StatusOK, prices)
}
