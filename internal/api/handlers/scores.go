package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tradingfury/macroscore/internal/contracts"
	"github.com/tradingfury/macroscore/internal/pipeline"
	"github.com/tradingfury/macroscore/internal/presentation"
	"github.com/tradingfury/macroscore/internal/s0_data/quality"
	"github.com/tradingfury/macroscore/pkg/logger"
)

// SnapshotSource publishes scoring snapshots
type SnapshotSource interface {
	Current() (*pipeline.Snapshot, error)
	Refresh(ctx context.Context) (*pipeline.Snapshot, error)
}

// ScoreHandler handles score API endpoints
// ⭐ SSOT: 점수 API 핸들러는 이 구조체에서만
type ScoreHandler struct {
	source SnapshotSource
	logger *logger.Logger
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(source SnapshotSource, log *logger.Logger) *ScoreHandler {
	return &ScoreHandler{
		source: source,
		logger: log,
	}
}

// current loads the latest snapshot or writes the error response
func (h *ScoreHandler) current(w http.ResponseWriter) (*pipeline.Snapshot, bool) {
	snap, err := h.source.Current()
	if err != nil {
		if errors.Is(err, pipeline.ErrNotReady) {
			respondError(w, http.StatusServiceUnavailable, "Scores are not available yet")
			return nil, false
		}
		h.logger.WithError(err).Error("Failed to load snapshot")
		respondError(w, http.StatusInternalServerError, "Failed to load snapshot")
		return nil, false
	}
	return snap, true
}

// RecordsResponse is the body of GET /api/records
type RecordsResponse struct {
	SnapshotID      string                      `json:"snapshot_id"`
	GeneratedAt     time.Time                   `json:"generated_at"`
	Records         []contracts.IndicatorRecord `json:"records"`
	Dropped         []DroppedView               `json:"dropped"`
	IgnoredRows     int                         `json:"ignored_rows"`
	FailedCountries []CountryView               `json:"failed_countries"`
	Quality         *quality.Report             `json:"quality"`
}

// GetRecords returns the normalized indicator records
// GET /api/records
func (h *ScoreHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.current(w)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, RecordsResponse{
		SnapshotID:      snap.ID.String(),
		GeneratedAt:     snap.GeneratedAt,
		Records:         snap.Records.Records(),
		Dropped:         droppedRows(snap),
		IgnoredRows:     snap.Ignored,
		FailedCountries: failedCountries(snap),
		Quality:         snap.Quality,
	})
}

// CurrenciesResponse is the body of GET /api/currencies
type CurrenciesResponse struct {
	SnapshotID string                    `json:"snapshot_id"`
	Currencies []contracts.CurrencyScore `json:"currencies"`
	Failures   []FailureView             `json:"failures"`
}

// GetCurrencies returns the currency score table
// GET /api/currencies
func (h *ScoreHandler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.current(w)
	if !ok {
		return
	}

	failures := make([]FailureView, 0)
	for _, f := range snap.Currencies.Failures() {
		failures = append(failures, newFailureView(f.Err))
	}

	respondJSON(w, http.StatusOK, CurrenciesResponse{
		SnapshotID: snap.ID.String(),
		Currencies: snap.Currencies.Rows(),
		Failures:   failures,
	})
}

// PairsResponse is the body of GET /api/pairs
type PairsResponse struct {
	SnapshotID string                  `json:"snapshot_id"`
	Pairs      []presentation.PairView `json:"pairs"`
	Failures   []FailureView           `json:"failures"`
}

// GetPairs returns the pair score table
// GET /api/pairs?sort=score
func (h *ScoreHandler) GetPairs(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.current(w)
	if !ok {
		return
	}

	sortBy := r.URL.Query().Get("sort")
	if sortBy != "" && sortBy != "score" {
		respondError(w, http.StatusBadRequest, "Invalid sort (valid: score)")
		return
	}

	failures := make([]FailureView, 0)
	for _, f := range snap.Pairs.Failures() {
		failures = append(failures, newFailureView(f.Err))
	}

	respondJSON(w, http.StatusOK, PairsResponse{
		SnapshotID: snap.ID.String(),
		Pairs:      presentation.PairViews(snap.Pairs, sortBy == "score"),
		Failures:   failures,
	})
}

// GetPair returns a single pair score
// GET /api/pairs/{pair}
func (h *ScoreHandler) GetPair(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.current(w)
	if !ok {
		return
	}

	text := mux.Vars(r)["pair"]
	score, err := snap.Pairs.Find(text)
	if err != nil {
		if errors.Is(err, contracts.ErrUnknownPair) {
			respondError(w, http.StatusNotFound, "Pair not found")
			return
		}
		respondJSON(w, http.StatusUnprocessableEntity, newFailureView(err))
		return
	}

	min, max, _ := snap.Pairs.MinMax()
	respondJSON(w, http.StatusOK, presentation.PairView{
		PairScore: score,
		Bias:      score.Bias(),
		Color:     presentation.Gradient(score.FinalScore, min, max).CSS(),
	})
}

// ExportCSV writes one table as CSV
// GET /api/export/{table}.csv
func (h *ScoreHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.current(w)
	if !ok {
		return
	}

	table := mux.Vars(r)["table"]
	var buf bytes.Buffer
	err := presentation.WriteCSV(&buf, table, presentation.Tables{
		Records:    snap.Records,
		Currencies: snap.Currencies,
		Pairs:      snap.Pairs,
	})
	if err != nil {
		if errors.Is(err, presentation.ErrUnknownTable) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.WithError(err).Error("Failed to export CSV")
		respondError(w, http.StatusInternalServerError, "Failed to export CSV")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+table+".csv\"")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// RefreshResponse is the body of POST /api/refresh
type RefreshResponse struct {
	Status          string        `json:"status"`
	SnapshotID      string        `json:"snapshot_id"`
	Records         int           `json:"records"`
	PairsScored     int           `json:"pairs_scored"`
	PairsFailed     int           `json:"pairs_failed"`
	FailedCountries []CountryView `json:"failed_countries"`
}

// Refresh runs one scrape and score cycle
// POST /api/refresh
func (h *ScoreHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.source.Refresh(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Refresh failed")
		respondError(w, http.StatusInternalServerError, "Refresh failed")
		return
	}

	respondJSON(w, http.StatusOK, RefreshResponse{
		Status:          "success",
		SnapshotID:      snap.ID.String(),
		Records:         snap.Records.Len(),
		PairsScored:     len(snap.Pairs.Rows()),
		PairsFailed:     len(snap.Pairs.Failures()),
		FailedCountries: failedCountries(snap),
	})
}
