package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tradingfury/macroscore/internal/contracts"
	"github.com/tradingfury/macroscore/internal/pipeline"
)

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// FailureView describes why a currency or pair has no score
type FailureView struct {
	Pair      contracts.Pair      `json:"pair,omitempty"`
	Currency  contracts.Currency  `json:"currency,omitempty"`
	Indicator contracts.Indicator `json:"indicator,omitempty"`
	Error     string              `json:"error"`
}

func newFailureView(err error) FailureView {
	v := FailureView{Error: err.Error()}
	var missing *contracts.MissingIndicatorError
	if errors.As(err, &missing) {
		v.Currency = missing.Currency
		v.Indicator = missing.Indicator
	}
	var pe *contracts.PairError
	if errors.As(err, &pe) {
		v.Pair = pe.Pair
	}
	return v
}

// DroppedView describes a scraped row rejected by normalization
type DroppedView struct {
	Country   contracts.Country   `json:"country"`
	Currency  contracts.Currency  `json:"currency"`
	Indicator contracts.Indicator `json:"indicator"`
	Field     string              `json:"field"`
	Value     string              `json:"value"`
	Error     string              `json:"error"`
}

// CountryView reports a country page that contributed no rows
type CountryView struct {
	Country contracts.Country `json:"country"`
	Error   string            `json:"error"`
}

func failedCountries(snap *pipeline.Snapshot) []CountryView {
	out := make([]CountryView, 0, len(snap.FailedCountries))
	for _, f := range snap.FailedCountries {
		out = append(out, CountryView{Country: f.Country, Error: f.Err.Error()})
	}
	return out
}

func droppedRows(snap *pipeline.Snapshot) []DroppedView {
	out := make([]DroppedView, 0, len(snap.Dropped))
	for _, d := range snap.Dropped {
		out = append(out, DroppedView{
			Country:   d.Country,
			Currency:  d.Currency,
			Indicator: d.Indicator,
			Field:     d.Field,
			Value:     d.Value,
			Error:     d.Error(),
		})
	}
	return out
}
