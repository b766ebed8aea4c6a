package api

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradingfury/macroscore/internal/api/handlers"
	"github.com/tradingfury/macroscore/internal/contracts"
	"github.com/tradingfury/macroscore/internal/pipeline"
	"github.com/tradingfury/macroscore/pkg/logger"
)

type fakeSource struct {
	snap       *pipeline.Snapshot
	refreshErr error
	refreshes  int
}

func (f *fakeSource) Current() (*pipeline.Snapshot, error) {
	if f.snap == nil {
		return nil, pipeline.ErrNotReady
	}
	return f.snap, nil
}

func (f *fakeSource) Refresh(ctx context.Context) (*pipeline.Snapshot, error) {
	f.refreshes++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.snap, nil
}

// sampleRows gives every country flat indicators; Interest Rate rises with
// traversal position. New Zealand is left out entirely.
func sampleRows() []contracts.RawRow {
	var rows []contracts.RawRow
	for i, country := range contracts.Countries() {
		if country == "new-zealand" {
			continue
		}
		for _, ind := range contracts.Indicators() {
			v := "2"
			if ind == contracts.InterestRate {
				v = fmt.Sprintf("%d.5", i)
			}
			rows = append(rows, contracts.RawRow{Country: country, Indicator: string(ind), Last: v, Previous: v})
		}
	}
	rows = append(rows, contracts.RawRow{Country: "canada", Indicator: "Services PMI", Last: "--", Previous: "50"})
	return rows
}

func newTestRouter(src handlers.SnapshotSource) http.Handler {
	log := logger.Nop()
	return NewRouter(handlers.NewScoreHandler(src, log), log)
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(&fakeSource{}), "GET", "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestNotReady(t *testing.T) {
	router := newTestRouter(&fakeSource{})
	for _, path := range []string{"/api/records", "/api/currencies", "/api/pairs", "/api/pairs/EURUSD", "/api/export/pairs.csv"} {
		rec := do(t, router, "GET", path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestGetRecords(t *testing.T) {
	router := newTestRouter(&fakeSource{snap: pipeline.RunPipeline(sampleRows())})

	rec := do(t, router, "GET", "/api/records")
	require.Equal(t, http.StatusOK, rec.Code)

	var body handlers.RecordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Records, 49)
	require.Len(t, body.Dropped, 1)
	assert.Equal(t, contracts.CAD, body.Dropped[0].Currency)
	assert.Equal(t, "last", body.Dropped[0].Field)
	require.NotNil(t, body.Quality)
	assert.False(t, body.Quality.Passed)
}

func TestGetCurrencies(t *testing.T) {
	router := newTestRouter(&fakeSource{snap: pipeline.RunPipeline(sampleRows())})

	rec := do(t, router, "GET", "/api/currencies")
	require.Equal(t, http.StatusOK, rec.Code)

	var body handlers.CurrenciesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Currencies, 7)
	require.Len(t, body.Failures, 1)
	assert.Equal(t, contracts.NZD, body.Failures[0].Currency)
	assert.Equal(t, contracts.GDPGrowthRate, body.Failures[0].Indicator)
}

func TestGetPairs(t *testing.T) {
	router := newTestRouter(&fakeSource{snap: pipeline.RunPipeline(sampleRows())})

	t.Run("enumeration order", func(t *testing.T) {
		rec := do(t, router, "GET", "/api/pairs")
		require.Equal(t, http.StatusOK, rec.Code)

		var body handlers.PairsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

		nzd := 0
		for _, p := range contracts.Pairs() {
			if p.Base() == contracts.NZD || p.Quote() == contracts.NZD {
				nzd++
			}
		}
		assert.Len(t, body.Pairs, 27-nzd)
		assert.Len(t, body.Failures, nzd)
		assert.Equal(t, contracts.Pair("EURUSD"), body.Pairs[0].Pair)
	})

	t.Run("sorted by score", func(t *testing.T) {
		rec := do(t, router, "GET", "/api/pairs?sort=score")
		require.Equal(t, http.StatusOK, rec.Code)

		var body handlers.PairsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		for i := 1; i < len(body.Pairs); i++ {
			assert.GreaterOrEqual(t, body.Pairs[i-1].FinalScore, body.Pairs[i].FinalScore)
		}
	})

	t.Run("invalid sort", func(t *testing.T) {
		rec := do(t, router, "GET", "/api/pairs?sort=name")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetPair(t *testing.T) {
	router := newTestRouter(&fakeSource{snap: pipeline.RunPipeline(sampleRows())})

	t.Run("case folded", func(t *testing.T) {
		rec := do(t, router, "GET", "/api/pairs/eurusd")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "EURUSD", body["pair"])
		// euro-area=2.5 < united-states=6.5
		assert.Equal(t, float64(-1), body["final_score"])
		assert.Equal(t, "bearish", body["bias"])
	})

	t.Run("unknown pair", func(t *testing.T) {
		rec := do(t, router, "GET", "/api/pairs/USDSEK")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing data", func(t *testing.T) {
		rec := do(t, router, "GET", "/api/pairs/NZDUSD")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body handlers.FailureView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, contracts.Pair("NZDUSD"), body.Pair)
		assert.Equal(t, contracts.NZD, body.Currency)
	})
}

func TestExportCSV(t *testing.T) {
	router := newTestRouter(&fakeSource{snap: pipeline.RunPipeline(sampleRows())})

	rec := do(t, router, "GET", "/api/export/currencies.csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	lines, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, lines, 8)
	assert.Equal(t, "currency", lines[0][0])

	rec = do(t, router, "GET", "/api/export/prices.csv")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRefresh(t *testing.T) {
	src := &fakeSource{snap: pipeline.RunPipeline(sampleRows())}
	router := newTestRouter(src)

	rec := do(t, router, "POST", "/api/refresh")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, src.refreshes)

	var body handlers.RefreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, src.snap.ID.String(), body.SnapshotID)

	src.refreshErr = errors.New("upstream down")
	rec = do(t, router, "POST", "/api/refresh")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, router, "GET", "/api/refresh")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
