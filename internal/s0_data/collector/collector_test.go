package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradingfury/macroscore/internal/contracts"
	"github.com/tradingfury/macroscore/internal/external/tradingeconomics"
	"github.com/tradingfury/macroscore/pkg/logger"
)

// MockFetcher is a testify mock of contracts.PageFetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchIndicatorsPage(ctx context.Context, country contracts.Country) (string, error) {
	args := m.Called(ctx, country)
	return args.String(0), args.Error(1)
}

func page(rows ...string) string {
	html := "<table><tbody>"
	for _, r := range rows {
		html += r
	}
	return html + "</tbody></table>"
}

func TestCollect_AllCountries(t *testing.T) {
	fetcher := new(MockFetcher)
	for _, country := range contracts.Countries() {
		fetcher.On("FetchIndicatorsPage", mock.Anything, country).
			Return(page("<tr><td>Interest Rate</td><td>1</td><td>1</td></tr>"), nil).Once()
	}

	col := NewCollector(fetcher, tradingeconomics.Parser{}, logger.Nop())
	snapshot, err := col.Collect(context.Background(), Config{Workers: 3})
	require.NoError(t, err)

	fetcher.AssertExpectations(t)
	require.Len(t, snapshot.Rows, 8)
	assert.Empty(t, snapshot.FailedCountries())

	// Rows follow traversal order regardless of worker scheduling
	for i, country := range contracts.Countries() {
		assert.Equal(t, country, snapshot.Rows[i].Country)
		assert.Equal(t, country, snapshot.Countries[i].Country)
		assert.Equal(t, 1, snapshot.Countries[i].Rows)
	}
}

func TestCollect_FailedCountryContributesNothing(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchIndicatorsPage", mock.Anything, contracts.Country("japan")).
		Return("", &tradingeconomics.StatusError{Country: "japan", StatusCode: 404})
	fetcher.On("FetchIndicatorsPage", mock.Anything, mock.Anything).
		Return(page("<tr><td>GDP Growth Rate</td><td>0.5</td><td>0.2</td></tr>"), nil)

	col := NewCollector(fetcher, tradingeconomics.Parser{}, logger.Nop())
	snapshot, err := col.Collect(context.Background(), Config{Workers: 2})
	require.NoError(t, err)

	assert.Len(t, snapshot.Rows, 7)
	for _, row := range snapshot.Rows {
		assert.NotEqual(t, contracts.Country("japan"), row.Country)
	}

	failed := snapshot.FailedCountries()
	require.Len(t, failed, 1)
	assert.Equal(t, contracts.Country("japan"), failed[0].Country)

	var statusErr *tradingeconomics.StatusError
	assert.True(t, errors.As(failed[0].Err, &statusErr))
}

func TestCollect_Cancelled(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchIndicatorsPage", mock.Anything, mock.Anything).Return("", context.Canceled).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	col := NewCollector(fetcher, tradingeconomics.Parser{}, logger.Nop())
	snapshot, err := col.Collect(ctx, Config{Workers: 1})
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollect_CustomCountries(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchIndicatorsPage", mock.Anything, contracts.Country("canada")).
		Return(page(), nil)

	col := NewCollector(fetcher, tradingeconomics.Parser{}, logger.Nop()).
		WithCountries([]contracts.Country{"canada"})
	snapshot, err := col.Collect(context.Background(), Config{})
	require.NoError(t, err)

	assert.Empty(t, snapshot.Rows)
	require.Len(t, snapshot.Countries, 1)
	assert.NoError(t, snapshot.Countries[0].Err)
}
