package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradingfury/macroscore/internal/contracts"
	"github.com/tradingfury/macroscore/internal/pipeline"
	"github.com/tradingfury/macroscore/pkg/logger"
)

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Refresh(ctx context.Context) (*pipeline.Snapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(*pipeline.Snapshot)
	return snap, args.Error(1)
}

func TestScoringRefreshJob(t *testing.T) {
	m := new(MockRefresher)
	m.On("Refresh", mock.Anything).Return(pipeline.RunPipeline([]contracts.RawRow{}), nil).Once()
	m.On("Refresh", mock.Anything).Return(nil, errors.New("collect: context canceled")).Once()

	job := NewScoringRefreshJob(m, "0 0 * * * *", logger.Nop())
	assert.Equal(t, "scoring_refresh", job.Name())
	assert.Equal(t, "0 0 * * * *", job.Schedule())

	require.NoError(t, job.Run(context.Background()))

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh scores")

	m.AssertExpectations(t)
}
