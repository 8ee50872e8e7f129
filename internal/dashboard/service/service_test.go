package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "bizcore/pkg/domain"
	dErrors "bizcore/pkg/domain-errors"
)

type stubUserCounter struct {
	count int
	err   error
}

func (s *stubUserCounter) CountByTenant(context.Context, id.TenantID) (int, error) {
	return s.count, s.err
}

type stubItemStats struct {
	count      int
	lowStock   int
	stockValue float64
	err        error
}

func (s *stubItemStats) Stats(context.Context, id.TenantID) (int, int, float64, error) {
	return s.count, s.lowStock, s.stockValue, s.err
}

func newTestService(users *stubUserCounter, items *stubItemStats) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(users, items, logger)
}

func TestSummarize_AssemblesAllSources(t *testing.T) {
	svc := newTestService(
		&stubUserCounter{count: 4},
		&stubItemStats{count: 12, lowStock: 2, stockValue: 350.5},
	)

	summary, err := svc.Summarize(context.Background(), id.NewTenantID())
	require.NoError(t, err)
	assert.Equal(t, 4, summary.UserCount)
	assert.Equal(t, 12, summary.ItemCount)
	assert.Equal(t, 2, summary.LowStockCount)
	assert.InDelta(t, 350.5, summary.StockValue, 0.001)
}

func TestSummarize_FailsWhenAnySourceFails(t *testing.T) {
	svc := newTestService(
		&stubUserCounter{err: errors.New("connection reset")},
		&stubItemStats{count: 12},
	)

	summary, err := svc.Summarize(context.Background(), id.NewTenantID())
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestSummarize_ItemSourceFailure(t *testing.T) {
	svc := newTestService(
		&stubUserCounter{count: 4},
		&stubItemStats{err: errors.New("connection reset")},
	)

	_, err := svc.Summarize(context.Background(), id.NewTenantID())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}
