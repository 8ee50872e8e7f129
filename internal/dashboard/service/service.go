// Package service aggregates tenant-scoped counts for the dashboard. Each
// source is queried concurrently; one failing source fails the whole summary
// rather than returning partial numbers.
package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	id "bizcore/pkg/domain"
	dErrors "bizcore/pkg/domain-errors"
)

// UserCounter reports how many users a tenant has.
type UserCounter interface {
	CountByTenant(ctx context.Context, tenantID id.TenantID) (int, error)
}

// ItemStats reports inventory aggregates for a tenant.
type ItemStats interface {
	Stats(ctx context.Context, tenantID id.TenantID) (count, lowStock int, stockValue float64, err error)
}

// Summary is the dashboard payload for one tenant.
type Summary struct {
	UserCount     int     `json:"user_count"`
	ItemCount     int     `json:"item_count"`
	LowStockCount int     `json:"low_stock_count"`
	StockValue    float64 `json:"stock_value"`
}

type Service struct {
	users  UserCounter
	items  ItemStats
	logger *slog.Logger
}

func New(users UserCounter, items ItemStats, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, items: items, logger: logger}
}

// Summarize fans out to the stores concurrently and assembles the summary.
func (s *Service) Summarize(ctx context.Context, tenantID id.TenantID) (*Summary, error) {
	var summary Summary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.users.CountByTenant(gctx, tenantID)
		if err != nil {
			return err
		}
		summary.UserCount = count
		return nil
	})
	g.Go(func() error {
		count, lowStock, stockValue, err := s.items.Stats(gctx, tenantID)
		if err != nil {
			return err
		}
		summary.ItemCount = count
		summary.LowStockCount = lowStock
		summary.StockValue = stockValue
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build dashboard summary")
	}
	return &summary, nil
}
