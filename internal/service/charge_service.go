package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/malshehri/groupbuy-checkout/internal/model"
	"github.com/malshehri/groupbuy-checkout/internal/repository"
)

type ChargeService struct {
	repo *repository.ChargeRepository
}

func NewChargeService(repo *repository.ChargeRepository) *ChargeService {
	return &ChargeService{repo: repo}
}

func (s *ChargeService) GetByTransactionID(ctx context.Context, transactionID string) (*model.Charge, error) {
	return s.repo.GetByTransactionID(ctx, transactionID)
}

func (s *ChargeService) List(ctx context.Context, page, pageSize int) ([]model.Charge, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.List(ctx, pageSize, (page-1)*pageSize)
}

type MethodStats struct {
	Method        string  `json:"method"`
	SettledCount  int     `json:"settled_count"`
	FailedCount   int     `json:"failed_count"`
	SettledVolume float64 `json:"settled_volume"`
	SuccessRate   float64 `json:"success_rate"`
}

type StatsSummary struct {
	TotalAttempts int     `json:"total_attempts"`
	TotalSettled  int     `json:"total_settled"`
	TotalFailed   int     `json:"total_failed"`
	SettledVolume float64 `json:"settled_volume"`
}

type ChargeStats struct {
	Methods      []MethodStats  `json:"methods"`
	FailureKinds map[string]int `json:"failure_kinds"`
	Summary      StatsSummary   `json:"summary"`
}

// Stats aggregates the charge log per method plus a failure-kind
// breakdown; the two queries run concurrently.
func (s *ChargeService) Stats(ctx context.Context) (*ChargeStats, error) {
	g, gctx := errgroup.WithContext(ctx)

	var rows []repository.MethodStatsRow
	var kinds []repository.FailureKindRow

	g.Go(func() error {
		var err error
		rows, err = s.repo.MethodStats(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		kinds, err = s.repo.FailureKinds(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &ChargeStats{
		Methods:      make([]MethodStats, len(rows)),
		FailureKinds: make(map[string]int, len(kinds)),
	}

	for i, row := range rows {
		attempts := row.SettledCount + row.FailedCount
		ms := MethodStats{
			Method:        row.Method,
			SettledCount:  row.SettledCount,
			FailedCount:   row.FailedCount,
			SettledVolume: row.SettledVolume,
		}
		if attempts > 0 {
			ms.SuccessRate = float64(row.SettledCount) / float64(attempts) * 100
		}
		stats.Methods[i] = ms

		stats.Summary.TotalAttempts += attempts
		stats.Summary.TotalSettled += row.SettledCount
		stats.Summary.TotalFailed += row.FailedCount
		stats.Summary.SettledVolume += row.SettledVolume
	}

	for _, k := range kinds {
		stats.FailureKinds[k.Kind] = k.Count
	}

	return stats, nil
}
