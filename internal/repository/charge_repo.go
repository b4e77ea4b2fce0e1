package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/malshehri/groupbuy-checkout/internal/model"
)

type ChargeRepository struct {
	pool *pgxpool.Pool
}

func NewChargeRepository(pool *pgxpool.Pool) *ChargeRepository {
	return &ChargeRepository{pool: pool}
}

func (r *ChargeRepository) Insert(ctx context.Context, c *model.Charge) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO charges (transaction_id, product_id, user_id, method, platform, amount, currency, status, failure_kind, failure_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`,
		nullable(c.TransactionID), c.ProductID, nullable(c.UserID), string(c.Method), string(c.Platform),
		c.Amount, c.Currency, c.Status, nullable(c.FailureKind), nullable(c.FailureReason),
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *ChargeRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.Charge, error) {
	var c model.Charge
	err := r.pool.QueryRow(ctx,
		`SELECT id, COALESCE(transaction_id, ''), product_id, COALESCE(user_id, ''), method, platform,
			amount, currency, status, COALESCE(failure_kind, ''), COALESCE(failure_reason, ''), created_at
		FROM charges WHERE transaction_id = $1`,
		transactionID,
	).Scan(&c.ID, &c.TransactionID, &c.ProductID, &c.UserID, &c.Method, &c.Platform,
		&c.Amount, &c.Currency, &c.Status, &c.FailureKind, &c.FailureReason, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChargeRepository) List(ctx context.Context, limit, offset int) ([]model.Charge, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM charges`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count charges: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, COALESCE(transaction_id, ''), product_id, COALESCE(user_id, ''), method, platform,
			amount, currency, status, COALESCE(failure_kind, ''), COALESCE(failure_reason, ''), created_at
		FROM charges ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list charges: %w", err)
	}
	defer rows.Close()

	var charges []model.Charge
	for rows.Next() {
		var c model.Charge
		if err := rows.Scan(&c.ID, &c.TransactionID, &c.ProductID, &c.UserID, &c.Method, &c.Platform,
			&c.Amount, &c.Currency, &c.Status, &c.FailureKind, &c.FailureReason, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan charge: %w", err)
		}
		charges = append(charges, c)
	}
	return charges, total, rows.Err()
}

type MethodStatsRow struct {
	Method        string
	SettledCount  int
	FailedCount   int
	SettledVolume float64
}

func (r *ChargeRepository) MethodStats(ctx context.Context) ([]MethodStatsRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT method,
			COUNT(*) FILTER (WHERE status = 'SETTLED') AS settled_count,
			COUNT(*) FILTER (WHERE status = 'FAILED') AS failed_count,
			COALESCE(SUM(amount) FILTER (WHERE status = 'SETTLED'), 0) AS settled_volume
		FROM charges
		GROUP BY method
		ORDER BY settled_volume DESC, method`)
	if err != nil {
		return nil, fmt.Errorf("method stats: %w", err)
	}
	defer rows.Close()

	var stats []MethodStatsRow
	for rows.Next() {
		var s MethodStatsRow
		if err := rows.Scan(&s.Method, &s.SettledCount, &s.FailedCount, &s.SettledVolume); err != nil {
			return nil, fmt.Errorf("scan method stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

type FailureKindRow struct {
	Kind  string
	Count int
}

func (r *ChargeRepository) FailureKinds(ctx context.Context) ([]FailureKindRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT failure_kind, COUNT(*)
		FROM charges
		WHERE status = 'FAILED' AND failure_kind IS NOT NULL
		GROUP BY failure_kind
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failure kinds: %w", err)
	}
	defer rows.Close()

	var kinds []FailureKindRow
	for rows.Next() {
		var k FailureKindRow
		if err := rows.Scan(&k.Kind, &k.Count); err != nil {
			return nil, fmt.Errorf("scan failure kind: %w", err)
		}
		kinds = append(kinds, k)
	}
	return kinds, rows.Err()
}

// nullable maps empty strings to NULL so optional columns stay NULL
// rather than storing empties.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
