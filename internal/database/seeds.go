package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// productSeed mirrors the storefront price table. Prices are whole SAR.
var productSeed = []struct {
	ID        string
	Name      string
	BasePrice float64
}{
	{"iphone-16", "iPhone 16", 799},
	{"iphone-16-pro", "iPhone 16 Pro", 999},
	{"iphone-16-pro-max", "iPhone 16 Pro Max", 1199},
	{"samsung-s25", "Samsung Galaxy S25", 799},
	{"samsung-s25-plus", "Samsung Galaxy S25+", 999},
	{"samsung-s25-ultra", "Samsung Galaxy S25 Ultra", 1199},
	{"samsung-fold6", "Samsung Galaxy Z Fold6", 1799},
	{"samsung-flip6", "Samsung Galaxy Z Flip6", 999},
}

// SeedData inserts the product catalog. Idempotent: existing rows are
// left untouched.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	inserted := 0
	for _, p := range productSeed {
		tag, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, base_price, currency)
			VALUES ($1, $2, $3, 'SAR')
			ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Name, p.BasePrice)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
		inserted += int(tag.RowsAffected())
	}

	log.Info().
		Int("inserted", inserted).
		Int("catalog_size", len(productSeed)).
		Msg("product catalog seeded")

	return nil
}
