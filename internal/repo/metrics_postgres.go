package repo

import (
	"context"
	"database/sql"
	"time"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var m Metrics

	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&m.TotalProducts)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales`).Scan(&m.TotalSales)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE quantity < threshold`).Scan(&m.LowStockCount)
	_ = r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(balance_due), 0) FROM customers`).Scan(&m.OutstandingCredit)

	_ = r.db.QueryRowContext(ctx, `
		SELECT p.name, SUM(s.quantity) AS units
		FROM sales s
		JOIN products p ON s.product_id = p.id
		GROUP BY p.name
		ORDER BY units DESC
		LIMIT 1
	`).Scan(&m.BestSeller.Name, &m.BestSeller.UnitsSold)

	return m, nil
}
