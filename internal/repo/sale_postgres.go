package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/pos-register/internal/models"
)

type PostgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

const defaultSalePageSize = 100

// List returns sale rows matching the filter, newest first, with the total
// match count for pagination.
func (r *PostgresSaleRepository) List(f SaleFilter) ([]models.Sale, int, error) {
	whereClause, args := r.buildWhereClause(f)

	total, err := r.getTotal(whereClause, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	// limit = 0 means count only
	if f.Limit != nil && *f.Limit == 0 {
		return []models.Sale{}, total, nil
	}

	if f.Offset != nil && *f.Offset >= total {
		return []models.Sale{}, total, nil
	}

	query, queryArgs := r.buildMainQuery(whereClause, args, f)
	sales, err := r.executeQuery(query, queryArgs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return sales, total, nil
}

func (r *PostgresSaleRepository) buildWhereClause(f SaleFilter) (string, []any) {
	args := []any{}
	whereClause := "WHERE 1=1"
	argIndex := 1

	if f.ProductID != nil {
		whereClause += fmt.Sprintf(" AND product_id = $%d", argIndex)
		args = append(args, *f.ProductID)
		argIndex++
	}
	if f.CustomerID != nil {
		whereClause += fmt.Sprintf(" AND customer_id = $%d", argIndex)
		args = append(args, *f.CustomerID)
		argIndex++
	}
	if f.Since != nil {
		whereClause += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *f.Since)
		argIndex++
	}
	if f.Until != nil {
		whereClause += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *f.Until)
	}

	return whereClause, args
}

func (r *PostgresSaleRepository) buildMainQuery(whereClause string, baseArgs []any, f SaleFilter) (string, []any) {
	query := fmt.Sprintf("SELECT id, product_id, quantity, customer_id, credit_amount, created_at FROM sales %s ORDER BY created_at DESC, id DESC", whereClause)
	args := make([]any, len(baseArgs))
	copy(args, baseArgs)
	argIndex := len(baseArgs) + 1

	if !f.Unlimited {
		limit := defaultSalePageSize
		if f.Limit != nil && *f.Limit > 0 {
			limit = min(*f.Limit, defaultSalePageSize)
		}
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
	}

	if f.Offset != nil && *f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *f.Offset)
	}

	return query, args
}

func (r *PostgresSaleRepository) getTotal(whereClause string, args []any) (int, error) {
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM sales %s", whereClause)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PostgresSaleRepository) executeQuery(query string, args []any) ([]models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		var customerID sql.NullInt64
		var createdAt time.Time
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &customerID, &s.CreditAmount, &createdAt); err != nil {
			return nil, err
		}
		if customerID.Valid {
			id := int(customerID.Int64)
			s.CustomerID = &id
		}
		s.CreatedAt = createdAt.Format(time.RFC3339)
		sales = append(sales, s)
	}

	return sales, rows.Err()
}
