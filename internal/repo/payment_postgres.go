package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/rogerio-castellano/pos-register/internal/models"
)

type PostgresPaymentRepository struct {
	db *sql.DB
}

func NewPostgresPaymentRepository(db *sql.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

func (r *PostgresPaymentRepository) GetByCustomerID(customerID int) ([]models.Payment, error) {
	query := `SELECT id, customer_id, amount, created_at FROM payments WHERE customer_id = $1 ORDER BY created_at DESC, id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		var createdAt time.Time
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Amount, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = createdAt.Format(time.RFC3339)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
