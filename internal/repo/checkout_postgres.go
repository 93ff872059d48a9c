package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/pos-register/internal/models"
)

type PostgresCheckoutRepository struct {
	db *sql.DB
}

func NewPostgresCheckoutRepository(db *sql.DB) *PostgresCheckoutRepository {
	return &PostgresCheckoutRepository{db: db}
}

func (r *PostgresCheckoutRepository) CommitSale(lines []CheckoutLine, customerID *int, creditTotal float64) (CheckoutReceipt, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return CheckoutReceipt{}, fmt.Errorf("failed to begin checkout: %w", err)
	}
	defer tx.Rollback()

	var receipt CheckoutReceipt

	if creditTotal > 0 {
		if customerID == nil {
			return CheckoutReceipt{}, ErrCustomerNotFound
		}
		// The guard re-checks the limit under the transaction, so a stale
		// balance read before checkout still cannot overdraw the customer.
		err := tx.QueryRowContext(ctx, `
			UPDATE customers
			SET balance_due = balance_due + $1, updated_at = $2
			WHERE id = $3 AND balance_due + $1 <= credit_limit
			RETURNING balance_due
		`, creditTotal, time.Now().UTC(), *customerID).Scan(&receipt.NewBalance)
		if errors.Is(err, sql.ErrNoRows) {
			return CheckoutReceipt{}, ErrCreditLimitExceeded
		}
		if err != nil {
			return CheckoutReceipt{}, fmt.Errorf("failed to update balance: %w", err)
		}
	}

	now := time.Now().UTC()
	for _, line := range lines {
		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET quantity = quantity - $1, updated_at = $2
			WHERE id = $3 AND quantity - $1 >= 0
		`, line.Quantity, now, line.ProductID)
		if err != nil {
			return CheckoutReceipt{}, fmt.Errorf("failed to decrement stock: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return CheckoutReceipt{}, ErrInsufficientStock
		}

		var customer any
		if customerID != nil {
			customer = *customerID
		}
		var saleID int
		err = tx.QueryRowContext(ctx, `
			INSERT INTO sales (product_id, quantity, customer_id, credit_amount, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, line.ProductID, line.Quantity, customer, line.CreditAmount, now).Scan(&saleID)
		if err != nil {
			return CheckoutReceipt{}, fmt.Errorf("failed to insert sale: %w", err)
		}
		receipt.SaleIDs = append(receipt.SaleIDs, saleID)
	}

	if err := tx.Commit(); err != nil {
		return CheckoutReceipt{}, fmt.Errorf("failed to commit checkout: %w", err)
	}
	return receipt, nil
}

func (r *PostgresCheckoutRepository) RecordPayment(customerID int, amount float64) (models.Payment, float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Payment{}, 0, fmt.Errorf("failed to begin payment: %w", err)
	}
	defer tx.Rollback()

	var newBalance float64
	err = tx.QueryRowContext(ctx, `
		UPDATE customers
		SET balance_due = balance_due - $1, updated_at = $2
		WHERE id = $3 AND balance_due - $1 >= 0
		RETURNING balance_due
	`, amount, time.Now().UTC(), customerID).Scan(&newBalance)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, 0, ErrPaymentExceedsBalance
	}
	if err != nil {
		return models.Payment{}, 0, fmt.Errorf("failed to update balance: %w", err)
	}

	now := time.Now().UTC()
	payment := models.Payment{
		CustomerID: customerID,
		Amount:     amount,
		CreatedAt:  now.Format(time.RFC3339),
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO payments (customer_id, amount, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, customerID, amount, now).Scan(&payment.ID)
	if err != nil {
		return models.Payment{}, 0, fmt.Errorf("failed to insert payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Payment{}, 0, fmt.Errorf("failed to commit payment: %w", err)
	}
	return payment, newBalance, nil
}
