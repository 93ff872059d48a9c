package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rogerio-castellano/pos-register/internal/models"
)

type PostgresCustomerRepository struct {
	db *sql.DB
}

func NewPostgresCustomerRepository(db *sql.DB) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

func (r *PostgresCustomerRepository) Create(c models.Customer) (models.Customer, error) {
	query := `INSERT INTO customers (name, address, credit_limit, balance_due, created_at, updated_at) VALUES ($1, $2, $3, 0, $4, $5) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, c.Name, c.Address, c.CreditLimit, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	c.BalanceDue = 0
	return c, err
}

func (r *PostgresCustomerRepository) GetAll() ([]models.Customer, error) {
	query := `SELECT id, name, address, credit_limit, balance_due FROM customers ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.CreditLimit, &c.BalanceDue); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *PostgresCustomerRepository) GetByID(id int) (models.Customer, error) {
	query := `SELECT id, name, address, credit_limit, balance_due FROM customers WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var c models.Customer
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Address, &c.CreditLimit, &c.BalanceDue)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, ErrCustomerNotFound
	}
	return c, err
}

// Update changes name, address and credit limit. balance_due is not touched.
func (r *PostgresCustomerRepository) Update(c models.Customer) (models.Customer, error) {
	query := `UPDATE customers SET name = $1, address = $2, credit_limit = $3, updated_at = $4 WHERE id = $5 RETURNING balance_due`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, c.Name, c.Address, c.CreditLimit, c.UpdatedAt, c.ID).Scan(&c.BalanceDue)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, ErrCustomerNotFound
	}
	return c, err
}
