package postgres

import (
	"context"
	"database/sql"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (customer_no, first_name, last_name, phone, email)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, c.CustomerNo, c.FirstName, c.LastName, c.Phone, c.Email).Scan(&c.ID)
	return mapError(err)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT id, customer_no, first_name, last_name, phone, email FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.CustomerNo, &c.FirstName, &c.LastName, &c.Phone, &c.Email)
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}
