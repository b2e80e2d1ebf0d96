package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{db: store.DB()}
}

// Save вставляет клиента. Уникальность ID обеспечивает первичный ключ,
// поэтому при гонке двух вставок успешна ровно одна.
func (r *customerRepository) Save(ctx context.Context, customer domain.Customer) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, windows)
		VALUES ($1, $2, $3)
	`, customer.ID, customer.Name, customer.Windows)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateEntity("Customer")
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id int) (domain.Customer, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var customer domain.Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, windows
		FROM customers
		WHERE id = $1
	`, id).Scan(&customer.ID, &customer.Name, &customer.Windows)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, false, nil
	}
	if err != nil {
		return domain.Customer{}, false, fmt.Errorf("select customer %d: %w", id, err)
	}
	return customer, true, nil
}

func (r *customerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	return r.query(ctx, `
		SELECT id, name, windows
		FROM customers
		ORDER BY id
	`)
}

// FindByName сравнивает имя побайтно, как и in-memory реализация.
func (r *customerRepository) FindByName(ctx context.Context, name string) ([]domain.Customer, error) {
	return r.query(ctx, `
		SELECT id, name, windows
		FROM customers
		WHERE name = $1
		ORDER BY id
	`, name)
}

func (r *customerRepository) query(ctx context.Context, query string, args ...any) ([]domain.Customer, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Customer, 0)
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Windows); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		result = append(result, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return result, nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
