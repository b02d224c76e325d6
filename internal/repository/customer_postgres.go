package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/deppfellow/docker-crm/internal/model"
	"github.com/deppfellow/docker-crm/internal/sqlerr"
)

const (
	customerColumns = `id, name, email, phone, notes`

	// $3 is the id to exclude, 0 on insert.
	uniqueProbeQuery = `
		SELECT
			EXISTS (SELECT 1 FROM customers WHERE email = $1 AND id <> $3),
			EXISTS (SELECT 1 FROM customers WHERE phone = $2 AND id <> $3)`

	insertCustomerQuery = `
		INSERT INTO customers (name, email, phone, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + customerColumns

	selectAllCustomersQuery = `SELECT ` + customerColumns + ` FROM customers ORDER BY id`

	selectCustomerByIDQuery = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	updateCustomerQuery = `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, notes = $5
		WHERE id = $1
		RETURNING ` + customerColumns

	deleteCustomerQuery = `DELETE FROM customers WHERE id = $1`
)

var _ CustomerRepository = (*PostgresCustomerRepository)(nil)

// PostgresCustomerRepository stores customers in the customers table.
type PostgresCustomerRepository struct {
	db DBTX
}

func NewPostgresCustomerRepository(db DBTX) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

func (r *PostgresCustomerRepository) AddCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	if err := r.checkWrite(ctx, c, 0); err != nil {
		return model.Customer{}, err
	}

	row := r.db.QueryRow(ctx, insertCustomerQuery, c.Name, c.Email, c.Phone, c.Notes)

	created, err := scanCustomer(row)
	if err != nil {
		return model.Customer{}, fmt.Errorf("insert customer: %w", convertError(err))
	}

	return created, nil
}

func (r *PostgresCustomerRepository) GetAllCustomers(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.Query(ctx, selectAllCustomersQuery)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}

	customers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Customer, error) {
		return scanCustomer(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect customers: %w", err)
	}

	if customers == nil {
		customers = []model.Customer{}
	}
	return customers, nil
}

func (r *PostgresCustomerRepository) GetCustomerByID(ctx context.Context, id int64) (model.Customer, bool, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, selectCustomerByIDQuery, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Customer{}, false, nil
	}
	if err != nil {
		return model.Customer{}, false, fmt.Errorf("select customer %d: %w", id, err)
	}

	return c, true, nil
}

func (r *PostgresCustomerRepository) UpdateCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	if err := r.checkWrite(ctx, c, c.ID); err != nil {
		return model.Customer{}, err
	}

	row := r.db.QueryRow(ctx, updateCustomerQuery, c.ID, c.Name, c.Email, c.Phone, c.Notes)

	updated, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Customer{}, ErrCustomerNotFound
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("update customer %d: %w", c.ID, convertError(err))
	}

	return updated, nil
}

func (r *PostgresCustomerRepository) DeleteCustomerByID(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, deleteCustomerQuery, id); err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	return nil
}

// checkWrite runs the column rules, then probes the unique columns,
// ignoring the row being updated.
func (r *PostgresCustomerRepository) checkWrite(ctx context.Context, c model.Customer, excludeID int64) error {
	if err := checkColumns(c); err != nil {
		return err
	}

	var emailTaken, phoneTaken bool
	err := r.db.QueryRow(ctx, uniqueProbeQuery, c.Email, c.Phone, excludeID).Scan(&emailTaken, &phoneTaken)
	if err != nil {
		return fmt.Errorf("probe unique customer columns: %w", err)
	}

	switch {
	case emailTaken:
		return duplicateEmail()
	case phoneTaken:
		return duplicatePhone()
	}
	return nil
}

func scanCustomer(row pgx.Row) (model.Customer, error) {
	var (
		c     model.Customer
		notes pgtype.Text
	)

	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &notes); err != nil {
		return model.Customer{}, err
	}

	if notes.Valid {
		c.Notes = &notes.String
	}
	return c, nil
}

// convertError normalizes server errors so concurrent writes that slip past
// checkWrite surface the same *sqlerr.Error kind.
func convertError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	sqlErr := sqlerr.ConvertPgError(pgErr)
	if sqlErr.TableName == "" {
		sqlErr.TableName = customersTable
	}
	return sqlErr
}
