package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/docker-crm/internal/model"
	"github.com/deppfellow/docker-crm/internal/sqlerr"
)

var customerRowColumns = []string{"id", "name", "email", "phone", "notes"}

func newMockRepository(t *testing.T) (*PostgresCustomerRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewPostgresCustomerRepository(mock), mock
}

func expectProbe(mock pgxmock.PgxPoolIface, email, phone string, excludeID int64, emailTaken, phoneTaken bool) {
	mock.ExpectQuery(`EXISTS`).
		WithArgs(email, phone, excludeID).
		WillReturnRows(mock.NewRows([]string{"email_taken", "phone_taken"}).AddRow(emailTaken, phoneTaken))
}

func TestPostgresAddCustomer(t *testing.T) {
	repo, mock := newMockRepository(t)

	expectProbe(mock, "ann@x.com", "555-1", 0, false, false)
	mock.ExpectQuery(`INSERT INTO customers`).
		WithArgs("Ann", "ann@x.com", "555-1", pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows(customerRowColumns).AddRow(int64(1), "Ann", "ann@x.com", "555-1", "vip"))

	created, err := repo.AddCustomer(context.Background(), ann())
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	require.NotNil(t, created.Notes)
	assert.Equal(t, "vip", *created.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAddCustomerDuplicateEmailSkipsInsert(t *testing.T) {
	repo, mock := newMockRepository(t)

	expectProbe(mock, "ann@x.com", "555-1", 0, true, true)

	_, err := repo.AddCustomer(context.Background(), ann())
	require.Error(t, err)

	var sqlErr *sqlerr.Error
	require.ErrorAs(t, err, &sqlErr)
	assert.Equal(t, sqlerr.UniqueViolation, sqlErr.Code)
	assert.Equal(t, "email", sqlErr.ColumnName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAddCustomerRaceConvertsDriverError(t *testing.T) {
	repo, mock := newMockRepository(t)

	expectProbe(mock, "ann@x.com", "555-1", 0, false, false)
	mock.ExpectQuery(`INSERT INTO customers`).
		WithArgs("Ann", "ann@x.com", "555-1", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "customers_phone_key"})

	_, err := repo.AddCustomer(context.Background(), ann())
	require.Error(t, err)

	var sqlErr *sqlerr.Error
	require.ErrorAs(t, err, &sqlErr)
	assert.Equal(t, sqlerr.UniqueViolation, sqlErr.Code)
	assert.Equal(t, "customers", sqlErr.TableName)

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)
}

func TestPostgresAddCustomerInvalidColumnsSkipDatabase(t *testing.T) {
	repo, mock := newMockRepository(t)

	c := ann()
	c.Phone = ""
	_, err := repo.AddCustomer(context.Background(), c)

	assert.Equal(t, sqlerr.NotNullViolation, sqlerr.ErrCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetAllCustomers(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM customers ORDER BY id`).
		WillReturnRows(mock.NewRows(customerRowColumns).
			AddRow(int64(1), "Ann", "ann@x.com", "555-1", "vip").
			AddRow(int64(2), "Bob", "bob@x.com", "555-2", nil))

	customers, err := repo.GetAllCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Bob", customers[1].Name)
	assert.Nil(t, customers[1].Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetAllCustomersEmpty(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM customers ORDER BY id`).
		WillReturnRows(mock.NewRows(customerRowColumns))

	customers, err := repo.GetAllCustomers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}

func TestPostgresGetCustomerByID(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM customers WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(mock.NewRows(customerRowColumns).AddRow(int64(1), "Ann", "ann@x.com", "555-1", nil))
	mock.ExpectQuery(`FROM customers WHERE id = \$1`).
		WithArgs(int64(999)).
		WillReturnRows(mock.NewRows(customerRowColumns))

	c, found, err := repo.GetCustomerByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, model.Customer{ID: 1, Name: "Ann", Email: "ann@x.com", Phone: "555-1"}, c)

	_, found, err = repo.GetCustomerByID(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetCustomerByIDPropagatesFailures(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM customers WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("connection reset"))

	_, found, err := repo.GetCustomerByID(context.Background(), 1)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestPostgresUpdateCustomer(t *testing.T) {
	repo, mock := newMockRepository(t)

	c := ann()
	c.ID = 1
	c.Name = "Annie"

	expectProbe(mock, "ann@x.com", "555-1", 1, false, false)
	mock.ExpectQuery(`UPDATE customers`).
		WithArgs(int64(1), "Annie", "ann@x.com", "555-1", pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows(customerRowColumns).AddRow(int64(1), "Annie", "ann@x.com", "555-1", "vip"))

	updated, err := repo.UpdateCustomer(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "Annie", updated.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateVanishedCustomer(t *testing.T) {
	repo, mock := newMockRepository(t)

	c := ann()
	c.ID = 5

	expectProbe(mock, "ann@x.com", "555-1", 5, false, false)
	mock.ExpectQuery(`UPDATE customers`).
		WithArgs(int64(5), "Ann", "ann@x.com", "555-1", pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows(customerRowColumns))

	_, err := repo.UpdateCustomer(context.Background(), c)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestPostgresUpdateDuplicatePhone(t *testing.T) {
	repo, mock := newMockRepository(t)

	c := ann()
	c.ID = 1

	expectProbe(mock, "ann@x.com", "555-1", 1, false, true)

	_, err := repo.UpdateCustomer(context.Background(), c)

	var sqlErr *sqlerr.Error
	require.ErrorAs(t, err, &sqlErr)
	assert.Equal(t, "phone", sqlErr.ColumnName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteCustomerByID(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`DELETE FROM customers`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.DeleteCustomerByID(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
