// Package repository persists customers.
//
// It holds the raw SQL, keeping storage details away from the service
// layer, plus an in-memory implementation of the same contract.
package repository

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/docker-crm/internal/model"
	"github.com/deppfellow/docker-crm/internal/sqlerr"
)

const customersTable = "customers"

// ErrCustomerNotFound is returned by UpdateCustomer when the id is not stored.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository is the storage contract for customers.
//
// Writes that break a column rule or a uniqueness rule fail with a
// *sqlerr.Error (see sqlerr.IsConstraintViolation) and persist nothing.
type CustomerRepository interface {
	// AddCustomer stores c under a newly generated id. c.ID is ignored.
	AddCustomer(ctx context.Context, c model.Customer) (model.Customer, error)

	// GetAllCustomers lists every customer ordered by id. Never nil.
	GetAllCustomers(ctx context.Context) ([]model.Customer, error)

	// GetCustomerByID reports found=false when no customer has id.
	GetCustomerByID(ctx context.Context, id int64) (model.Customer, bool, error)

	// UpdateCustomer replaces every mutable field of the customer with c.ID.
	UpdateCustomer(ctx context.Context, c model.Customer) (model.Customer, error)

	// DeleteCustomerByID removes the customer. Deleting a missing id is a no-op.
	DeleteCustomerByID(ctx context.Context, id int64) error
}

// DBTX is the subset of pgxpool.Pool (and pgx.Tx) the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// checkColumns enforces the declared column rules before a write.
//
// Missing values are reported as NotNullViolation and overlong ones as
// StringDataRightTruncation, the same codes PostgreSQL raises.
func checkColumns(c model.Customer) error {
	err := c.Validate()
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return sqlerr.NewConstraintError(sqlerr.NotNullViolation, customersTable, fe.Field(), "",
			"null value in column \""+fe.Field()+"\" violates not-null constraint")
	case "max":
		return sqlerr.NewConstraintError(sqlerr.StringDataRightTruncation, customersTable, fe.Field(), "",
			"value too long for column \""+fe.Field()+"\"")
	default:
		return sqlerr.NewConstraintError(sqlerr.CheckViolation, customersTable, fe.Field(), "",
			"value for column \""+fe.Field()+"\" violates "+fe.Tag())
	}
}

func duplicateEmail() error {
	return sqlerr.NewConstraintError(sqlerr.UniqueViolation, customersTable, "email", "customers_email_key",
		"duplicate key value violates unique constraint \"customers_email_key\"")
}

func duplicatePhone() error {
	return sqlerr.NewConstraintError(sqlerr.UniqueViolation, customersTable, "phone", "customers_phone_key",
		"duplicate key value violates unique constraint \"customers_phone_key\"")
}
