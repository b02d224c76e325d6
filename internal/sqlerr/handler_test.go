package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/docker-crm/internal/errs"
)

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, StringDataRightTruncation, MapCode("22001"))
	assert.Equal(t, Other, MapCode("XX000"))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("customers_email_key"))
	assert.Equal(t, "phone", extractColumnForUniqueViolation("unique_customers_phone"))
	assert.Equal(t, "", extractColumnForUniqueViolation("customers_pkey"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}

func TestHandleErrorUniqueViolationFromDriver(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "customers",
		ConstraintName: "customers_email_key",
	}

	err := HandleError(fmt.Errorf("insert customer: %w", pgErr))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "CUSTOMER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Customer with this Email already exists", httpErr.Message)
}

func TestHandleErrorNormalizedErrors(t *testing.T) {
	t.Run("unique with column", func(t *testing.T) {
		err := HandleError(NewConstraintError(UniqueViolation, "customers", "phone", "customers_phone_key", "phone taken"))

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, "A Customer with this Phone already exists", httpErr.Message)
	})

	t.Run("not null", func(t *testing.T) {
		err := HandleError(NewConstraintError(NotNullViolation, "customers", "name", "", "name is required"))

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "CUSTOMER_REQUIRED", httpErr.Code)
		assert.Equal(t, "The Name is required", httpErr.Message)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "name", httpErr.Errors[0].Field)
	})

	t.Run("too long", func(t *testing.T) {
		err := HandleError(NewConstraintError(StringDataRightTruncation, "customers", "notes", "", "value too long"))

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "CUSTOMER_INVALID", httpErr.Code)
	})
}

func TestHandleErrorPassThroughAndFallbacks(t *testing.T) {
	notFound := errs.NewNotFoundError("gone", false, nil)
	assert.Same(t, notFound, HandleError(notFound))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(HandleError(pgx.ErrNoRows), &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)

	require.True(t, errors.As(HandleError(errors.New("connection reset")), &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)

	require.True(t, errors.As(HandleError(&pgconn.PgError{Code: "40P01"}), &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestIsConstraintViolation(t *testing.T) {
	assert.True(t, IsConstraintViolation(ConvertPgError(&pgconn.PgError{Code: "23505"})))
	assert.True(t, IsConstraintViolation(fmt.Errorf("wrap: %w", NewConstraintError(CheckViolation, "customers", "email", "", "bad"))))
	assert.False(t, IsConstraintViolation(errors.New("plain")))
	assert.False(t, IsConstraintViolation(ConvertPgError(&pgconn.PgError{Code: "40001"})))
}
