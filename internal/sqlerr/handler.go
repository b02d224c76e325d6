package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/docker-crm/internal/errs"
)

var uniqueConstraintPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError normalizes a raw Postgres error.
//
// The SQLSTATE and severity are mapped to enums, and the original error is
// kept so errors.As can still reach the *pgconn.PgError.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds a machine-readable code of the form <DOMAIN>_<ACTION>.
//
//	customers + UniqueViolation => CUSTOMER_ALREADY_EXISTS
//	customers + NotNullViolation => CUSTOMER_REQUIRED
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation, ExclusionViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, StringDataRightTruncation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces the client-facing text for sqlErr.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation, ExclusionViolation:
		field := sqlErr.ColumnName
		if field == "" {
			field = extractColumnForUniqueViolation(sqlErr.ConstraintName)
		}
		if field == "" {
			return fmt.Sprintf("A %s with this identifier already exists", entityName)
		}
		return fmt.Sprintf("A %s with this %s already exists", entityName, humanizeText(field))

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation, StringDataRightTruncation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers the entity a message refers to.
//
// A "<entity>_id" column wins (foreign keys), then the singularized table
// name, then "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText turns "first_name" into "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation reads the column out of a unique constraint
// name. Both "unique_<table>_<column>" and "<table>_<column>_key" are understood.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueConstraintPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an *errs.HTTPError.
//
//   - *errs.HTTPError is returned unchanged.
//   - *Error and *pgconn.PgError become 409 (unique) or 400 (other violations).
//   - pgx.ErrNoRows and sql.ErrNoRows become 404.
//   - Anything else becomes 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var sqlErr *Error
	if !errors.As(err, &sqlErr) {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			sqlErr = ConvertPgError(pgErr)
		}
	}

	if sqlErr != nil {
		return constraintToHTTP(sqlErr)
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

func constraintToHTTP(sqlErr *Error) error {
	errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
	userMessage := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

	case UniqueViolation, ExclusionViolation:
		return errs.NewConflictError(userMessage, true, &errorCode)

	case NotNullViolation:
		fieldErrors := []errs.FieldError{
			{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			},
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

	case CheckViolation, StringDataRightTruncation:
		var fieldErrors []errs.FieldError
		if sqlErr.ColumnName != "" {
			fieldErrors = []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is invalid",
				},
			}
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

	default:
		return errs.NewInternalServerError()
	}
}
