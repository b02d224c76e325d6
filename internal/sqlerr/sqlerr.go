// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error codes from the database driver and
// converts them into user-friendly messages (e.g., converting
// a "foreign key violation" into a "Bad Request" error)
package sqlerr

import "fmt"

// Code is a database-agnostic category for a failed statement.
type Code int

const (
	Other Code = iota
	NotNullViolation
	ForeignKeyViolation
	UniqueViolation
	CheckViolation
	ExclusionViolation
	StringDataRightTruncation
	NumericValueOutOfRange
	InvalidTextRepresentation
	SerializationFailure
	DeadlockDetected
	UndefinedTable
	UndefinedColumn
)

var codeNames = map[Code]string{
	Other:                     "other",
	NotNullViolation:          "not_null_violation",
	ForeignKeyViolation:       "foreign_key_violation",
	UniqueViolation:           "unique_violation",
	CheckViolation:            "check_violation",
	ExclusionViolation:        "exclusion_violation",
	StringDataRightTruncation: "string_data_right_truncation",
	NumericValueOutOfRange:    "numeric_value_out_of_range",
	InvalidTextRepresentation: "invalid_text_representation",
	SerializationFailure:      "serialization_failure",
	DeadlockDetected:          "deadlock_detected",
	UndefinedTable:            "undefined_table",
	UndefinedColumn:           "undefined_column",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return codeNames[Other]
}

// pgCodes maps Postgres SQLSTATE values onto Code.
var pgCodes = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"22001": StringDataRightTruncation,
	"22003": NumericValueOutOfRange,
	"22P02": InvalidTextRepresentation,
	"40001": SerializationFailure,
	"40P01": DeadlockDetected,
	"42P01": UndefinedTable,
	"42703": UndefinedColumn,
}

// MapCode converts a SQLSTATE string into a Code. Unknown states map to Other.
func MapCode(sqlState string) Code {
	if code, ok := pgCodes[sqlState]; ok {
		return code
	}
	return Other
}

// Severity mirrors the Postgres message severity levels.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
	SeverityWarning
	SeverityNotice
	SeverityDebug
	SeverityInfo
	SeverityLog
)

// MapSeverity converts the severity text reported by the server.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityUnknown
	}
}

// Error is a normalized database error.
//
// It is produced either from a driver error (see ConvertPgError) or directly
// by a repository that rejects a write before it reaches the database, so
// both paths share a single error kind further up the stack.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

// NewConstraintError builds an Error for a rule rejected outside the database.
func NewConstraintError(code Code, tableName, columnName, constraintName, message string) *Error {
	return &Error{
		Code:           code,
		Severity:       SeverityError,
		Message:        message,
		TableName:      tableName,
		ColumnName:     columnName,
		ConstraintName: constraintName,
	}
}

func (e *Error) Error() string {
	if e.ConstraintName != "" {
		return fmt.Sprintf("%s: %s (constraint %s)", e.Code, e.Message, e.ConstraintName)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the original driver error, if any.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// IsConstraintViolation reports whether err carries an integrity or
// data-shape violation caused by the submitted values.
func IsConstraintViolation(err error) bool {
	switch ErrCode(err) {
	case NotNullViolation, ForeignKeyViolation, UniqueViolation, CheckViolation,
		ExclusionViolation, StringDataRightTruncation:
		return true
	default:
		return false
	}
}
