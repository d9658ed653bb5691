package sqlerr

// Code is the application-level category for a database error.
type Code string

const (
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	Other               Code = "other"
)

// Severity mirrors the Postgres error severity field.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityUnknown Severity = "UNKNOWN"
)

// Postgres SQLSTATE codes for the constraint violations we classify.
// Reference: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// MapCode converts a raw SQLSTATE into a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case pgForeignKeyViolation:
		return ForeignKeyViolation
	case pgUniqueViolation:
		return UniqueViolation
	case pgNotNullViolation:
		return NotNullViolation
	case pgCheckViolation:
		return CheckViolation
	default:
		return Other
	}
}

// MapSeverity converts the Postgres severity string into a Severity.
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
	default:
		return SeverityUnknown
	}
}

// Error is the normalized database error. It keeps the interesting pieces
// of a pgconn.PgError (constraint, table, column) so messages can name the
// offending field, and retains the driver error for Unwrap.
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

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original driver error for errors.As/Is chains.
func (e *Error) Unwrap() error {
	return e.driverErr
}
