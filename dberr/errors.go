package dberr

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error is a failure from the closed taxonomy, carrying the code a
// boundary caller receives and a human-readable message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the taxonomy code from err. A nil error is Success;
// an error that never passed through this package is UnknownDriverError.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return UnknownDriverError
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// FromDriver maps a failure surfaced by database/sql or one of the
// underlying drivers onto the taxonomy. Errors already carrying a Code
// pass through unchanged.
func FromDriver(err error) error {
	if err == nil {
		return nil
	}
	var already *Error
	if errors.As(err, &already) {
		return already
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return New(RowNotFound, "query returned no rows")
	case errors.Is(err, sql.ErrConnDone):
		return New(PoolClosed, "connection pool is closed")
	case errors.Is(err, sql.ErrTxDone):
		return New(PoolClosed, "transaction already finished")
	case errors.Is(err, context.DeadlineExceeded):
		return New(PoolTimedOut, "operation timed out waiting for the pool")
	case errors.Is(err, context.Canceled):
		return New(WorkerCrashed, "operation canceled before completion")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromPostgres(pgErr)
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return fromMySQL(myErr)
	}

	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return New(TlsError, err.Error())
	}
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return New(TlsError, err.Error())
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return New(TlsError, err.Error())
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return New(PoolTimedOut, err.Error())
		}
		return New(IoError, err.Error())
	}

	return New(UnknownDriverError, err.Error())
}

// fromPostgres classifies a server-reported Postgres error by its
// SQLSTATE class.
func fromPostgres(err *pgconn.PgError) *Error {
	class := ""
	if len(err.Code) >= 2 {
		class = err.Code[:2]
	}
	switch class {
	case "08": // connection exception
		return New(IoError, err.Message)
	case "28": // invalid authorization specification
		return New(ConfigurationError, err.Message)
	case "3D", "42": // undefined database / syntax or access rule
		return New(UnknownDatabaseError, err.Message)
	default:
		return New(UnknownDatabaseError, err.Message)
	}
}

// fromMySQL classifies a server-reported MySQL error by its number.
func fromMySQL(err *mysql.MySQLError) *Error {
	switch err.Number {
	case 1044, 1045, 1049: // access denied, unknown database
		return New(ConfigurationError, err.Message)
	case 1159, 1161: // net read/write timeout
		return New(PoolTimedOut, err.Message)
	default:
		if strings.HasPrefix(string(err.SQLState[:]), "08") {
			return New(IoError, err.Message)
		}
		return New(UnknownDatabaseError, err.Message)
	}
}
