package dberr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestCodeOf(t *testing.T) {
	if CodeOf(nil) != Success {
		t.Error("Expected nil error to map to Success")
	}
	if CodeOf(New(NotConnected, "x")) != NotConnected {
		t.Error("Expected NotConnected")
	}
	if CodeOf(errors.New("plain")) != UnknownDriverError {
		t.Error("Expected unclassified error to map to UnknownDriverError")
	}

	// Wrapped errors still carry their code
	wrapped := fmt.Errorf("dispatch: %w", New(BufferNotEnough, "need more"))
	if CodeOf(wrapped) != BufferNotEnough {
		t.Error("Expected wrapped error to keep its code")
	}
}

func TestErrorString(t *testing.T) {
	err := New(RowNotFound, "query returned no rows")
	want := "row not found: query returned no rows"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}

	bare := New(PoolClosed, "")
	if bare.Error() != "pool closed" {
		t.Errorf("Expected bare code string, got %q", bare.Error())
	}
}

func TestFromDriverSentinels(t *testing.T) {
	tests := []struct {
		err  error
		code Code
	}{
		{nil, Success},
		{sql.ErrNoRows, RowNotFound},
		{sql.ErrConnDone, PoolClosed},
		{context.DeadlineExceeded, PoolTimedOut},
		{context.Canceled, WorkerCrashed},
	}

	for _, tt := range tests {
		if got := CodeOf(FromDriver(tt.err)); got != tt.code {
			t.Errorf("%v: expected %v, got %v", tt.err, tt.code, got)
		}
	}
}

func TestFromDriverPassthrough(t *testing.T) {
	original := New(NoMoreRows, "cursor is exhausted")
	if FromDriver(original) != original {
		t.Error("Expected an already classified error to pass through")
	}
}

func TestFromDriverPostgres(t *testing.T) {
	tests := []struct {
		sqlstate string
		code     Code
	}{
		{"08006", IoError},            // connection failure
		{"28P01", ConfigurationError}, // invalid password
		{"42P01", UnknownDatabaseError},
	}

	for _, tt := range tests {
		err := &pgconn.PgError{Code: tt.sqlstate, Message: "m"}
		if got := CodeOf(FromDriver(err)); got != tt.code {
			t.Errorf("SQLSTATE %s: expected %v, got %v", tt.sqlstate, tt.code, got)
		}
	}
}

func TestFromDriverMySQL(t *testing.T) {
	tests := []struct {
		number uint16
		code   Code
	}{
		{1045, ConfigurationError}, // access denied
		{1049, ConfigurationError}, // unknown database
		{1161, PoolTimedOut},
		{1064, UnknownDatabaseError}, // syntax error
	}

	for _, tt := range tests {
		err := &mysql.MySQLError{Number: tt.number, Message: "m"}
		if got := CodeOf(FromDriver(err)); got != tt.code {
			t.Errorf("error %d: expected %v, got %v", tt.number, tt.code, got)
		}
	}
}

func TestCodeString(t *testing.T) {
	if Success.String() != "success" {
		t.Errorf("Got %q", Success.String())
	}
	if BadPrimitiveEnumValue.String() != "bad primitive enum value" {
		t.Errorf("Got %q", BadPrimitiveEnumValue.String())
	}
}
