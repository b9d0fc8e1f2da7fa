package db

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/sqlgate/sqlgate/dberr"
	"github.com/sqlgate/sqlgate/types"
)

// Settings carries everything needed to reach a database. A Settings
// value is owned by the Connection it is attached to; the Connection
// re-reads it only on (re)connect, so edits between connects are
// harmless but take effect on the next Connect.
type Settings struct {
	DatabaseType types.DatabaseType
	Username     string
	Password     string
	Hostname     string
	Port         uint16
	DatabaseName string
	UseTLS       types.OptionalBool
}

// NewSettings returns settings with the defaults a fresh boundary
// caller starts from: MySQL on localhost:3306, TLS deferred to the
// driver.
func NewSettings() *Settings {
	return &Settings{
		DatabaseType: types.MySQL,
		Hostname:     "localhost",
		Port:         3306,
		UseTLS:       types.OptionalNone,
	}
}

// validate checks the fields a connect attempt depends on.
func (s *Settings) validate() error {
	if !s.DatabaseType.Valid() {
		return dberr.Newf(dberr.BadPrimitiveEnumValue, "database type %d is not a known dialect", int32(s.DatabaseType))
	}
	if !s.UseTLS.Valid() {
		return dberr.Newf(dberr.BadPrimitiveEnumValue, "tls setting %d is not a known state", int32(s.UseTLS))
	}
	if s.DatabaseType != types.DuckDB {
		if s.Hostname == "" {
			return dberr.New(dberr.ConfigurationError, "hostname is empty")
		}
		if s.Port == 0 {
			return dberr.New(dberr.ConfigurationError, "port is zero")
		}
	}
	return nil
}

// driverName gives the registered database/sql driver for the dialect.
func (s *Settings) driverName() (string, error) {
	switch s.DatabaseType {
	case types.MySQL:
		return "mysql", nil
	case types.Postgres:
		return "pgx", nil
	case types.DuckDB:
		return "duckdb", nil
	default:
		return "", dberr.Newf(dberr.BadPrimitiveEnumValue, "database type %d is not a known dialect", int32(s.DatabaseType))
	}
}

// dsn builds the driver connection string. TLS is a tri-state: enforce,
// disable, or leave the driver's own default in place.
func (s *Settings) dsn() (string, error) {
	if err := s.validate(); err != nil {
		return "", err
	}
	switch s.DatabaseType {
	case types.MySQL:
		// The driver's own formatter; passwords may contain any
		// character, but its DSN grammar cannot represent ':' or '@'
		// in the username.
		if strings.ContainsAny(s.Username, ":@") {
			return "", dberr.New(dberr.ConfigurationError, "mysql username may not contain ':' or '@'")
		}
		cfg := mysql.NewConfig()
		cfg.User = s.Username
		cfg.Passwd = s.Password
		cfg.Net = "tcp"
		cfg.Addr = fmt.Sprintf("%s:%d", s.Hostname, s.Port)
		cfg.DBName = s.DatabaseName
		cfg.ParseTime = true
		switch s.UseTLS {
		case types.OptionalTrue:
			cfg.TLSConfig = "true"
		case types.OptionalFalse:
			cfg.TLSConfig = "false"
		}
		return cfg.FormatDSN(), nil

	case types.Postgres:
		u := url.URL{
			Scheme: "postgres",
			Host:   fmt.Sprintf("%s:%d", s.Hostname, s.Port),
			Path:   "/" + s.DatabaseName,
		}
		if s.Username != "" {
			u.User = url.UserPassword(s.Username, s.Password)
		}
		switch s.UseTLS {
		case types.OptionalTrue:
			u.RawQuery = "sslmode=require"
		case types.OptionalFalse:
			u.RawQuery = "sslmode=disable"
		}
		return u.String(), nil

	case types.DuckDB:
		// Embedded: the database name is a file path, empty for memory.
		return s.DatabaseName, nil

	default:
		return "", dberr.Newf(dberr.BadPrimitiveEnumValue, "database type %d is not a known dialect", int32(s.DatabaseType))
	}
}
