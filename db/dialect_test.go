package db

import (
	"strconv"
	"strings"
	"testing"

	"github.com/sqlgate/sqlgate/types"
)

func TestRewritePlaceholdersPostgres(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT * FROM t WHERE x = ?", "SELECT * FROM t WHERE x = $1"},
		{"INSERT INTO t VALUES (?, ?, ?)", "INSERT INTO t VALUES ($1, $2, $3)"},
		{"SELECT * FROM t WHERE x = '?' AND y = ?", "SELECT * FROM t WHERE x = '?' AND y = $1"},
		{`SELECT "odd?name" FROM t WHERE x = ?`, `SELECT "odd?name" FROM t WHERE x = $1`},
	}

	for _, tt := range tests {
		if got := rewritePlaceholders(tt.query, types.Postgres); got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.query, tt.want, got)
		}
	}
}

func TestRewritePlaceholdersOtherDialectsUntouched(t *testing.T) {
	query := "INSERT INTO t VALUES (?, ?)"
	if got := rewritePlaceholders(query, types.MySQL); got != query {
		t.Errorf("MySQL query rewritten: %q", got)
	}
	if got := rewritePlaceholders(query, types.DuckDB); got != query {
		t.Errorf("DuckDB query rewritten: %q", got)
	}
}

func TestRewritePlaceholdersManyArguments(t *testing.T) {
	var query, want strings.Builder
	for i := 1; i <= 123; i++ {
		if i > 1 {
			query.WriteString(", ")
			want.WriteString(", ")
		}
		query.WriteString("?")
		want.WriteString("$" + strconv.Itoa(i))
	}

	if got := rewritePlaceholders(query.String(), types.Postgres); got != want.String() {
		t.Errorf("Expected %q, got %q", want.String(), got)
	}
}
