package db

import (
	"testing"

	"github.com/sqlgate/sqlgate/dberr"
	"github.com/sqlgate/sqlgate/types"
)

func TestRowColumnLookup(t *testing.T) {
	row := makeRow([]types.ColumnType{types.Int, types.VarChar}, []any{int64(1), []byte("x")})

	col, err := row.ColumnWithName("c1")
	if err != nil {
		t.Fatalf("ColumnWithName failed: %v", err)
	}
	if col.Ordinal() != 1 || col.Type() != types.VarChar {
		t.Errorf("Got column %d of type %v", col.Ordinal(), col.Type())
	}

	if _, err := row.ColumnWithName("missing"); !dberr.Is(err, dberr.ColumnNotFound) {
		t.Errorf("Expected ColumnNotFound, got %v", err)
	}

	col, err = row.ColumnWithOrdinal(0)
	if err != nil {
		t.Fatalf("ColumnWithOrdinal failed: %v", err)
	}
	if col.Name() != "c0" {
		t.Errorf("Expected c0, got %q", col.Name())
	}

	if _, err := row.ColumnWithOrdinal(2); !dberr.Is(err, dberr.ColumnIndexOutOfBounds) {
		t.Errorf("Expected ColumnIndexOutOfBounds, got %v", err)
	}
	if _, err := row.ColumnWithOrdinal(-1); !dberr.Is(err, dberr.ColumnIndexOutOfBounds) {
		t.Errorf("Expected ColumnIndexOutOfBounds, got %v", err)
	}
}

func TestRowEmptiness(t *testing.T) {
	row := makeRow(nil, nil)
	if !row.IsEmpty() || row.ColumnCount() != 0 {
		t.Error("Expected an empty row")
	}

	row = makeRow([]types.ColumnType{types.Int}, []any{int64(1)})
	if row.IsEmpty() || row.ColumnCount() != 1 {
		t.Error("Expected a one-column row")
	}
}

func TestRowColumnsSnapshot(t *testing.T) {
	row := makeRow([]types.ColumnType{types.Int, types.VarChar}, []any{int64(1), []byte("x")})

	snapshot := row.Columns()
	if len(snapshot) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(snapshot))
	}

	// The snapshot is independent of the row's own descriptors
	snapshot[0] = TableColumnRef{}
	col, _ := row.ColumnWithOrdinal(0)
	if col.Name() != "c0" {
		t.Error("Mutating the snapshot changed the row")
	}
}

func TestRowVectorBounds(t *testing.T) {
	vector := &TableRowVector{rows: []*TableRow{
		makeRow([]types.ColumnType{types.Int}, []any{int64(1)}),
		makeRow([]types.ColumnType{types.Int}, []any{int64(2)}),
	}}

	if vector.Size() != 2 {
		t.Fatalf("Expected 2 rows, got %d", vector.Size())
	}

	if _, err := vector.Get(1); err != nil {
		t.Errorf("Get(1) failed: %v", err)
	}
	if _, err := vector.Get(2); !dberr.Is(err, dberr.RowIndexOutOfBounds) {
		t.Errorf("Expected RowIndexOutOfBounds, got %v", err)
	}
	if _, err := vector.Get(-1); !dberr.Is(err, dberr.RowIndexOutOfBounds) {
		t.Errorf("Expected RowIndexOutOfBounds, got %v", err)
	}
}
