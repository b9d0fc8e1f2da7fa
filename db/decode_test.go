package db

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/sqlgate/sqlgate/dberr"
	"github.com/sqlgate/sqlgate/types"
)

// makeRow builds a single row directly, the way a cursor would, so
// decode behavior is testable without a live server.
func makeRow(ctypes []types.ColumnType, values []any) *TableRow {
	columns := make([]TableColumnRef, len(ctypes))
	for i, ct := range ctypes {
		columns[i] = TableColumnRef{ordinal: i, name: "c" + string(rune('0'+i)), ctype: ct}
	}
	return &TableRow{values: values, columns: columns}
}

func TestDecodePreservesUnsignedWidth(t *testing.T) {
	row := makeRow([]types.ColumnType{types.TinyIntUnsigned}, []any{int64(250)})
	col, _ := row.ColumnWithOrdinal(0)

	value, err := row.DecodeToAllocation(col)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if value.Type() != types.UInt8 {
		t.Errorf("Expected UInt8, got %v", value.Type())
	}
	if value.Size() != 1 || value.Data()[0] != 250 {
		t.Errorf("Expected single byte 250, got %v", value.Data())
	}
	if value.IsNull() {
		t.Error("Expected a non-null value")
	}
}

func TestDecodeSignedWidths(t *testing.T) {
	row := makeRow(
		[]types.ColumnType{types.TinyInt, types.SmallInt, types.Int, types.BigInt},
		[]any{int64(-5), int64(-300), int64(70000), int64(-1 << 40)},
	)

	widths := []int{1, 2, 4, 8}
	for i, want := range widths {
		col, _ := row.ColumnWithOrdinal(i)
		value, err := row.DecodeToAllocation(col)
		if err != nil {
			t.Fatalf("Column %d: decode failed: %v", i, err)
		}
		if value.Size() != want {
			t.Errorf("Column %d: expected %d bytes, got %d", i, want, value.Size())
		}
	}

	// Spot-check the 2-byte payload round-trips
	col, _ := row.ColumnWithOrdinal(1)
	value, _ := row.DecodeToAllocation(col)
	if got := int16(binary.NativeEndian.Uint16(value.Data())); got != -300 {
		t.Errorf("Expected -300, got %d", got)
	}
}

func TestDecodeRangeOverflow(t *testing.T) {
	row := makeRow([]types.ColumnType{types.TinyIntUnsigned}, []any{int64(300)})
	col, _ := row.ColumnWithOrdinal(0)

	if _, err := row.DecodeToAllocation(col); !dberr.Is(err, dberr.ValueDecodeError) {
		t.Errorf("Expected ValueDecodeError for 300 in a uint8 column, got %v", err)
	}

	row = makeRow([]types.ColumnType{types.TinyIntUnsigned}, []any{int64(-1)})
	col, _ = row.ColumnWithOrdinal(0)
	if _, err := row.DecodeToAllocation(col); !dberr.Is(err, dberr.ValueDecodeError) {
		t.Errorf("Expected ValueDecodeError for -1 in an unsigned column, got %v", err)
	}
}

func TestDecodeNull(t *testing.T) {
	row := makeRow([]types.ColumnType{types.VarChar}, []any{nil})
	col, _ := row.ColumnWithOrdinal(0)

	value, err := row.DecodeToAllocation(col)
	if err != nil {
		t.Fatalf("Decoding NULL failed: %v", err)
	}
	if !value.IsNull() {
		t.Error("Expected null flag")
	}
	if value.Size() != 0 {
		t.Errorf("Expected empty payload, got %d bytes", value.Size())
	}
	// The tag stays the column's target type, never NoValue
	if value.Type() != types.String {
		t.Errorf("Expected preserved String tag, got %v", value.Type())
	}
}

func TestDecodeToBufferTwoPhase(t *testing.T) {
	row := makeRow([]types.ColumnType{types.VarChar}, []any{[]byte("hello world")})
	col, _ := row.ColumnWithOrdinal(0)

	// Phase one: undersized buffer reports the required size
	small := make([]byte, 4)
	size, _, _, err := row.DecodeToBuffer(col, small)
	if !dberr.Is(err, dberr.BufferNotEnough) {
		t.Fatalf("Expected BufferNotEnough, got %v", err)
	}
	if size != len("hello world") {
		t.Fatalf("Expected required size %d, got %d", len("hello world"), size)
	}

	// Phase two: retry with exactly that size succeeds
	exact := make([]byte, size)
	size, tag, isNull, err := row.DecodeToBuffer(col, exact)
	if err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if tag != types.String || isNull {
		t.Errorf("Expected non-null String, got %v null=%v", tag, isNull)
	}
	if string(exact[:size]) != "hello world" {
		t.Errorf("Expected %q, got %q", "hello world", exact[:size])
	}

	// The buffer path and the allocation path agree
	value, err := row.DecodeToAllocation(col)
	if err != nil {
		t.Fatalf("DecodeToAllocation failed: %v", err)
	}
	if !bytes.Equal(value.Data(), exact[:size]) {
		t.Error("Expected both decode paths to produce the same payload")
	}
}

func TestDecodeRejectsInvalidUtf8(t *testing.T) {
	row := makeRow([]types.ColumnType{types.VarChar}, []any{[]byte{0xff, 0xfe}})
	col, _ := row.ColumnWithOrdinal(0)

	if _, err := row.DecodeToAllocation(col); !dberr.Is(err, dberr.InvalidUtf8String) {
		t.Errorf("Expected InvalidUtf8String, got %v", err)
	}
}

func TestDecodeBlobSkipsUtf8Validation(t *testing.T) {
	raw := []byte{0xff, 0xfe, 0x00, 0x01}
	row := makeRow([]types.ColumnType{types.Blob}, []any{raw})
	col, _ := row.ColumnWithOrdinal(0)

	value, err := row.DecodeToAllocation(col)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if value.Type() != types.Bytes {
		t.Errorf("Expected Bytes, got %v", value.Type())
	}
	if !bytes.Equal(value.Data(), raw) {
		t.Errorf("Expected %v, got %v", raw, value.Data())
	}
}

func TestDecodeTemporalFormatting(t *testing.T) {
	moment := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)
	row := makeRow(
		[]types.ColumnType{types.Date, types.Time, types.DateTime},
		[]any{moment, moment, moment},
	)

	wants := []string{"2024-03-15", "09:30:45", "2024-03-15 09:30:45"}
	for i, want := range wants {
		col, _ := row.ColumnWithOrdinal(i)
		value, err := row.DecodeToAllocation(col)
		if err != nil {
			t.Fatalf("Column %d: decode failed: %v", i, err)
		}
		if got := string(value.Data()); got != want {
			t.Errorf("Column %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestDecodeTextualNumbers(t *testing.T) {
	// Text-protocol drivers hand numerics over as byte strings
	row := makeRow(
		[]types.ColumnType{types.Int, types.Double, types.BigIntUnsigned},
		[]any{[]byte("42"), []byte("3.5"), []byte("18446744073709551615")},
	)

	col, _ := row.ColumnWithOrdinal(0)
	value, err := row.DecodeToAllocation(col)
	if err != nil {
		t.Fatalf("Int decode failed: %v", err)
	}
	if got := int32(binary.NativeEndian.Uint32(value.Data())); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}

	col, _ = row.ColumnWithOrdinal(2)
	value, err = row.DecodeToAllocation(col)
	if err != nil {
		t.Fatalf("BigIntUnsigned decode failed: %v", err)
	}
	if got := binary.NativeEndian.Uint64(value.Data()); got != 1<<64-1 {
		t.Errorf("Expected max uint64, got %d", got)
	}
}

func TestDecodeUnknownColumnType(t *testing.T) {
	row := makeRow([]types.ColumnType{types.Unknown}, []any{int64(1)})
	col, _ := row.ColumnWithOrdinal(0)

	if _, err := row.DecodeToAllocation(col); !dberr.Is(err, dberr.TypeNotFound) {
		t.Errorf("Expected TypeNotFound, got %v", err)
	}
}

func TestDecodeIncompatibleKind(t *testing.T) {
	row := makeRow([]types.ColumnType{types.Int}, []any{time.Now()})
	col, _ := row.ColumnWithOrdinal(0)

	if _, err := row.DecodeToAllocation(col); !dberr.Is(err, dberr.ColumnDecodeError) {
		t.Errorf("Expected ColumnDecodeError, got %v", err)
	}
}
