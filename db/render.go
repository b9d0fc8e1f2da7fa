package db

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/sqlgate/sqlgate/types"
)

// TableWriter renders query results as an ASCII table without external
// dependencies.
type TableWriter struct {
	writer  io.Writer
	headers []string
	rows    [][]string
}

// NewTableWriter creates a table writer targeting w.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{
		writer: w,
		rows:   make([][]string, 0),
	}
}

// Header sets the column headers.
func (t *TableWriter) Header(headers []string) {
	t.headers = headers
}

// Row adds a single formatted row.
func (t *TableWriter) Row(row []string) {
	t.rows = append(t.rows, row)
}

// Render outputs the formatted table.
func (t *TableWriter) Render() {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return
	}

	colWidths := t.calculateWidths()
	separator := t.buildSeparator(colWidths)

	fmt.Fprintln(t.writer, separator)
	if len(t.headers) > 0 {
		fmt.Fprintln(t.writer, t.formatRow(t.headers, colWidths))
		fmt.Fprintln(t.writer, separator)
	}
	for _, row := range t.rows {
		fmt.Fprintln(t.writer, t.formatRow(row, colWidths))
	}
	fmt.Fprintln(t.writer, separator)
}

// calculateWidths determines the width needed for each column.
func (t *TableWriter) calculateWidths() []int {
	numCols := len(t.headers)
	for _, row := range t.rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	widths := make([]int, numCols)
	for i, h := range t.headers {
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		if widths[i] < 1 {
			widths[i] = 1
		}
	}
	return widths
}

// buildSeparator creates the horizontal line.
func (t *TableWriter) buildSeparator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	return "+" + strings.Join(parts, "+") + "+"
}

// formatRow formats a single row with left-aligned padding.
func (t *TableWriter) formatRow(row []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		parts[i] = " " + cell + strings.Repeat(" ", w-len(cell)+1)
	}
	return "|" + strings.Join(parts, "|") + "|"
}

// RenderRows writes the whole result vector to w as an ASCII table,
// decoding every value through the engine's own decode path.
func RenderRows(w io.Writer, rows *TableRowVector) error {
	table := NewTableWriter(w)
	for i := 0; i < rows.Size(); i++ {
		row, err := rows.Get(i)
		if err != nil {
			return err
		}
		if i == 0 {
			columns := row.Columns()
			headers := make([]string, len(columns))
			for j, col := range columns {
				headers[j] = col.Name()
			}
			table.Header(headers)
		}
		cells, err := formatRowValues(row)
		if err != nil {
			return err
		}
		table.Row(cells)
	}
	table.Render()
	return nil
}

func formatRowValues(row *TableRow) ([]string, error) {
	columns := row.Columns()
	cells := make([]string, len(columns))
	for i, col := range columns {
		value, err := row.DecodeToAllocation(col)
		if err != nil {
			return nil, err
		}
		cells[i] = FormatValue(value)
	}
	return cells, nil
}

// FormatValue renders one decoded value for display. NULLs render as
// the literal NULL, blobs as a hex preview.
func FormatValue(v *AllocatedDecodedValue) string {
	if v.IsNull() {
		return "NULL"
	}
	data := v.Data()
	switch v.Type() {
	case types.Bool:
		if len(data) == 1 && data[0] != 0 {
			return "true"
		}
		return "false"
	case types.Int8:
		return strconv.FormatInt(int64(int8(data[0])), 10)
	case types.Int16:
		return strconv.FormatInt(int64(int16(binary.NativeEndian.Uint16(data))), 10)
	case types.Int32:
		return strconv.FormatInt(int64(int32(binary.NativeEndian.Uint32(data))), 10)
	case types.Int64:
		return strconv.FormatInt(int64(binary.NativeEndian.Uint64(data)), 10)
	case types.UInt8:
		return strconv.FormatUint(uint64(data[0]), 10)
	case types.UInt16:
		return strconv.FormatUint(uint64(binary.NativeEndian.Uint16(data)), 10)
	case types.UInt32:
		return strconv.FormatUint(uint64(binary.NativeEndian.Uint32(data)), 10)
	case types.UInt64:
		return strconv.FormatUint(binary.NativeEndian.Uint64(data), 10)
	case types.Float32:
		f := math.Float32frombits(binary.NativeEndian.Uint32(data))
		return strconv.FormatFloat(float64(f), 'g', -1, 32)
	case types.Float64:
		f := math.Float64frombits(binary.NativeEndian.Uint64(data))
		return strconv.FormatFloat(f, 'g', -1, 64)
	case types.String:
		return string(data)
	case types.Bytes:
		const preview = 16
		if len(data) > preview {
			return fmt.Sprintf("0x%x… (%d bytes)", data[:preview], len(data))
		}
		return fmt.Sprintf("0x%x", data)
	default:
		return ""
	}
}
