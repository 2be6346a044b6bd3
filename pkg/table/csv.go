package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cast"
)

// FormatValue renders a cell value the way the CSV codec writes it. Nil
// renders as the empty string, time values as RFC 3339.
func FormatValue(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case time.Time:
		return tv.Format(time.RFC3339)
	default:
		return cast.ToString(v)
	}
}

// EncodeCSV writes the table as CSV: a header row with the column names
// followed by one record per row, no index column. This is the payload
// layout CSV-serving SageMaker containers expect.
func (t *Table) EncodeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(t.columns))
	for _, row := range t.rows {
		for i, col := range t.columns {
			record[i] = FormatValue(row[col])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeCSV parses CSV into a table. The first record is taken as the
// column names, every following record as a row of string values.
func DecodeCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty csv body")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	t := New(header...)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			row[col] = record[i]
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}
