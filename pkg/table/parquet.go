package table

import (
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/cast"
)

// EncodeParquet writes the table as a snappy-compressed Parquet file. The
// schema is inferred per column (see ColumnTypes); time values are stored as
// RFC 3339 strings. Note that Parquet orders columns alphabetically, so the
// table's logical column order is not preserved on disk.
func (t *Table) EncodeParquet(w io.Writer) error {
	types := t.ColumnTypes()
	group := parquet.Group{}
	for _, col := range t.columns {
		group[col] = parquetNode(types[col])
	}
	schema := parquet.NewSchema("table", group)

	rows := make([]map[string]any, 0, len(t.rows))
	for i, row := range t.rows {
		rec := make(map[string]any, len(t.columns))
		for _, col := range t.columns {
			v := row[col]
			if v == nil {
				continue
			}
			cv, err := coerce(v, types[col])
			if err != nil {
				return fmt.Errorf("column %q row %d: %w", col, i, err)
			}
			rec[col] = cv
		}
		rows = append(rows, rec)
	}

	pw := parquet.NewGenericWriter[map[string]any](w, schema, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	return pw.Close()
}

// DecodeParquet reads a Parquet file back into a table. Columns come back in
// the file's schema order.
func DecodeParquet(r io.ReaderAt, size int64) (*Table, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	var columns []string
	for _, sc := range f.Metadata().Schema {
		// The first schema element is the root group and has no type.
		if sc.Type == nil {
			continue
		}
		columns = append(columns, sc.Name)
	}

	t := New(columns...)
	for _, rg := range f.RowGroups() {
		rows, err := readRowGroup(rg)
		if err != nil {
			return nil, err
		}
		for _, prow := range rows {
			row := make(Row, len(columns))
			for _, cell := range prow {
				col := columns[cell.Column()]
				row[col] = cellValue(cell)
			}
			t.rows = append(t.rows, row)
		}
	}
	return t, nil
}

func readRowGroup(rg parquet.RowGroup) ([]parquet.Row, error) {
	reader := parquet.NewGenericRowGroupReader[any](rg)
	rows := make([]parquet.Row, 0, rg.NumRows())
	buf := make([]parquet.Row, 300)
	for {
		n, err := reader.ReadRows(buf)
		if n > 0 {
			for _, r := range buf[:n] {
				rows = append(rows, r.Clone())
			}
		}
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet rows: %w", err)
		}
	}
}

func cellValue(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.Boolean:
		return v.Boolean()
	default:
		return v.String()
	}
}

func parquetNode(ct ColumnType) parquet.Node {
	switch ct {
	case TypeInt:
		return parquet.Optional(parquet.Int(64))
	case TypeFloat:
		return parquet.Optional(parquet.Leaf(parquet.DoubleType))
	case TypeBool:
		return parquet.Optional(parquet.Leaf(parquet.BooleanType))
	default:
		return parquet.Optional(parquet.String())
	}
}

func coerce(v any, ct ColumnType) (any, error) {
	switch ct {
	case TypeInt:
		return cast.ToInt64E(v)
	case TypeFloat:
		return cast.ToFloat64E(v)
	case TypeBool:
		return cast.ToBoolE(v)
	default:
		return FormatValue(v), nil
	}
}
