package table

import "time"

// ColumnType is the coarse value type of a column, used when a storage
// backend needs a schema (Parquet files, Glue catalog tables).
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
)

func (ct ColumnType) String() string {
	switch ct {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeTime:
		return "time"
	default:
		return "string"
	}
}

// ColumnTypes infers a type per column from the first non-nil value seen.
// Columns with no non-nil values fall back to TypeString.
func (t *Table) ColumnTypes() map[string]ColumnType {
	types := make(map[string]ColumnType, len(t.columns))
	for _, col := range t.columns {
		types[col] = TypeString
		for _, row := range t.rows {
			v := row[col]
			if v == nil {
				continue
			}
			types[col] = typeOf(v)
			break
		}
	}
	return types
}

func typeOf(v any) ColumnType {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInt
	case float32, float64:
		return TypeFloat
	case bool:
		return TypeBool
	case time.Time:
		return TypeTime
	default:
		return TypeString
	}
}
