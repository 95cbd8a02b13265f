package reader

import (
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/deprecated"
	"github.com/parquet-go/parquet-go/format"

	"github.com/vegasq/pq2csv/table"
)

// ColumnInfo describes one leaf column of a Parquet file as it appears in
// the decoded table.
type ColumnInfo struct {
	Name string
	Type table.Type

	// Path is the full Parquet path of the leaf, including list wrappers.
	Path []string
	// Index is the leaf column index used by parquet.Value.Column.
	Index int

	maxDefinitionLevel int
	leafOptional       bool
}

// extractColumns flattens the schema into leaf columns in schema order.
//
// Nested groups use dot notation (e.g. "address.street"). Standard
// three-level LIST wrappers are collapsed so a list field keeps its own name.
func extractColumns(schema *parquet.Schema) []ColumnInfo {
	var columns []ColumnInfo
	for _, field := range schema.Fields() {
		columns = append(columns, extractFieldColumns(schema, field, fieldPath{}, nesting{})...)
	}
	return columns
}

type fieldPath struct {
	names []string // display name segments
	path  []string // physical path segments
}

func (p fieldPath) with(name string, display bool) fieldPath {
	next := fieldPath{
		names: append(append([]string(nil), p.names...), name),
		path:  append(append([]string(nil), p.path...), name),
	}
	if !display {
		next.names = next.names[:len(next.names)-1]
	}
	return next
}

// nesting tracks the repetition and optionality of the enclosing fields.
type nesting struct {
	repeated bool
	optional bool
	// listOptional reports whether the outermost enclosing list may itself
	// be null, independent of the optionality of its elements.
	listOptional bool
}

// enterList returns the nesting inside a list whose own field has
// optionality n.optional.
func (n nesting) enterList() nesting {
	if !n.repeated {
		n.repeated = true
		n.listOptional = n.optional
	}
	return n
}

// extractFieldColumns recursively collects the leaf columns under field.
func extractFieldColumns(schema *parquet.Schema, field parquet.Field, parent fieldPath, outer nesting) []ColumnInfo {
	p := parent.with(field.Name(), true)
	n := outer
	if field.Repeated() {
		n = outer.enterList()
	}
	n.optional = outer.optional || field.Optional()

	children := field.Fields()
	if len(children) == 0 {
		return []ColumnInfo{leafColumn(schema, field, p, n)}
	}

	if wrapper, element, ok := listWrapper(field); ok {
		inner := p.with(wrapper.Name(), false).with(element.Name(), false)
		elem := n.enterList()
		if len(element.Fields()) == 0 {
			return []ColumnInfo{leafColumn(schema, element, inner, elem)}
		}
		var columns []ColumnInfo
		for _, child := range element.Fields() {
			columns = append(columns, extractFieldColumns(schema, child, inner, elem)...)
		}
		return columns
	}

	var columns []ColumnInfo
	for _, child := range children {
		columns = append(columns, extractFieldColumns(schema, child, p, n)...)
	}
	return columns
}

// listWrapper recognises the LIST layout
//
//	<optional|required> group name (LIST) { repeated group list { element } }
//
// and returns the repeated wrapper and its single element field.
func listWrapper(field parquet.Field) (wrapper, element parquet.Field, ok bool) {
	children := field.Fields()
	if len(children) != 1 || field.Repeated() {
		return nil, nil, false
	}
	wrapper = children[0]
	if !wrapper.Repeated() {
		return nil, nil, false
	}
	elems := wrapper.Fields()
	if len(elems) != 1 {
		return nil, nil, false
	}
	return wrapper, elems[0], true
}

func leafColumn(schema *parquet.Schema, field parquet.Field, p fieldPath, n nesting) ColumnInfo {
	info := ColumnInfo{
		Name:         strings.Join(p.names, "."),
		Path:         p.path,
		leafOptional: field.Optional(),
	}
	if leaf, ok := schema.Lookup(p.path...); ok {
		info.Index = leaf.ColumnIndex
		info.maxDefinitionLevel = leaf.MaxDefinitionLevel
	}

	info.Type = columnType(field)
	info.Type.Repeated = n.repeated
	info.Type.Nullable = n.optional
	if n.repeated {
		// For lists only the list itself decides nullability.
		info.Type.Nullable = n.listOptional
	}
	return info
}

// columnType infers the semantic type of a leaf from its logical type,
// falling back to the converted type and finally the physical type.
func columnType(field parquet.Field) table.Type {
	pt := field.Type()
	t := table.Type{Physical: physicalTypeName(pt.Kind())}

	if lt := pt.LogicalType(); lt != nil {
		switch {
		case lt.UTF8 != nil, lt.Enum != nil:
			t.Kind = table.KindString
			return t
		case lt.Json != nil:
			t.Kind = table.KindJSON
			return t
		case lt.UUID != nil:
			t.Kind = table.KindUUID
			return t
		case lt.Date != nil:
			t.Kind = table.KindDate
			return t
		case lt.Decimal != nil:
			t.Kind = table.KindDecimal
			t.Precision = int(lt.Decimal.Precision)
			t.Scale = int(lt.Decimal.Scale)
			return t
		case lt.Integer != nil:
			t.Kind = table.KindInt
			t.BitWidth = int(lt.Integer.BitWidth)
			t.Unsigned = !lt.Integer.IsSigned
			return t
		case lt.Timestamp != nil:
			t.Kind = table.KindTimestamp
			t.Unit = timeUnit(lt.Timestamp.Unit)
			t.UTC = lt.Timestamp.IsAdjustedToUTC
			return t
		case lt.Time != nil:
			t.Kind = table.KindTime
			t.Unit = timeUnit(lt.Time.Unit)
			return t
		}
	}

	if ct := pt.ConvertedType(); ct != nil {
		switch *ct {
		case deprecated.UTF8, deprecated.Enum:
			t.Kind = table.KindString
			return t
		case deprecated.Date:
			t.Kind = table.KindDate
			return t
		case deprecated.TimestampMillis:
			t.Kind, t.Unit = table.KindTimestamp, table.UnitMillis
			return t
		case deprecated.TimestampMicros:
			t.Kind, t.Unit = table.KindTimestamp, table.UnitMicros
			return t
		}
	}

	switch pt.Kind() {
	case parquet.Boolean:
		t.Kind = table.KindBool
	case parquet.Int32:
		t.Kind, t.BitWidth = table.KindInt, 32
	case parquet.Int64:
		t.Kind, t.BitWidth = table.KindInt, 64
	case parquet.Int96:
		// Legacy timestamps written by Impala, Hive and older Spark.
		t.Kind, t.Unit = table.KindTimestamp, table.UnitNanos
	case parquet.Float:
		t.Kind, t.BitWidth = table.KindFloat, 32
	case parquet.Double:
		t.Kind, t.BitWidth = table.KindFloat, 64
	case parquet.ByteArray, parquet.FixedLenByteArray:
		t.Kind = table.KindBinary
	default:
		t.Kind = table.KindUnknown
	}
	return t
}

func timeUnit(u format.TimeUnit) table.Unit {
	switch {
	case u.Millis != nil:
		return table.UnitMillis
	case u.Micros != nil:
		return table.UnitMicros
	case u.Nanos != nil:
		return table.UnitNanos
	default:
		return table.UnitNone
	}
}

// physicalTypeName returns the physical type name of a Parquet kind.
func physicalTypeName(kind parquet.Kind) string {
	switch kind {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}
