package table

import (
	"fmt"
	"strings"
)

// Kind is the semantic type of a column, independent of how Parquet stores it.
type Kind int

const (
	KindUnknown Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBinary
	KindTimestamp
	KindDate
	KindTime
	KindDecimal
	KindUUID
	KindJSON
)

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindBool:      "bool",
	KindInt:       "int",
	KindFloat:     "float",
	KindString:    "string",
	KindBinary:    "binary",
	KindTimestamp: "timestamp",
	KindDate:      "date",
	KindTime:      "time",
	KindDecimal:   "decimal",
	KindUUID:      "uuid",
	KindJSON:      "json",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Unit is the resolution of timestamp and time-of-day values.
type Unit int

const (
	UnitNone Unit = iota
	UnitMillis
	UnitMicros
	UnitNanos
)

func (u Unit) String() string {
	switch u {
	case UnitMillis:
		return "ms"
	case UnitMicros:
		return "us"
	case UnitNanos:
		return "ns"
	default:
		return ""
	}
}

// Type describes the values held by a column.
type Type struct {
	Kind     Kind
	BitWidth int  // KindInt and KindFloat
	Unsigned bool // KindInt
	Unit     Unit // KindTimestamp and KindTime
	UTC      bool // KindTimestamp adjusted to UTC

	Precision int // KindDecimal
	Scale     int // KindDecimal

	Nullable bool
	Repeated bool

	// Physical is the Parquet physical type name, e.g. "INT64" or "BYTE_ARRAY".
	Physical string
}

// Element returns the type of a single element of a repeated column.
func (t Type) Element() Type {
	t.Repeated = false
	t.Nullable = false
	return t
}

// String returns the label printed in the "Data Types" section of the report.
func (t Type) String() string {
	label := t.baseLabel()
	if t.Repeated {
		label = "list<" + label + ">"
	}
	if t.Nullable {
		label += " (nullable)"
	}
	return label
}

func (t Type) baseLabel() string {
	switch t.Kind {
	case KindInt:
		prefix := "int"
		if t.Unsigned {
			prefix = "uint"
		}
		return fmt.Sprintf("%s%d", prefix, bitsOr(t.BitWidth, 64))
	case KindFloat:
		return fmt.Sprintf("float%d", bitsOr(t.BitWidth, 64))
	case KindTimestamp:
		var parts []string
		if u := t.Unit.String(); u != "" {
			parts = append(parts, u)
		}
		if t.UTC {
			parts = append(parts, "UTC")
		}
		if len(parts) == 0 {
			return "timestamp"
		}
		return "timestamp[" + strings.Join(parts, ", ") + "]"
	case KindTime:
		if u := t.Unit.String(); u != "" {
			return "time[" + u + "]"
		}
		return "time"
	case KindDecimal:
		return fmt.Sprintf("decimal(%d,%d)", t.Precision, t.Scale)
	case KindUnknown:
		if t.Physical != "" {
			return strings.ToLower(t.Physical)
		}
		return "unknown"
	default:
		return t.Kind.String()
	}
}

func bitsOr(bits, fallback int) int {
	if bits <= 0 {
		return fallback
	}
	return bits
}
