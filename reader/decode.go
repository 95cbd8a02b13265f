package reader

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/deprecated"

	"github.com/vegasq/pq2csv/table"
)

// julianUnixEpoch is the Julian day number of 1970-01-01.
const julianUnixEpoch = 2440588

// cell assembles the table value of one column for one row from the leaf
// values parquet-go produced for it.
func (c *ColumnInfo) cell(values []parquet.Value) (any, error) {
	if !c.Type.Repeated {
		if len(values) != 1 {
			return nil, fmt.Errorf("column %q: expected 1 value per row, got %d", c.Name, len(values))
		}
		return convertValue(c.Type, values[0])
	}

	// A single null at definition level 0 is a null list rather than an
	// empty one.
	if len(values) == 1 && values[0].IsNull() && values[0].DefinitionLevel() == 0 && c.Type.Nullable {
		return nil, nil
	}

	elem := c.Type.Element()
	list := make([]any, 0, len(values))
	for _, v := range values {
		if v.IsNull() {
			if c.leafOptional && v.DefinitionLevel() == c.maxDefinitionLevel-1 {
				list = append(list, nil)
			}
			continue
		}
		item, err := convertValue(elem, v)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		list = append(list, item)
	}
	return list, nil
}

// convertValue maps a single Parquet value to its table representation.
// Byte slices are copied since parquet-go reuses its page buffers.
func convertValue(t table.Type, v parquet.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}

	switch t.Kind {
	case table.KindBool:
		return v.Boolean(), nil

	case table.KindInt:
		switch v.Kind() {
		case parquet.Int32:
			if t.Unsigned {
				return uint64(uint32(v.Int32())), nil
			}
			return int64(v.Int32()), nil
		case parquet.Int64:
			if t.Unsigned {
				return uint64(v.Int64()), nil
			}
			return v.Int64(), nil
		}

	case table.KindFloat:
		switch v.Kind() {
		case parquet.Float:
			return v.Float(), nil
		case parquet.Double:
			return v.Double(), nil
		}

	case table.KindString, table.KindJSON:
		return string(v.ByteArray()), nil

	case table.KindBinary:
		return bytes.Clone(v.ByteArray()), nil

	case table.KindUUID:
		id, err := uuid.FromBytes(v.ByteArray())
		if err != nil {
			return nil, fmt.Errorf("invalid uuid value: %w", err)
		}
		return id, nil

	case table.KindDecimal:
		var unscaled *big.Int
		switch v.Kind() {
		case parquet.Int32:
			unscaled = big.NewInt(int64(v.Int32()))
		case parquet.Int64:
			unscaled = big.NewInt(v.Int64())
		case parquet.ByteArray, parquet.FixedLenByteArray:
			unscaled = decimalFromBytes(v.ByteArray())
		}
		if unscaled != nil {
			return formatDecimal(unscaled, t.Scale), nil
		}

	case table.KindTimestamp:
		switch v.Kind() {
		case parquet.Int64:
			return timestampFromInt64(v.Int64(), t.Unit), nil
		case parquet.Int96:
			return timestampFromInt96(v.Int96()), nil
		}

	case table.KindDate:
		if v.Kind() == parquet.Int32 {
			return time.Unix(int64(v.Int32())*86400, 0).UTC(), nil
		}

	case table.KindTime:
		switch v.Kind() {
		case parquet.Int32:
			return time.Duration(v.Int32()) * time.Millisecond, nil
		case parquet.Int64:
			if t.Unit == table.UnitNanos {
				return time.Duration(v.Int64()), nil
			}
			return time.Duration(v.Int64()) * time.Microsecond, nil
		}

	default:
		return fmt.Sprint(v), nil
	}

	return nil, fmt.Errorf("cannot decode %s value as %s", physicalTypeName(v.Kind()), t.Kind)
}

func timestampFromInt64(n int64, unit table.Unit) time.Time {
	switch unit {
	case table.UnitMillis:
		return time.UnixMilli(n).UTC()
	case table.UnitMicros:
		return time.UnixMicro(n).UTC()
	default:
		return time.Unix(0, n).UTC()
	}
}

// timestampFromInt96 decodes the legacy layout: nanoseconds within the day
// in the first eight bytes, Julian day number in the last four.
func timestampFromInt96(v deprecated.Int96) time.Time {
	nanos := int64(uint64(v[1])<<32 | uint64(v[0]))
	days := int64(v[2]) - julianUnixEpoch
	return time.Unix(days*86400, nanos).UTC()
}

// decimalFromBytes decodes a big-endian two's complement integer.
func decimalFromBytes(b []byte) *big.Int {
	n := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8)))
	}
	return n
}

// formatDecimal renders unscaled * 10^-scale in plain decimal notation.
func formatDecimal(unscaled *big.Int, scale int) string {
	digits := unscaled.String()
	negative := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	if scale > 0 {
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-scale] + "." + digits[len(digits)-scale:]
	}
	if negative {
		digits = "-" + digits
	}
	return digits
}
