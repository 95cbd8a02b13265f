package table

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	timestampLayout    = "2006-01-02 15:04:05.999999999"
	timestampUTCLayout = "2006-01-02 15:04:05.999999999Z07:00"
	dateLayout         = "2006-01-02"
)

// Text renders the value at row i as it appears in the preview and in the
// delimited output. Nulls render as the empty string.
func (c *Column) Text(i int) string {
	return FormatValue(c.Type, c.Values[i])
}

// FormatValue renders v, a value of a column of type t, as text.
func FormatValue(t Type, v any) string {
	if v == nil {
		return ""
	}
	if t.Repeated {
		if list, ok := v.([]any); ok {
			return formatList(t.Element(), list)
		}
	}
	return formatScalar(t, v)
}

func formatScalar(t Type, v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		switch {
		case t.Kind == KindDate:
			return val.Format(dateLayout)
		case t.UTC:
			return val.UTC().Format(timestampUTCLayout)
		default:
			return val.Format(timestampLayout)
		}
	case time.Duration:
		return formatTimeOfDay(val)
	case uuid.UUID:
		return val.String()
	case []byte:
		return base64.StdEncoding.EncodeToString(val)
	case []any:
		return formatList(t.Element(), val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatTimeOfDay renders d, an offset from midnight, as hh:mm:ss with an
// optional fractional part.
func formatTimeOfDay(d time.Duration) string {
	if d < 0 {
		return "-" + formatTimeOfDay(-d)
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second

	text := fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	if d > 0 {
		frac := fmt.Sprintf("%09d", int64(d))
		for frac[len(frac)-1] == '0' {
			frac = frac[:len(frac)-1]
		}
		text += "." + frac
	}
	return text
}

// formatList renders the elements of a repeated column as a JSON array.
func formatList(elem Type, list []any) string {
	items := make([]any, len(list))
	for i, v := range list {
		items[i] = jsonElement(elem, v)
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Sprintf("%v", list)
	}
	return string(b)
}

func jsonElement(elem Type, v any) any {
	switch val := v.(type) {
	case nil, bool, int64, uint64, int32:
		return val
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return formatScalar(elem, val)
		}
		return val
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return formatScalar(elem, val)
		}
		return val
	default:
		return formatScalar(elem, val)
	}
}
