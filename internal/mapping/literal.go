package mapping

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cayleygraph/quad"

	"github.com/ajitpratap0/meds2rdf/internal/vocab"
)

// Literal converts a raw value into a typed literal. Time values are
// normalized and always typed xsd:dateTime; anything else is converted to
// text and tagged with datatype without checking that it fits.
func Literal(v any, datatype quad.IRI) quad.TypedString {
	if t, ok := v.(time.Time); ok {
		return quad.TypedString{Value: quad.String(FormatTime(t)), Type: vocab.XSDDateTime}
	}
	return quad.TypedString{Value: quad.String(Text(v)), Type: datatype}
}

// FormatTime renders t in the canonical timestamp form used for xsd:dateTime.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// Text is the generic string conversion applied to raw column values.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return FormatTime(t)
	case fmt.Stringer:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(v)
	}
}
