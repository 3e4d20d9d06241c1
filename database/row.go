package database

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xy-planning-network/burrow"
)

// timeLayouts are tried in order when a time column comes back as text.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// A Row maps column names to the values a driver returned for them.
//
// The typed accessors coerce the representations drivers commonly use.
// A NULL value yields the zero value.
// A column absent from the Row, or a value that cannot be coerced,
// yields an error wrapping burrow.ErrUnexpected.
type Row map[string]any

// Bool coerces the value of col to a bool.
func (r Row) Bool(col string) (bool, error) {
	v, err := r.lookup(col)
	if err != nil || v == nil {
		return false, err
	}

	switch t := v.(type) {
	case bool:
		return t, nil
	case int64:
		return t != 0, nil
	case int:
		return t != 0, nil
	case string, []byte:
		b, err := strconv.ParseBool(asString(t))
		if err != nil {
			return false, mistyped(col, v)
		}
		return b, nil
	default:
		return false, mistyped(col, v)
	}
}

// Float64 coerces the value of col to a float64.
func (r Row) Float64(col string) (float64, error) {
	v, err := r.lookup(col)
	if err != nil || v == nil {
		return 0, err
	}

	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case int:
		return float64(t), nil
	case string, []byte:
		f, err := strconv.ParseFloat(asString(t), 64)
		if err != nil {
			return 0, mistyped(col, v)
		}
		return f, nil
	default:
		return 0, mistyped(col, v)
	}
}

// Int64 coerces the value of col to an int64.
func (r Row) Int64(col string) (int64, error) {
	v, err := r.lookup(col)
	if err != nil || v == nil {
		return 0, err
	}

	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint:
		return int64(t), nil
	case uint64:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case string, []byte:
		i, err := strconv.ParseInt(asString(t), 10, 64)
		if err != nil {
			return 0, mistyped(col, v)
		}
		return i, nil
	default:
		return 0, mistyped(col, v)
	}
}

// String coerces the value of col to a string.
func (r Row) String(col string) (string, error) {
	v, err := r.lookup(col)
	if err != nil || v == nil {
		return "", err
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case time.Time:
		return t.Format(time.RFC3339Nano), nil
	default:
		return fmt.Sprint(t), nil
	}
}

// Time coerces the value of col to a time.Time.
func (r Row) Time(col string) (time.Time, error) {
	v, err := r.lookup(col)
	if err != nil || v == nil {
		return time.Time{}, err
	}

	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string, []byte:
		s := asString(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, mistyped(col, v)
	default:
		return time.Time{}, mistyped(col, v)
	}
}

func (r Row) lookup(col string) (any, error) {
	v, ok := r[col]
	if !ok {
		return nil, fmt.Errorf("%w: column %q not in row", burrow.ErrUnexpected, col)
	}

	return v, nil
}

func asString(v any) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}

	s, _ := v.(string)
	return s
}

func mistyped(col string, v any) error {
	return fmt.Errorf("%w: column %q holds %T", burrow.ErrUnexpected, col, v)
}
