package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/burrow"
)

func TestRowInt64(t *testing.T) {
	tcs := []struct {
		name     string
		val      any
		expected int64
		err      error
	}{
		{"int64", int64(7), 7, nil},
		{"int", 7, 7, nil},
		{"int32", int32(7), 7, nil},
		{"float64", float64(7), 7, nil},
		{"string", "7", 7, nil},
		{"bytes", []byte("7"), 7, nil},
		{"nil", nil, 0, nil},
		{"bad-string", "seven", 0, burrow.ErrUnexpected},
		{"bad-type", true, 0, burrow.ErrUnexpected},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Row{"id": tc.val}.Int64("id")
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestRowMissingColumn(t *testing.T) {
	_, err := Row{}.Int64("id")
	require.ErrorIs(t, err, burrow.ErrUnexpected)

	_, err = Row{}.String("title")
	require.ErrorIs(t, err, burrow.ErrUnexpected)
}

func TestRowString(t *testing.T) {
	r := Row{"s": "hi", "b": []byte("there"), "n": int64(3), "nil": nil}

	actual, err := r.String("s")
	require.Nil(t, err)
	require.Equal(t, "hi", actual)

	actual, err = r.String("b")
	require.Nil(t, err)
	require.Equal(t, "there", actual)

	actual, err = r.String("n")
	require.Nil(t, err)
	require.Equal(t, "3", actual)

	actual, err = r.String("nil")
	require.Nil(t, err)
	require.Equal(t, "", actual)
}

func TestRowBoolFloat(t *testing.T) {
	r := Row{"t": true, "i": int64(0), "s": "true", "f": 1.5, "fs": "2.5", "x": struct{}{}}

	b, err := r.Bool("t")
	require.Nil(t, err)
	require.True(t, b)

	b, err = r.Bool("i")
	require.Nil(t, err)
	require.False(t, b)

	b, err = r.Bool("s")
	require.Nil(t, err)
	require.True(t, b)

	_, err = r.Bool("x")
	require.ErrorIs(t, err, burrow.ErrUnexpected)

	f, err := r.Float64("f")
	require.Nil(t, err)
	require.Equal(t, 1.5, f)

	f, err = r.Float64("fs")
	require.Nil(t, err)
	require.Equal(t, 2.5, f)

	_, err = r.Float64("x")
	require.ErrorIs(t, err, burrow.ErrUnexpected)
}

func TestRowTime(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	r := Row{
		"time":     now,
		"rfc3339":  now.Format(time.RFC3339),
		"sqlite":   "2024-03-01 12:30:00",
		"date":     "2024-03-01",
		"garbage":  "yesterday",
		"nil":      nil,
		"mistyped": int64(1),
	}

	for _, col := range []string{"time", "rfc3339", "sqlite"} {
		actual, err := r.Time(col)
		require.Nil(t, err, col)
		require.True(t, now.Equal(actual), col)
	}

	actual, err := r.Time("date")
	require.Nil(t, err)
	require.True(t, now.Truncate(24*time.Hour).Equal(actual))

	actual, err = r.Time("nil")
	require.Nil(t, err)
	require.True(t, actual.IsZero())

	_, err = r.Time("garbage")
	require.ErrorIs(t, err, burrow.ErrUnexpected)

	_, err = r.Time("mistyped")
	require.ErrorIs(t, err, burrow.ErrUnexpected)
}
