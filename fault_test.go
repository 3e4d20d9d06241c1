package burrow_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/burrow"
)

func TestAsFault(t *testing.T) {
	require.Nil(t, burrow.AsFault(nil))

	tcs := []struct {
		name   string
		err    error
		kind   burrow.FaultKind
		code   int
		status int
	}{
		{"Not-Found", fmt.Errorf("%w: row", burrow.ErrNotFound), burrow.KindNotFound, 404, 404},
		{"Bad-Config", fmt.Errorf("%w: tmpl", burrow.ErrBadConfig), burrow.KindConfig, 500, 500},
		{"Not-Exist", fmt.Errorf("%w: unsaved", burrow.ErrNotExist), burrow.KindPrecondition, 0, 500},
		{"Type-Mismatch", burrow.ErrTypeMismatch, burrow.KindTypeMismatch, 0, 500},
		{"Not-Valid", burrow.ErrNotValid, burrow.KindInvalidInput, 400, 400},
		{"Exists", burrow.ErrExists, burrow.KindStorage, 0, 500},
		{"Unexpected", burrow.ErrUnexpected, burrow.KindStorage, 0, 500},
		{"Other", errors.New("boom"), burrow.KindError, 0, 500},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			f := burrow.AsFault(tc.err)
			require.Equal(t, tc.kind, f.Kind)
			require.Equal(t, tc.code, f.Code)
			require.Equal(t, tc.status, f.Status())
			require.ErrorIs(t, f, tc.err)
		})
	}

	t.Run("Wrapped-Fault", func(t *testing.T) {
		orig := burrow.NewFault(burrow.KindError, http.StatusTeapot, "short and stout")
		f := burrow.AsFault(fmt.Errorf("wrapping: %w", orig))
		require.Same(t, orig, f)
		require.Equal(t, http.StatusTeapot, f.Status())
	})
}

func TestFaultError(t *testing.T) {
	require.Equal(t, "NotFound: Not Found (404)", burrow.NotFound("").Error())
	require.Equal(t, "Error: boom (0)", burrow.NewFault(burrow.KindError, 0, "boom").Error())
	require.Equal(t, 500, burrow.NewFault(burrow.KindError, -3, "neg").Status())
	require.Equal(t, 500, burrow.NewFault(burrow.KindError, 42, "low").Status())
	require.Equal(t, 500, burrow.NewFault(burrow.KindError, 1000, "high").Status())
	require.Equal(t, 999, burrow.NewFault(burrow.KindError, 999, "edge").Status())
	require.ErrorIs(t, burrow.NotFound("x"), burrow.ErrNotFound)
}
