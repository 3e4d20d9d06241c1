package req_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/http/req"
)

func TestValidationErrors(t *testing.T) {
	errs := req.ValidationErrors{
		{Field: "title", Value: "", Rule: "required"},
		{Field: "n", Value: 500, Rule: "max=100"},
	}

	require.Equal(t, "title breaks required (got ); n breaks max=100 (got 500)", errs.Error())
	require.Equal(t, []string{"title", "n"}, errs.Fields())
	require.Empty(t, req.ValidationErrors(nil).Error())

	wrapped := fmt.Errorf("invalid noteInput: %w", errs)
	require.ErrorIs(t, wrapped, burrow.ErrNotValid)
	require.Equal(t, 400, burrow.AsFault(wrapped).Status())
	require.Equal(t, burrow.KindInvalidInput, burrow.AsFault(wrapped).Kind)

	b, err := json.Marshal(errs[1])
	require.Nil(t, err)
	require.JSONEq(t, `{"field":"n","value":500,"rule":"max=100"}`, string(b))
}
