package req

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/burrow"
)

// translateDecoderError sorts the errors *schema.Decoder returns decoding values.
// Values not converting to their field's type are ValidationErrors;
// struct tags schema cannot work with wrap burrow.ErrBadConfig.
func translateDecoderError(values url.Values, err error) error {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return fmt.Errorf("%w: %s", burrow.ErrNotValid, err)
	}

	keys := make([]string, 0, len(multi))
	for key := range multi {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var errs ValidationErrors
	for _, key := range keys {
		e := multi[key]

		var conv schema.ConversionError
		switch {
		case errors.As(e, &conv):
			var got any = values.Get(key)
			if vals := values[key]; conv.Index >= 0 && conv.Index < len(vals) {
				got = vals[conv.Index]
			}

			errs = append(errs, ValidationError{Field: key, Value: got, Rule: "type=" + conv.Type.String()})

		case errors.As(e, new(schema.EmptyFieldError)):
			return fmt.Errorf(`%w: %s: require fields with "validate" struct tags`, burrow.ErrBadConfig, key)

		case strings.Contains(e.Error(), "converter not found"):
			return fmt.Errorf("%w: %s: unsupported field type", burrow.ErrBadConfig, key)

		default:
			return fmt.Errorf("%w: %s", burrow.ErrUnexpected, e)
		}
	}

	return errs
}
