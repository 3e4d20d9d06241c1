package req

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"reflect"

	v10 "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/xy-planning-network/burrow"
)

// A Parser decodes request payloads into structs and validates them.
// A single *Parser is safe for concurrent use.
type Parser struct {
	values *schema.Decoder
	valid  *v10.Validate
}

// NewParser constructs a *Parser.
// Values keys absent from the struct decoded into are ignored.
func NewParser() *Parser {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return &Parser{values: dec, valid: newValidate()}
}

// ParseBody decodes the JSON in body into structPtr and validates it.
//
// ParseBody consumes body.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	if err := isStructPtr(structPtr); err != nil {
		return err
	}

	if err := json.NewDecoder(body).Decode(structPtr); err != nil {
		return fmt.Errorf("%w: cannot decode body: %s", burrow.ErrNotValid, err)
	}

	return p.validate(structPtr)
}

// ParseValues decodes query params or form values into structPtr and validates it.
// Fields are matched by their "schema" struct tags.
func (p *Parser) ParseValues(values url.Values, structPtr any) error {
	if err := isStructPtr(structPtr); err != nil {
		return err
	}

	if err := p.values.Decode(structPtr, values); err != nil {
		return fmt.Errorf("cannot decode values: %w", translateDecoderError(values, err))
	}

	return p.validate(structPtr)
}

func (p *Parser) validate(structPtr any) error {
	if err := check(p.valid, structPtr); err != nil {
		name := reflect.TypeOf(structPtr).Elem().Name()
		if name == "" {
			name = "payload"
		}

		return fmt.Errorf("invalid %s: %w", name, err)
	}

	return nil
}

func isStructPtr(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T is not a pointer to a struct", burrow.ErrTypeMismatch, v)
	}

	return nil
}
