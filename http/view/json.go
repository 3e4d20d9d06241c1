package view

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/burrow"
)

// JSON renders its values as a JSON object.
// The zero value renders an empty object.
type JSON struct {
	Base
}

// NewJSON constructs a *JSON with an empty Bag.
func NewJSON() *JSON { return &JSON{Base: Base{Bag: make(Bag)}} }

// String encodes the values held as JSON.
func (v *JSON) String() string {
	b, err := v.encode()
	if err != nil {
		return ""
	}

	return string(b)
}

// Render sends the headers, status and the JSON encoding of values held.
// Content-Type is application/json.
//
// Nothing is written if the values cannot be encoded.
func (v *JSON) Render(w http.ResponseWriter, r *http.Request) error {
	b := pool.Get().(*bytes.Buffer)
	b.Reset()
	defer pool.Put(b)

	if err := v.encodeTo(b); err != nil {
		return err
	}

	return v.write(w, "application/json", b.Bytes())
}

func (v *JSON) encode() ([]byte, error) {
	b := new(bytes.Buffer)
	if err := v.encodeTo(b); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

func (v *JSON) encodeTo(b *bytes.Buffer) error {
	data := v.Bag
	if data == nil {
		data = make(Bag)
	}

	if err := json.NewEncoder(b).Encode(data); err != nil {
		return fmt.Errorf("%w: cannot encode view: %s", burrow.ErrUnexpected, err)
	}

	// Encode terminates with a newline
	b.Truncate(b.Len() - 1)
	return nil
}
