package handlers

import (
	"bytes"
	"encoding/json"
)

// optionalString is a JSON field that records whether it appeared in the
// request body, so an explicit null can be told apart from an absent field.
// An absent field leaves the stored value alone; an explicit null clears it.
type optionalString struct {
	Present bool
	Value   *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// ptr converts the field into the service-layer update pointer: nil when the
// field was absent, a pointer to the empty string when it was null.
func (o optionalString) ptr() *string {
	if !o.Present {
		return nil
	}
	if o.Value == nil {
		empty := ""
		return &empty
	}
	return o.Value
}
