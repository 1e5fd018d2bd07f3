package dto

import (
	"bytes"
	"encoding/json"
)

// NumberOrString accepts either a JSON number or a JSON string and keeps the
// raw text. Parsing is left to the usecase.
type NumberOrString string

func (n *NumberOrString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberOrString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = NumberOrString(num.String())
	return nil
}
