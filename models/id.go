package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an identifier the FERB API may send as a JSON number or string.
// It is always held and re-encoded as a string so server ids compare
// equal to ids generated on the client. The empty ID encodes as null.
type ID string

func (id ID) String() string { return string(id) }

func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %s", string(b))
	}
	*id = ID(n.String())
	return nil
}

// Ptr returns a pointer to the string form, or nil for the empty ID.
func (id *ID) Ptr() *string {
	if id == nil || *id == "" {
		return nil
	}
	s := string(*id)
	return &s
}
