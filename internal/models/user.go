package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque identifier that the backend may send as a JSON number or string
type ID string

// UnmarshalJSON accepts both 42 and "42"
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// User is the minimal identity kept next to the session token
type User struct {
	ID ID `json:"id"`
}
