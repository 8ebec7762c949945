package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Tags is a free-form label list persisted as a JSON array.
type Tags []string

// Value serializes the list. A nil list is stored as NULL.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	data, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan deserializes a JSON array column. NULL and empty values become an empty list.
func (t *Tags) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Tags", src)
	}
	if len(data) == 0 {
		*t = Tags{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("invalid tags column: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*t = out
	return nil
}

// MarshalJSON always emits an array, never null.
func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}
