package types

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// ID is a row id in a request body. It accepts a JSON number or a numeric
// string, since form inputs post ids as text.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	if bytes.HasPrefix(data, []byte{'"'}) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid id %s", raw)
		}
		raw = strings.TrimSpace(unquoted)
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s: must be an integer", data)
	}
	*id = ID(n)
	return nil
}

// Int64Ptr converts an optional id, keeping nil as nil.
func (id *ID) Int64Ptr() *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}
