package forms

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Choice is a reference to another record by id, kept as submitted so that
// a malformed value becomes a field error instead of a binding failure.
// JSON input may carry it as a number or a string.
type Choice string

// ChoiceOf renders id as a Choice.
func ChoiceOf(id uint) Choice {
	return Choice(strconv.FormatUint(uint64(id), 10))
}

func (c *Choice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Choice(s)
		return nil
	}
	*c = Choice(data)
	return nil
}

// Blank reports whether no choice was made. Zero counts as blank.
func (c Choice) Blank() bool {
	s := strings.TrimSpace(string(c))
	return s == "" || s == "0"
}

// ID parses the choice. ok is false for blank or malformed values.
func (c Choice) ID() (id uint, ok bool) {
	if c.Blank() {
		return 0, false
	}
	n, err := strconv.ParseUint(strings.TrimSpace(string(c)), 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
