package entity

import (
	"bytes"
	"encoding/json"
)

// Text is a form field that accepts any JSON value. Strings decode as-is,
// null decodes to "", and numbers, booleans, arrays and objects keep their
// JSON text so they still reach the prompt.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(b)
	}
	return nil
}

func (l *Language) UnmarshalJSON(b []byte) error {
	var t Text
	if err := t.UnmarshalJSON(b); err != nil {
		return err
	}
	*l = Language(t)
	return nil
}
