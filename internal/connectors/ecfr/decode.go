package ecfr

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// looseString accepts a JSON string or number. Anything else decodes to "".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err == nil {
			*s = looseString(v)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*s = looseString(data)
	default:
		*s = ""
	}
	return nil
}

// looseInt accepts a JSON number or a numeric string. Anything else decodes to 0.
type looseInt int64

func (n *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	text := string(data)
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			*n = 0
			return nil
		}
		text = strings.TrimSpace(v)
	}
	*n = looseInt(parseLooseInt(text))
	return nil
}

func parseLooseInt(text string) int64 {
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}

// looseList decodes a JSON array of objects, skipping elements that are not
// objects. A value that is not an array decodes to an empty list.
type looseList[T any] []T

func (l *looseList[T]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}
	out := make([]T, 0, len(raw))
	for _, elem := range raw {
		if !isObject(elem) {
			continue
		}
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// isObject reports whether data holds a JSON object.
func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}
