package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when a value cannot be normalized to an ID
var ErrInvalidID = errors.New("invalid id")

// ID canonical identifier of appointments and events.
// Ids arrive as strings from URLs and some upstream payloads, and as numbers elsewhere;
// they are normalized to ID at the boundary and compared only as ID afterwards.
type ID int64

// ParseID parses a decimal id. Ids must be positive.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ID(n), nil
}

// NormalizeID converts a string or numeric value into an ID
func NormalizeID(v interface{}) (ID, error) {
	switch id := v.(type) {
	case ID:
		return checkPositive(int64(id))
	case int:
		return checkPositive(int64(id))
	case int32:
		return checkPositive(int64(id))
	case int64:
		return checkPositive(id)
	case float64:
		if id != math.Trunc(id) || id >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: %v", ErrInvalidID, id)
		}
		return checkPositive(int64(id))
	case json.Number:
		return ParseID(id.String())
	case string:
		return ParseID(id)
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidID, v)
	}
}

func checkPositive(n int64) (ID, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidID, n)
	}
	return ID(n), nil
}

// String returns the decimal representation
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// UnmarshalJSON accepts both 42 and "42"
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidID, err)
		}
		parsed, err := ParseID(s)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, data)
	}
	parsed, err := checkPositive(n)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
