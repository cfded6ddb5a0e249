package thread

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Status is the lifecycle marker of a comment. Older clients send it either as
// a string or as a number; both forms are resolved here and nowhere else.
type Status int

const (
	StatusActive Status = iota
	StatusDeleted
)

var ErrUnknownStatus = errors.New("unknown comment status")

func (s Status) String() string {
	switch s {
	case StatusDeleted:
		return "deleted"
	default:
		return "active"
	}
}

// ParseStatus resolves a raw status value. Unknown values yield StatusActive
// together with ErrUnknownStatus so callers may choose to be lenient.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "active", "normal", "0":
		return StatusActive, nil
	case "deleted", "removed", "1":
		return StatusDeleted, nil
	default:
		return StatusActive, fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = StatusActive
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		unq, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		raw = unq
	}
	st, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}
