package handler

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// flexUint decodes a JSON number or a numeric string.  HTML forms post
// every field as a string, so {"guests": "4"} and {"guests": 4} are both
// accepted.  null and "" decode to zero, which the service treats as
// missing.
type flexUint uint64

func (f *flexUint) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid number %s", s)
		}
		s = strings.TrimSpace(unq)
		if s == "" {
			*f = 0
			return nil
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("expected a non-negative integer, got %s", string(b))
	}
	*f = flexUint(n)
	return nil
}

func (f flexUint) u32() (uint32, bool) {
	if uint64(f) > math.MaxUint32 {
		return 0, false
	}
	return uint32(f), true
}

// parseID parses a positive path parameter.
func parseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
