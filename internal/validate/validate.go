package validate

import (
	"regexp"
	"strconv"
	"strings"
)

// Up to 18 digits always fits in an int64.
var reID = regexp.MustCompile(`^[0-9]{1,18}$`)

// ID validates a numeric resource identifier taken from a route segment.
func ID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if !reID.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// OptionalID is ID for optional route segments: an empty segment yields nil, true.
func OptionalID(s string) (*int64, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}
	n, ok := ID(s)
	if !ok {
		return nil, false
	}
	return &n, true
}
