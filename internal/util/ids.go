package util

import (
	"errors"
	"strconv"
)

// ParsePositiveID parses a decimal path id. Anything that is not a positive
// integer is rejected.
func ParsePositiveID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParsePage reads the page query value. A missing or non-numeric value means
// page 1. An integer too large for int is reported with inRange false.
func ParsePage(s string) (page int, inRange bool) {
	if s == "" {
		return 1, true
	}
	n, err := strconv.Atoi(s)
	if err == nil {
		return n, true
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return 1, true
}
