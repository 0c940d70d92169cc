package moderation

import (
	"regexp"
	"strconv"
)

var durationPattern = regexp.MustCompile(`^(\d+)(m|h|d)$`)

// ParseDuration converts strings like "10m", "2h" or "1d" into seconds.
// "0m" is valid and yields zero. Anything that does not match the
// pattern fails with ErrInvalidDuration.
func ParseDuration(s string) (int64, error) {
	match := durationPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, ErrInvalidDuration
	}

	n, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, ErrInvalidDuration
	}

	switch match[2] {
	case "m":
		return n * 60, nil
	case "h":
		return n * 3600, nil
	case "d":
		return n * 86400, nil
	}
	return 0, ErrInvalidDuration
}
