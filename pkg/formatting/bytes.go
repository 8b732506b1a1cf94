// Package formatting converts byte sizes between human-readable strings
// ("1MB", "512 KB") and byte counts. Units are base-1024.
package formatting

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidSize is returned by ParseBytes for strings that do not describe a size.
var ErrInvalidSize = errors.New("invalid byte size")

var units = []string{"B", "KB", "MB", "GB", "TB"}

var sizePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([A-Za-z]*)$`)

// FormatBytes renders n with the largest unit that keeps the value >= 1.
// Negative precision is treated as zero.
func FormatBytes(n int64, precision int) string {
	if n <= 0 {
		return "0 B"
	}
	precision = max(precision, 0)

	i := min(int(math.Floor(math.Log(float64(n))/math.Log(1024))), len(units)-1)
	size := float64(n) / math.Pow(1024, float64(i))

	return strconv.FormatFloat(size, 'f', precision, 64) + " " + units[i]
}

// ParseBytes parses sizes such as "1MB", "512 kb", or "2048".
// A bare number is a byte count.
func ParseBytes(s string) (int64, error) {
	m := sizePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}

	unit := strings.ToUpper(m[2])
	if unit == "" {
		unit = "B"
	}

	idx := slices.Index(units, unit)
	if idx < 0 {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidSize, m[2])
	}

	return int64(value * math.Pow(1024, float64(idx))), nil
}
