package convert

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	intPrefix = regexp.MustCompile(`^-?\d+`)
	ddmmyyyy  = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
)

// ParseIntOrZero parses the leading integer of a numeric field, yielding 0
// for anything unparseable. Matches the forgiving behavior downstream
// consumers already rely on.
func ParseIntOrZero(s string) int {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// ParseArrival parses an arrival quantity, yielding nil when the field is
// empty or unparseable. Arrivals are optional; prices are not.
func ParseArrival(s string) *int {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

// ParseNumber parses a possibly comma-separated decimal and rounds it to the
// nearest integer, yielding 0 on failure. The live Agmarknet feed formats
// quantities as "1,234.5".
func ParseNumber(s string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int(math.Round(f))
}

// NormalizeDate rewrites DD-MM-YYYY dates to YYYY-MM-DD. Any other format
// passes through unchanged.
func NormalizeDate(s string) string {
	if m := ddmmyyyy.FindStringSubmatch(s); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}
	return s
}
