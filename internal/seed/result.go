// Package seed bulk-loads the converted JSON files into MongoDB.
package seed

import "fmt"

// Result tracks counts and errors from a seeding operation.
type Result struct {
	Crops  int
	States int
	Mandis int
	Prices int
	Errors []string
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"crops=%d states=%d mandis=%d prices=%d errors=%d",
		r.Crops, r.States, r.Mandis, r.Prices, len(r.Errors),
	)
}
