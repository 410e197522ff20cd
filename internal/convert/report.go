package convert

import (
	"fmt"
	"log/slog"
)

// Report tracks counts and rejects from one conversion run. The unmatched
// and rejected lists are an operator deliverable: they are what gets patched
// in the reference data between runs.
type Report struct {
	Converted  int
	Matched    int
	Duplicates []string

	unmatchedCropSet  map[string]struct{}
	unmatchedMandiSet map[string]struct{}
	UnmatchedCrops    []string
	UnmatchedMandis   []string

	Rejected []string
}

// NewReport returns an empty conversion report.
func NewReport() *Report {
	return &Report{
		unmatchedCropSet:  make(map[string]struct{}),
		unmatchedMandiSet: make(map[string]struct{}),
	}
}

// AddUnmatchedCrop records a raw commodity label that resolved to no crop.
// Labels are deduplicated, first occurrence keeps its position.
func (r *Report) AddUnmatchedCrop(label string) {
	if _, seen := r.unmatchedCropSet[label]; seen {
		return
	}
	r.unmatchedCropSet[label] = struct{}{}
	r.UnmatchedCrops = append(r.UnmatchedCrops, label)
}

// AddUnmatchedMandi records a raw market label that resolved to no mandi.
func (r *Report) AddUnmatchedMandi(label string) {
	if _, seen := r.unmatchedMandiSet[label]; seen {
		return
	}
	r.unmatchedMandiSet[label] = struct{}{}
	r.UnmatchedMandis = append(r.UnmatchedMandis, label)
}

// AddRejectedf records a record rejected by a validation policy.
func (r *Report) AddRejectedf(format string, args ...any) {
	r.Rejected = append(r.Rejected, fmt.Sprintf(format, args...))
}

// Summary returns a one-line human-readable summary.
func (r *Report) Summary() string {
	return fmt.Sprintf(
		"converted=%d matched=%d duplicates=%d unmatched_crops=%d unmatched_mandis=%d rejected=%d",
		r.Converted, r.Matched, len(r.Duplicates),
		len(r.UnmatchedCrops), len(r.UnmatchedMandis), len(r.Rejected),
	)
}

// Log writes the full report through the logger: the summary line plus every
// unmatched and rejected label.
func (r *Report) Log(logger *slog.Logger) {
	logger.Info("conversion finished", "summary", r.Summary())
	for _, c := range r.UnmatchedCrops {
		logger.Warn("unmatched crop", "commodity", c)
	}
	for _, m := range r.UnmatchedMandis {
		logger.Warn("unmatched mandi", "market", m)
	}
	for _, rej := range r.Rejected {
		logger.Warn("rejected record", "reason", rej)
	}
}
