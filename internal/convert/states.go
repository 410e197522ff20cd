package convert

import (
	"fmt"
	"strings"

	"github.com/krishimandi/mandi-data/internal/model"
	"github.com/krishimandi/mandi-data/internal/slug"
)

// Options controls how converters handle reference data gaps.
//
// AllowUnmapped restores the legacy best-effort behavior: records whose
// state has no code map entry get placeholder values instead of being
// rejected. The default (strict) rejects such records and fails the run, so
// a gap in the code map is fixed at the source instead of leaking
// placeholder ids into the dataset.
type Options struct {
	AllowUnmapped bool
}

// Placeholder values emitted under Options.AllowUnmapped.
const (
	PlaceholderStateCode = "XX"
	PlaceholderName      = "Unknown"
)

// States converts the raw geographic taxonomy into the state catalog, with
// districts grouped under their owning state. A state whose name is missing
// from the code map is rejected and reported; under strict options that
// makes the conversion fail after the full report is accumulated.
func States(geo *Geography, opts Options) ([]model.State, *Report, error) {
	report := NewReport()

	districts := make(map[int][]model.District)
	for _, d := range geo.Districts() {
		sid, ok := geo.DistrictStateID(d.ID)
		if !ok || sid == 0 {
			continue
		}
		districts[sid] = append(districts[sid], model.District{
			ID:   slug.MakeN(d.DistrictName, slug.DistrictMaxLen),
			Name: strings.TrimSpace(strings.ToLower(d.DistrictName)),
		})
	}

	states := make([]model.State, 0, len(geo.States()))
	for _, s := range geo.States() {
		code, ok := geo.StateCode(s.StateID)
		if !ok {
			report.AddRejectedf("state %q (id %d) has no state code map entry", s.StateName, s.StateID)
			continue
		}
		ds := districts[s.StateID]
		if ds == nil {
			ds = []model.District{}
		}
		states = append(states, model.State{
			ID:        code,
			Name:      strings.TrimSpace(strings.ToLower(s.StateName)),
			Districts: ds,
		})
	}

	report.Converted = len(states)
	if len(report.Rejected) > 0 && !opts.AllowUnmapped {
		return states, report, fmt.Errorf("%d states missing from the state code map", len(report.Rejected))
	}
	return states, report, nil
}

// DistrictCount totals districts across the state catalog.
func DistrictCount(states []model.State) int {
	n := 0
	for _, s := range states {
		n += len(s.Districts)
	}
	return n
}
