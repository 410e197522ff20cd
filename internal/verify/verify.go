// Package verify checks cross-catalog referential integrity of the
// converted files before they are loaded. The converters only guarantee
// integrity within their own output; this is the explicit cross-check run
// between convert and seed.
package verify

import (
	"fmt"

	"github.com/krishimandi/mandi-data/internal/model"
)

// Result lists every integrity violation found. An empty Problems slice
// means the dataset is safe to load.
type Result struct {
	Problems []string
}

// OK reports whether no violations were found.
func (r *Result) OK() bool { return len(r.Problems) == 0 }

func (r *Result) addf(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// Catalogs runs all integrity checks across the four converted datasets:
// unique ids within each catalog, every mandi's stateId present in the state
// catalog, and every price's cropId and mandiId present in theirs.
func Catalogs(crops []model.Crop, states []model.State, mandis []model.Mandi, prices []model.Price) *Result {
	res := &Result{}

	cropIDs := make(map[string]struct{}, len(crops))
	for _, c := range crops {
		if c.ID == "" {
			res.addf("crop %q has empty id", c.Name)
			continue
		}
		if _, dup := cropIDs[c.ID]; dup {
			res.addf("duplicate crop id %q", c.ID)
		}
		cropIDs[c.ID] = struct{}{}
	}

	stateIDs := make(map[string]struct{}, len(states))
	for _, s := range states {
		if s.ID == "" {
			res.addf("state %q has empty id", s.Name)
			continue
		}
		if _, dup := stateIDs[s.ID]; dup {
			res.addf("duplicate state id %q", s.ID)
		}
		stateIDs[s.ID] = struct{}{}
	}

	mandiIDs := make(map[string]struct{}, len(mandis))
	for _, m := range mandis {
		if m.ID == "" {
			res.addf("mandi %q has empty id", m.Name)
			continue
		}
		if _, dup := mandiIDs[m.ID]; dup {
			res.addf("duplicate mandi id %q", m.ID)
		}
		mandiIDs[m.ID] = struct{}{}
		if _, ok := stateIDs[m.StateID]; !ok {
			res.addf("mandi %q references unknown state %q", m.ID, m.StateID)
		}
	}

	for i, p := range prices {
		if _, ok := cropIDs[p.CropID]; !ok {
			res.addf("price %d references unknown crop %q", i, p.CropID)
		}
		if _, ok := mandiIDs[p.MandiID]; !ok {
			res.addf("price %d references unknown mandi %q", i, p.MandiID)
		}
		if _, ok := stateIDs[p.StateID]; !ok {
			res.addf("price %d references unknown state %q", i, p.StateID)
		}
	}

	return res
}
