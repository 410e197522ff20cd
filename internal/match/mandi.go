package match

import (
	"strings"

	"github.com/krishimandi/mandi-data/internal/model"
)

// ENAMMandi resolves an eNAM market against the catalog by name.
//
// Candidates are mandis whose APMC-stripped name contains, or is contained
// in, the input name. Among candidates a state-name match is preferred; with
// no state match the first candidate in catalog order wins. Returns nil when
// there are no candidates at all.
func ENAMMandi(apmcName, stateName string, idx *MandiIndex) *model.Mandi {
	apmcUpper := strings.ToUpper(strings.TrimSpace(apmcName))
	stateUpper := strings.ToUpper(strings.TrimSpace(stateName))

	var candidates []*model.Mandi
	for i := range idx.ordered {
		base := baseName(idx.ordered[i].Name)
		if strings.Contains(base, apmcUpper) || strings.Contains(apmcUpper, base) {
			candidates = append(candidates, &idx.ordered[i])
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	for _, m := range candidates {
		sn := strings.ToUpper(m.StateName)
		if strings.Contains(sn, stateUpper) || strings.Contains(stateUpper, sn) {
			return m
		}
	}
	return candidates[0]
}

// FetchMandi resolves a live Agmarknet record's market against the catalog.
//
// Lookup order: exact "MARKET|STATE" compound key, exact market name, then a
// scan over same-state mandis comparing APMC-stripped base names in either
// containment direction.
func FetchMandi(marketName, stateName string, idx *MandiIndex) *model.Mandi {
	marketUpper := strings.ToUpper(strings.TrimSpace(marketName))
	stateUpper := strings.ToUpper(strings.TrimSpace(stateName))

	if m, ok := idx.byNameState[marketUpper+"|"+stateUpper]; ok {
		return m
	}
	if m, ok := idx.byName[marketUpper]; ok {
		return m
	}

	marketBase := baseName(marketUpper)
	for i := range idx.ordered {
		m := &idx.ordered[i]
		if strings.ToUpper(m.StateName) != stateUpper {
			continue
		}
		base := baseName(m.Name)
		if strings.Contains(base, marketBase) || strings.Contains(marketBase, base) {
			return m
		}
	}
	return nil
}
