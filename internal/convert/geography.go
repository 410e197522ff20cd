package convert

import (
	"github.com/krishimandi/mandi-data/internal/config"
)

// Geography is the shared geographic index over a raw dump: one parse of
// state_data and district_data used by both the state and mandi converters,
// so the two stages cannot drift apart in how they read the same input.
//
// Sentinel ids are filtered during construction and never appear in the
// lookup tables.
type Geography struct {
	states    []RawState    // sentinel-filtered, source order
	districts []RawDistrict // sentinel-filtered, source order

	stateCode       map[int]string
	stateName       map[int]string
	districtName    map[int]string
	districtStateID map[int]int

	unmappedStates []string // state names absent from the code map, source order
}

// NewGeography builds the geographic index from a raw dump and the external
// state code map. States whose name has no code map entry are indexed by
// name only and reported via UnmappedStates.
func NewGeography(dump *RawDump, codes StateCodeMap) *Geography {
	g := &Geography{
		stateCode:       make(map[int]string),
		stateName:       make(map[int]string),
		districtName:    make(map[int]string),
		districtStateID: make(map[int]int),
	}

	for _, s := range dump.Data.StateData {
		if s.StateID == config.SentinelStateID {
			continue
		}
		g.states = append(g.states, s)
		g.stateName[s.StateID] = s.StateName
		if code, ok := codes[s.StateName]; ok {
			g.stateCode[s.StateID] = code
		} else {
			g.unmappedStates = append(g.unmappedStates, s.StateName)
		}
	}

	for _, d := range dump.Data.DistrictData {
		if d.ID == config.SentinelDistrictID {
			continue
		}
		g.districts = append(g.districts, d)
		g.districtName[d.ID] = d.DistrictName
		if d.StateID != nil {
			g.districtStateID[d.ID] = *d.StateID
		}
	}

	return g
}

// States returns the sentinel-filtered states in source order.
func (g *Geography) States() []RawState { return g.states }

// Districts returns the sentinel-filtered districts in source order.
func (g *Geography) Districts() []RawDistrict { return g.districts }

// StateCode returns the external code for a raw state id.
func (g *Geography) StateCode(stateID int) (string, bool) {
	code, ok := g.stateCode[stateID]
	return code, ok
}

// StateName returns the raw name for a raw state id.
func (g *Geography) StateName(stateID int) (string, bool) {
	name, ok := g.stateName[stateID]
	return name, ok
}

// DistrictName returns the raw name for a raw district id.
func (g *Geography) DistrictName(districtID int) (string, bool) {
	name, ok := g.districtName[districtID]
	return name, ok
}

// DistrictStateID returns the owning state id for a raw district id. A
// district with a null state in the dump has no entry.
func (g *Geography) DistrictStateID(districtID int) (int, bool) {
	sid, ok := g.districtStateID[districtID]
	return sid, ok
}

// UnmappedStates returns the state names that have no code map entry.
func (g *Geography) UnmappedStates() []string { return g.unmappedStates }
