// Package convert implements the batch converters that turn raw government
// data dumps into the crop, state, mandi and price catalogs.
//
// Every converter is a pure transform over already-parsed input, so each can
// be tested without touching the filesystem; the cmd layer wires them to the
// JSON files passed between stages.
package convert

import (
	"github.com/krishimandi/mandi-data/internal/jsonio"
)

// RawDump is the combined crops/districts/markets reference export. A single
// dump carries the commodity taxonomy and the full geographic taxonomy.
type RawDump struct {
	Data struct {
		CmdtData     []RawCommodity `json:"cmdt_data"`
		StateData    []RawState     `json:"state_data"`
		DistrictData []RawDistrict  `json:"district_data"`
		MarketData   []RawMarket    `json:"market_data"`
	} `json:"data"`
}

// RawCommodity is one entry of the raw commodity taxonomy.
type RawCommodity struct {
	CmdtID      int    `json:"cmdt_id"`
	CmdtName    string `json:"cmdt_name"`
	CmdtGroupID int    `json:"cmdt_group_id"`
}

// RawState is one entry of the raw state taxonomy.
type RawState struct {
	StateID   int    `json:"state_id"`
	StateName string `json:"state_name"`
}

// RawDistrict is one entry of the raw district taxonomy. StateID is a
// pointer because the dump contains districts with a null state.
type RawDistrict struct {
	ID           int    `json:"id"`
	DistrictName string `json:"district_name"`
	StateID      *int   `json:"state_id"`
}

// RawMarket is one entry of the raw market taxonomy.
type RawMarket struct {
	ID         int    `json:"id"`
	MktName    string `json:"mkt_name"`
	DistrictID int    `json:"district_id"`
	StateID    *int   `json:"state_id"`
}

// StateCodeMap maps a raw state name to its external two-letter code.
type StateCodeMap map[string]string

// LoadRawDump reads and parses a raw taxonomy dump file.
func LoadRawDump(path string) (*RawDump, error) {
	var dump RawDump
	if err := jsonio.Read(path, &dump); err != nil {
		return nil, err
	}
	return &dump, nil
}

// LoadStateCodeMap reads and parses a state code map file.
func LoadStateCodeMap(path string) (StateCodeMap, error) {
	var m StateCodeMap
	if err := jsonio.Read(path, &m); err != nil {
		return nil, err
	}
	return m, nil
}
