package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/krishimandi/mandi-data/internal/config"
	"github.com/krishimandi/mandi-data/internal/model"
	"github.com/krishimandi/mandi-data/internal/slug"
)

// Mandis converts the raw market taxonomy into the mandi catalog. Each mandi
// id is the composite "statecode-districtslug-marketslug" slug, with the
// source market id appended on collision.
//
// Markets whose state has no code map entry, or whose district is unknown,
// are rejected and reported under strict options; with AllowUnmapped they
// keep the legacy placeholder values instead.
func Mandis(dump *RawDump, geo *Geography, opts Options) ([]model.Mandi, *Report, error) {
	report := NewReport()
	registry := slug.NewRegistry()

	mandis := make([]model.Mandi, 0, len(dump.Data.MarketData))
	for _, m := range dump.Data.MarketData {
		if m.ID == config.SentinelMarketID || m.StateID == nil {
			continue
		}

		stateCode, codeOK := geo.StateCode(*m.StateID)
		stateName, nameOK := geo.StateName(*m.StateID)
		districtName, districtOK := geo.DistrictName(m.DistrictID)

		if !codeOK || !nameOK {
			report.AddRejectedf("market %q (id %d): state id %d not in code map", m.MktName, m.ID, *m.StateID)
			if !opts.AllowUnmapped {
				continue
			}
			stateCode = PlaceholderStateCode
			if !nameOK {
				stateName = PlaceholderName
			}
		}
		if !districtOK {
			report.AddRejectedf("market %q (id %d): unknown district id %d", m.MktName, m.ID, m.DistrictID)
			if !opts.AllowUnmapped {
				continue
			}
			districtName = PlaceholderName
		}

		districtSlug := slug.MakeN(districtName, slug.DistrictMaxLen)
		marketSlug := slug.Make(m.MktName)
		candidate := fmt.Sprintf("%s-%s-%s", strings.ToLower(stateCode), districtSlug, marketSlug)
		sourceID := strconv.Itoa(m.ID)

		mandis = append(mandis, model.Mandi{
			ID:            registry.Claim(candidate, sourceID),
			Name:          strings.TrimSpace(strings.ToUpper(m.MktName)),
			StateID:       stateCode,
			StateName:     strings.ToUpper(stateName),
			DistrictID:    districtSlug,
			DistrictName:  strings.ToUpper(districtName),
			SourceMandiID: sourceID,
		})
	}

	report.Converted = len(mandis)
	report.Duplicates = registry.Duplicates()
	if len(report.Rejected) > 0 && !opts.AllowUnmapped {
		return mandis, report, fmt.Errorf("%d markets rejected for unmapped geography", len(report.Rejected))
	}
	return mandis, report, nil
}
