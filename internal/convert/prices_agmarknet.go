package convert

import (
	"strings"

	"github.com/krishimandi/mandi-data/internal/agmarknet"
	"github.com/krishimandi/mandi-data/internal/match"
	"github.com/krishimandi/mandi-data/internal/model"
	"github.com/krishimandi/mandi-data/internal/slug"
)

// CommodityBridge maps the raw taxonomy's commodity ids onto converted
// crops. Built once per run: every raw commodity name is slugged and matched
// against the catalog by slug prefix, absorbing any collision suffixes the
// crop converter appended.
type CommodityBridge map[int]*model.Crop

// NewCommodityBridge builds the cmdt_id -> Crop table from a raw taxonomy
// dump and the converted crop catalog.
func NewCommodityBridge(dump *RawDump, crops *match.CropIndex) CommodityBridge {
	bridge := make(CommodityBridge, len(dump.Data.CmdtData))
	for _, c := range dump.Data.CmdtData {
		if crop := crops.BySlugPrefix(slug.Make(c.CmdtName)); crop != nil {
			bridge[c.CmdtID] = crop
		}
	}
	return bridge
}

// AgmarknetFilePrices converts an archived Agmarknet export. Records carry
// source-system ids, so crops resolve through the commodity bridge and
// mandis through their source market id; records missing either resolution
// are dropped and reported.
func AgmarknetFilePrices(records []agmarknet.Record, bridge CommodityBridge, mandis *match.MandiIndex) ([]model.Price, *Report) {
	report := NewReport()
	prices := make([]model.Price, 0, len(records))

	for i := range records {
		rec := &records[i]

		var crop *model.Crop
		if id, ok := rec.SourceCommodityID(); ok {
			crop = bridge[id]
		}
		mandi := mandis.BySourceID(rec.SourceMarketID())

		if crop == nil {
			report.AddUnmatchedCrop(rec.CommodityName())
		}
		if mandi == nil {
			report.AddUnmatchedMandi(rec.Market() + " (" + rec.StateLabel() + ")")
		}
		if crop == nil || mandi == nil {
			continue
		}

		report.Matched++
		prices = append(prices, buildAgmarknetPrice(rec, crop, mandi, false))
	}

	report.Converted = len(prices)
	return prices, report
}

// AgmarknetLivePrices converts records from the live API, which carry only
// free-text names: crops resolve through the name fallback cascade, mandis
// through the compound name lookups.
func AgmarknetLivePrices(records []agmarknet.Record, crops *match.CropIndex, mandis *match.MandiIndex) ([]model.Price, *Report) {
	report := NewReport()
	prices := make([]model.Price, 0, len(records))

	for i := range records {
		rec := &records[i]

		crop := match.Crop(match.FetchCropCascade, rec.CommodityName(), crops)
		mandi := match.FetchMandi(rec.Market(), rec.StateLabel(), mandis)

		if crop == nil {
			report.AddUnmatchedCrop(rec.CommodityName())
		}
		if mandi == nil {
			report.AddUnmatchedMandi(rec.Market() + " (" + rec.StateLabel() + ")")
		}
		if crop == nil || mandi == nil {
			continue
		}

		report.Matched++
		prices = append(prices, buildAgmarknetPrice(rec, crop, mandi, true))
	}

	report.Converted = len(prices)
	return prices, report
}

// buildAgmarknetPrice assembles one price record from a matched observation.
// Live records use the rounding comma-aware number parser and always carry
// an arrival value; archived exports keep the integer parser with nil
// arrivals on failure, matching the historical dataset.
func buildAgmarknetPrice(rec *agmarknet.Record, crop *model.Crop, mandi *model.Mandi, live bool) model.Price {
	districtName := mandi.DistrictName
	if districtName == "" {
		districtName = strings.ToUpper(rec.DistrictName)
	}

	p := model.Price{
		CropID:       crop.ID,
		CropName:     crop.Name,
		MandiID:      mandi.ID,
		MandiName:    mandi.Name,
		StateID:      mandi.StateID,
		StateName:    mandi.StateName,
		DistrictID:   mandi.DistrictID,
		DistrictName: districtName,
		Date:         NormalizeDate(rec.ObservationDate()),
		Unit:         rec.UnitField(),
		Source:       model.SourceAgmarknet,
		SourceID:     rec.SourceRecordID(),
	}

	if live {
		p.MinPrice = ParseNumber(string(rec.MinPrice))
		p.MaxPrice = ParseNumber(string(rec.MaxPrice))
		p.ModalPrice = ParseNumber(rec.ModalField())
		arrival := ParseNumber(rec.ArrivalField())
		p.Arrival = &arrival
	} else {
		p.MinPrice = ParseIntOrZero(string(rec.MinPrice))
		p.MaxPrice = ParseIntOrZero(string(rec.MaxPrice))
		p.ModalPrice = ParseIntOrZero(rec.ModalField())
		p.Arrival = ParseArrival(rec.ArrivalField())
	}
	return p
}

// AgmarknetDump decodes either wrapper shape of an archived export: a bare
// record array or {"data": [...]}.
type AgmarknetDump struct {
	Records []agmarknet.Record
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *AgmarknetDump) UnmarshalJSON(data []byte) error {
	records, err := agmarknet.ExtractRecords(data)
	if err != nil {
		return err
	}
	d.Records = records
	return nil
}
