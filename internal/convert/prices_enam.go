package convert

import (
	"github.com/krishimandi/mandi-data/internal/jsonio"
	"github.com/krishimandi/mandi-data/internal/match"
	"github.com/krishimandi/mandi-data/internal/model"
)

// ENAMDump is the wrapper shape of an eNAM batch export.
type ENAMDump struct {
	Data []ENAMRecord `json:"data"`
}

// ENAMRecord is one raw price observation from an eNAM export.
type ENAMRecord struct {
	Commodity        string            `json:"commodity"`
	APMC             string            `json:"apmc"`
	State            string            `json:"state"`
	MinPrice         jsonio.FlexString `json:"min_price"`
	MaxPrice         jsonio.FlexString `json:"max_price"`
	ModalPrice       jsonio.FlexString `json:"modal_price"`
	CommodityUom     string            `json:"Commodity_Uom"`
	CommodityArrival jsonio.FlexString `json:"commodity_arrivals"`
	CreatedAt        string            `json:"created_at"`
	ID               jsonio.FlexString `json:"id"`
}

// ENAMPrices resolves each eNAM observation against the crop and mandi
// catalogs and emits a price record for every observation where both
// resolved. Unresolved observations are dropped and their labels recorded in
// the report; that audit trail is a deliverable of the stage, operators use
// it to patch reference data between runs.
func ENAMPrices(records []ENAMRecord, crops *match.CropIndex, mandis *match.MandiIndex) ([]model.Price, *Report) {
	report := NewReport()
	prices := make([]model.Price, 0, len(records))

	for _, rec := range records {
		crop := match.Crop(match.ENAMCropCascade, rec.Commodity, crops)
		mandi := match.ENAMMandi(rec.APMC, rec.State, mandis)

		if crop == nil {
			report.AddUnmatchedCrop(rec.Commodity)
		}
		if mandi == nil {
			report.AddUnmatchedMandi(rec.APMC + " (" + rec.State + ")")
		}
		if crop == nil || mandi == nil {
			continue
		}

		unit := rec.CommodityUom
		if unit == "" {
			unit = "Qui"
		}

		report.Matched++
		prices = append(prices, model.Price{
			CropID:       crop.ID,
			CropName:     crop.Name,
			MandiID:      mandi.ID,
			MandiName:    mandi.Name,
			StateID:      mandi.StateID,
			StateName:    mandi.StateName,
			DistrictID:   mandi.DistrictID,
			DistrictName: mandi.DistrictName,
			Date:         rec.CreatedAt,
			MinPrice:     ParseIntOrZero(rec.MinPrice.String()),
			MaxPrice:     ParseIntOrZero(rec.MaxPrice.String()),
			ModalPrice:   ParseIntOrZero(rec.ModalPrice.String()),
			Unit:         unit,
			Arrival:      ParseArrival(rec.CommodityArrival.String()),
			Source:       model.SourceENAM,
			SourceID:     rec.ID.String(),
		})
	}

	report.Converted = len(prices)
	return prices, report
}
