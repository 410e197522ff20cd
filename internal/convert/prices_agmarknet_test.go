package convert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishimandi/mandi-data/internal/agmarknet"
	"github.com/krishimandi/mandi-data/internal/match"
	"github.com/krishimandi/mandi-data/internal/model"
)

func agmarknetCatalogs() (*match.CropIndex, *match.MandiIndex) {
	crops := match.NewCropIndex([]model.Crop{
		{ID: "onion", Name: "ONION", SourceID: 12},
		{ID: "moong-dal-97", Name: "MOONG DAL", SourceID: 97},
	})
	mandis := match.NewMandiIndex([]model.Mandi{
		{
			ID: "mh-nashik-lasalgaon", Name: "LASALGAON",
			StateID: "MH", StateName: "MAHARASHTRA",
			DistrictID: "nashik", DistrictName: "NASHIK",
			SourceMandiID: "500",
		},
	})
	return crops, mandis
}

func TestCommodityBridge(t *testing.T) {
	crops, _ := agmarknetCatalogs()
	dump := &RawDump{}
	dump.Data.CmdtData = []RawCommodity{
		{CmdtID: 12, CmdtName: "Onion"},
		{CmdtID: 97, CmdtName: "Moong Dal"}, // catalog id carries a collision suffix
		{CmdtID: 55, CmdtName: "Unknowncrop"},
	}

	bridge := NewCommodityBridge(dump, crops)
	require.NotNil(t, bridge[12])
	assert.Equal(t, "onion", bridge[12].ID)
	require.NotNil(t, bridge[97])
	assert.Equal(t, "moong-dal-97", bridge[97].ID)
	assert.Nil(t, bridge[55])
}

func TestAgmarknetFilePrices(t *testing.T) {
	crops, mandis := agmarknetCatalogs()
	dump := &RawDump{}
	dump.Data.CmdtData = []RawCommodity{{CmdtID: 12, CmdtName: "Onion"}}
	bridge := NewCommodityBridge(dump, crops)

	cmdtID := 12
	records := []agmarknet.Record{{
		CommodityID: &cmdtID,
		MarketID:    "500",
		ArrivalDate: "2026-02-10",
		MinPrice:    "1200",
		MaxPrice:    "1800",
		ModalPrice:  "1500",
		Unit:        "Qui",
		Arrival:     "75",
		ID:          "9001",
	}}

	prices, report := AgmarknetFilePrices(records, bridge, mandis)
	require.Len(t, prices, 1)

	p := prices[0]
	assert.Equal(t, "onion", p.CropID)
	assert.Equal(t, "mh-nashik-lasalgaon", p.MandiID)
	assert.Equal(t, "2026-02-10", p.Date)
	assert.Equal(t, 1500, p.ModalPrice)
	require.NotNil(t, p.Arrival)
	assert.Equal(t, 75, *p.Arrival)
	assert.Equal(t, model.SourceAgmarknet, p.Source)
	assert.Equal(t, "9001", p.SourceID)
	assert.Equal(t, 1, report.Matched)
}

func TestAgmarknetFilePricesUnknownIDsDropped(t *testing.T) {
	crops, mandis := agmarknetCatalogs()
	bridge := NewCommodityBridge(&RawDump{}, crops)

	unknown := 999
	records := []agmarknet.Record{{
		CommodityID: &unknown,
		MarketID:    "888",
		Commodity:   "Mystery",
		APMC:        "Ghost Market",
		State:       "Nowhere",
	}}

	prices, report := AgmarknetFilePrices(records, bridge, mandis)
	assert.Empty(t, prices)
	assert.Equal(t, []string{"Mystery"}, report.UnmatchedCrops)
	assert.Equal(t, []string{"Ghost Market (Nowhere)"}, report.UnmatchedMandis)
}

func TestAgmarknetLivePrices(t *testing.T) {
	crops, mandis := agmarknetCatalogs()
	records := []agmarknet.Record{{
		CmdtName:      "Onion",
		MarketName:    "LASALGAON",
		StateName:     "MAHARASHTRA",
		ArrivalDate:   "10-02-2026",
		MinPrice:      "1,200",
		MaxPrice:      "1,800.4",
		ModelPrice:    "1500",
		UnitNamePrice: "Quintal",
		ArrivalQty:    "90.6",
		RecordID:      "777",
	}}

	prices, report := AgmarknetLivePrices(records, crops, mandis)
	require.Len(t, prices, 1)

	p := prices[0]
	assert.Equal(t, "onion", p.CropID)
	assert.Equal(t, "2026-02-10", p.Date, "DD-MM-YYYY must be rewritten")
	assert.Equal(t, 1200, p.MinPrice)
	assert.Equal(t, 1800, p.MaxPrice)
	assert.Equal(t, 1500, p.ModalPrice)
	assert.Equal(t, "Quintal", p.Unit)
	require.NotNil(t, p.Arrival)
	assert.Equal(t, 91, *p.Arrival)
	assert.Equal(t, "777", p.SourceID)
	assert.Equal(t, 1, report.Matched)
}

func TestAgmarknetDumpDecodesBothShapes(t *testing.T) {
	flat := []byte(`[{"commodity_id": 12, "market_id": "500"}]`)
	wrapped := []byte(`{"data": [{"commodity_id": 12, "market_id": 500}]}`)

	var a, b AgmarknetDump
	require.NoError(t, json.Unmarshal(flat, &a))
	require.NoError(t, json.Unmarshal(wrapped, &b))
	require.Len(t, a.Records, 1)
	require.Len(t, b.Records, 1)
	assert.Equal(t, "500", a.Records[0].SourceMarketID())
	assert.Equal(t, "500", b.Records[0].SourceMarketID())
}
