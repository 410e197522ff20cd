package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawDumpWithCommodities(cmdts ...RawCommodity) *RawDump {
	dump := &RawDump{}
	dump.Data.CmdtData = cmdts
	return dump
}

func TestCropsConversion(t *testing.T) {
	dump := rawDumpWithCommodities(
		RawCommodity{CmdtID: 1, CmdtName: "Wheat", CmdtGroupID: 1},
		RawCommodity{CmdtID: 2, CmdtName: "Moong Dal", CmdtGroupID: 2},
		RawCommodity{CmdtID: 3, CmdtName: "Turmeric ", CmdtGroupID: 7},
	)

	crops, report := Crops(dump)
	require.Len(t, crops, 3)

	assert.Equal(t, "wheat", crops[0].ID)
	assert.Equal(t, "WHEAT", crops[0].Name)
	assert.Equal(t, "Cereals", crops[0].CommodityGroup)
	assert.Equal(t, 1, crops[0].SourceID)

	assert.Equal(t, "moong-dal", crops[1].ID)
	assert.Equal(t, "Pulses", crops[1].CommodityGroup)

	assert.Equal(t, "turmeric", crops[2].ID)
	assert.Equal(t, "TURMERIC", crops[2].Name)
	assert.Equal(t, "Spices", crops[2].CommodityGroup)

	assert.Equal(t, 3, report.Converted)
	assert.Empty(t, report.Duplicates)
}

func TestCropsSlugCollision(t *testing.T) {
	dump := rawDumpWithCommodities(
		RawCommodity{CmdtID: 41, CmdtName: "Moong Dal", CmdtGroupID: 2},
		RawCommodity{CmdtID: 97, CmdtName: "Moong-Dal!!", CmdtGroupID: 2},
	)

	crops, report := Crops(dump)
	require.Len(t, crops, 2)

	assert.Equal(t, "moong-dal", crops[0].ID)
	assert.Equal(t, "moong-dal-97", crops[1].ID)
	assert.Equal(t, []string{"moong-dal"}, report.Duplicates)

	seen := map[string]bool{}
	for _, c := range crops {
		assert.False(t, seen[c.ID], "duplicate id %q", c.ID)
		seen[c.ID] = true
	}
}

func TestCropsUnsluggableNameGetsSourceID(t *testing.T) {
	dump := rawDumpWithCommodities(RawCommodity{CmdtID: 41, CmdtName: "!!!", CmdtGroupID: 2})

	crops, report := Crops(dump)
	require.Len(t, crops, 1)
	assert.NotEqual(t, "", crops[0].ID)
	assert.Equal(t, "41", crops[0].ID)
	assert.Len(t, report.Duplicates, 1)
}

func TestCropsUnknownGroupDefaultsToOthers(t *testing.T) {
	dump := rawDumpWithCommodities(RawCommodity{CmdtID: 5, CmdtName: "Mystery", CmdtGroupID: 99})
	crops, _ := Crops(dump)
	require.Len(t, crops, 1)
	assert.Equal(t, "Others", crops[0].CommodityGroup)
}

func TestCropsIdempotent(t *testing.T) {
	dump := rawDumpWithCommodities(
		RawCommodity{CmdtID: 41, CmdtName: "Moong Dal", CmdtGroupID: 2},
		RawCommodity{CmdtID: 97, CmdtName: "Moong-Dal!!", CmdtGroupID: 2},
		RawCommodity{CmdtID: 3, CmdtName: "Turmeric", CmdtGroupID: 7},
	)
	first, _ := Crops(dump)
	second, _ := Crops(dump)
	assert.Equal(t, first, second)
}

func TestGroupCounts(t *testing.T) {
	dump := rawDumpWithCommodities(
		RawCommodity{CmdtID: 1, CmdtName: "Wheat", CmdtGroupID: 1},
		RawCommodity{CmdtID: 2, CmdtName: "Rice", CmdtGroupID: 1},
		RawCommodity{CmdtID: 3, CmdtName: "Rose", CmdtGroupID: 14},
	)
	crops, _ := Crops(dump)
	counts := GroupCounts(crops)
	assert.Equal(t, 2, counts["Cereals"])
	assert.Equal(t, 1, counts["Flowers"])
}
