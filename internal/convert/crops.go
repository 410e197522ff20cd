package convert

import (
	"strconv"
	"strings"

	"github.com/krishimandi/mandi-data/internal/model"
	"github.com/krishimandi/mandi-data/internal/slug"
)

// commodityGroups maps the raw taxonomy's cmdt_group_id to a group name.
// Unknown group ids fall back to "Others".
var commodityGroups = map[int]string{
	1:  "Cereals",
	2:  "Pulses",
	3:  "Oilseeds",
	4:  "Fibers",
	5:  "Fruits",
	6:  "Vegetables",
	7:  "Spices",
	8:  "Nuts",
	9:  "Plantation Crops",
	10: "Others",
	11: "Medicinal & Aromatic",
	12: "Minor Forest Produce",
	13: "Livestock",
	14: "Flowers",
	15: "Oils & Fats",
}

// CommodityGroup returns the group name for a raw group id.
func CommodityGroup(groupID int) string {
	if g, ok := commodityGroups[groupID]; ok {
		return g
	}
	return "Others"
}

// Crops converts the raw commodity taxonomy into the crop catalog. Ids are
// name slugs; when two commodities slug identically the later one gets its
// source id appended.
func Crops(dump *RawDump) ([]model.Crop, *Report) {
	report := NewReport()
	registry := slug.NewRegistry()

	crops := make([]model.Crop, 0, len(dump.Data.CmdtData))
	for _, c := range dump.Data.CmdtData {
		id := registry.Claim(slug.Make(c.CmdtName), strconv.Itoa(c.CmdtID))
		crops = append(crops, model.Crop{
			ID:             id,
			Name:           strings.TrimSpace(strings.ToUpper(c.CmdtName)),
			CommodityGroup: CommodityGroup(c.CmdtGroupID),
			SourceID:       c.CmdtID,
		})
	}

	report.Converted = len(crops)
	report.Duplicates = registry.Duplicates()
	return crops, report
}

// GroupCounts tallies crops per commodity group, for the run summary.
func GroupCounts(crops []model.Crop) map[string]int {
	counts := make(map[string]int)
	for _, c := range crops {
		counts[c.CommodityGroup]++
	}
	return counts
}
