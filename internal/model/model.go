// Package model defines the canonical entity shapes the converters emit and
// the seeder loads. These structs are the contract between pipeline stages:
// converters write them as JSON files, the seeder reads those files and bulk
// inserts into MongoDB. Field names match the serving API's collections.
package model

// Crop is a catalog entry for one commodity. ID is a slug derived from the
// name, disambiguated with SourceID when two source names collapse to the
// same slug.
type Crop struct {
	ID             string `json:"_id" bson:"_id"`
	Name           string `json:"name" bson:"name"`
	CommodityGroup string `json:"commodityGroup" bson:"commodityGroup"`
	SourceID       int    `json:"sourceId" bson:"sourceId"`
}

// District is a child record of State. ID is a slug of the district name,
// unique only within its owning state.
type District struct {
	ID   string `json:"_id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// State is a catalog entry keyed by its external two-letter code from the
// state code map.
type State struct {
	ID        string     `json:"_id" bson:"_id"`
	Name      string     `json:"name" bson:"name"`
	Districts []District `json:"districts" bson:"districts"`
}

// Mandi is a market catalog entry. ID is the composite
// "statecode-districtslug-marketslug" slug, disambiguated with SourceMandiID
// on collision. State and district names are denormalized for downstream
// consumers.
type Mandi struct {
	ID            string `json:"_id" bson:"_id"`
	Name          string `json:"name" bson:"name"`
	StateID       string `json:"stateId" bson:"stateId"`
	StateName     string `json:"stateName" bson:"stateName"`
	DistrictID    string `json:"districtId" bson:"districtId"`
	DistrictName  string `json:"districtName" bson:"districtName"`
	SourceMandiID string `json:"sourceMandiId" bson:"sourceMandiId"`
}

// Price is one resolved price observation. A Price only exists when both its
// crop and mandi were matched against the catalogs; everything except the
// numeric fields and date is denormalized from the matched entities.
type Price struct {
	CropID       string `json:"cropId" bson:"cropId"`
	CropName     string `json:"cropName" bson:"cropName"`
	MandiID      string `json:"mandiId" bson:"mandiId"`
	MandiName    string `json:"mandiName" bson:"mandiName"`
	StateID      string `json:"stateId" bson:"stateId"`
	StateName    string `json:"stateName" bson:"stateName"`
	DistrictID   string `json:"districtId" bson:"districtId"`
	DistrictName string `json:"districtName" bson:"districtName"`
	Date         string `json:"date" bson:"date"`
	MinPrice     int    `json:"minPrice" bson:"minPrice"`
	MaxPrice     int    `json:"maxPrice" bson:"maxPrice"`
	ModalPrice   int    `json:"modalPrice" bson:"modalPrice"`
	Unit         string `json:"unit" bson:"unit"`
	Arrival      *int   `json:"arrival" bson:"arrival"`
	Source       string `json:"source" bson:"source"`
	SourceID     string `json:"sourceId" bson:"sourceId"`
}

// Price sources.
const (
	SourceENAM      = "enam"
	SourceAgmarknet = "agmarknet"
)
