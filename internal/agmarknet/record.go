// Package agmarknet provides the HTTP client and record shapes for the
// Agmarknet daily-price-arrival API.
//
// Agmarknet uses page/limit pagination with no cursor; the last page is
// signaled by an empty or short page. Field names differ between the live
// API and archived exports, so Record carries both spellings of every field
// and exposes accessor methods that pick whichever is present.
package agmarknet

import (
	"encoding/json"

	"github.com/krishimandi/mandi-data/internal/jsonio"
)

// Record is one raw price observation from Agmarknet, live or archived.
type Record struct {
	CommodityID *int `json:"commodity_id"`
	CmdtID      *int `json:"cmdt_id"`

	MarketID jsonio.FlexString `json:"market_id"`
	MktID    jsonio.FlexString `json:"mkt_id"`

	CmdtName  string `json:"cmdt_name"`
	Commodity string `json:"commodity"`

	MarketName string `json:"market_name"`
	APMC       string `json:"apmc"`

	StateName string `json:"state_name"`
	State     string `json:"state"`

	DistrictName string `json:"district_name"`

	ArrivalDate string `json:"arrival_date"`
	Date        string `json:"date"`
	CreatedAt   string `json:"created_at"`

	MinPrice   jsonio.FlexString `json:"min_price"`
	MaxPrice   jsonio.FlexString `json:"max_price"`
	ModelPrice jsonio.FlexString `json:"model_price"`
	ModalPrice jsonio.FlexString `json:"modal_price"`

	UnitNamePrice string `json:"unit_name_price"`
	Unit          string `json:"unit"`

	ArrivalQty jsonio.FlexString `json:"arrival_qty"`
	Arrival    jsonio.FlexString `json:"arrival"`

	ID       jsonio.FlexString `json:"id"`
	RecordID jsonio.FlexString `json:"record_id"`
}

// SourceCommodityID returns the record's commodity taxonomy id, if present.
func (r *Record) SourceCommodityID() (int, bool) {
	if r.CommodityID != nil {
		return *r.CommodityID, true
	}
	if r.CmdtID != nil {
		return *r.CmdtID, true
	}
	return 0, false
}

// SourceMarketID returns the record's market taxonomy id as a string.
func (r *Record) SourceMarketID() string {
	if r.MarketID != "" {
		return string(r.MarketID)
	}
	return string(r.MktID)
}

// CommodityName returns whichever commodity name field is present.
func (r *Record) CommodityName() string {
	if r.CmdtName != "" {
		return r.CmdtName
	}
	return r.Commodity
}

// Market returns whichever market name field is present.
func (r *Record) Market() string {
	if r.MarketName != "" {
		return r.MarketName
	}
	return r.APMC
}

// StateLabel returns whichever state name field is present.
func (r *Record) StateLabel() string {
	if r.StateName != "" {
		return r.StateName
	}
	return r.State
}

// ObservationDate returns the first populated date field.
func (r *Record) ObservationDate() string {
	for _, d := range []string{r.ArrivalDate, r.Date, r.CreatedAt} {
		if d != "" {
			return d
		}
	}
	return ""
}

// ModalField returns the modal price, preferring the live API's misspelled
// model_price key.
func (r *Record) ModalField() string {
	if r.ModelPrice != "" {
		return string(r.ModelPrice)
	}
	return string(r.ModalPrice)
}

// UnitField returns the price unit, defaulting to quintals.
func (r *Record) UnitField() string {
	if r.UnitNamePrice != "" {
		return r.UnitNamePrice
	}
	if r.Unit != "" {
		return r.Unit
	}
	return "Qui"
}

// ArrivalField returns the arrival quantity field.
func (r *Record) ArrivalField() string {
	if r.ArrivalQty != "" {
		return string(r.ArrivalQty)
	}
	return string(r.Arrival)
}

// SourceRecordID returns the record's own id as a string, "" if absent.
func (r *Record) SourceRecordID() string {
	if r.ID != "" {
		return string(r.ID)
	}
	return string(r.RecordID)
}

// ExtractRecords digs the record array out of a response payload. The live
// API nests it as data.records[0].data; archived exports use a flat array or
// one of several conventional wrapper keys.
func ExtractRecords(payload json.RawMessage) ([]Record, error) {
	var nested struct {
		Data struct {
			Records []struct {
				Data []Record `json:"data"`
			} `json:"records"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &nested); err == nil &&
		len(nested.Data.Records) > 0 && nested.Data.Records[0].Data != nil {
		return nested.Data.Records[0].Data, nil
	}

	var flat []Record
	if err := json.Unmarshal(payload, &flat); err == nil {
		return flat, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil, err
	}
	for _, key := range []string{"data", "records", "items", "results", "rows", "list"} {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		var records []Record
		if err := json.Unmarshal(raw, &records); err == nil {
			return records, nil
		}
	}
	return []Record{}, nil
}
