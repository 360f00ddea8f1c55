package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawCrossingRecord - one row of the FRA highway-rail crossing inventory.
// The dataset is loosely typed: coordinates and mileposts arrive as strings
// most of the time, numbers occasionally.
type RawCrossingRecord struct {
	Lat      FlexString  `json:"lat"`
	Long     FlexString  `json:"long"`
	Railroad string      `json:"railroad"`
	Milepost *FlexString `json:"milepost,omitempty"`
	StateAb  string      `json:"stateab,omitempty"`
	ObjectID FlexString  `json:"objectid,omitempty"`
	Crossing string      `json:"crossing,omitempty"`
	Street   string      `json:"street,omitempty"`
	CityName string      `json:"cityname,omitempty"`
}

// FlexString keeps the literal text of a JSON string or number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flex string: unsupported value %s", data)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// DecodeCrossingRecords parses a dataset payload (a JSON array of records).
// Rows that do not fit RawCrossingRecord are skipped and counted; only a
// payload that is not an array fails.
func DecodeCrossingRecords(data []byte) ([]RawCrossingRecord, int, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, 0, fmt.Errorf("failed to decode crossing records: %w", err)
	}

	records := make([]RawCrossingRecord, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		var rec RawCrossingRecord
		if err := json.Unmarshal(row, &rec); err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}
