package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawCrossingRecord_Unmarshal(t *testing.T) {
	payload := `[
		{"lat":"41.8781","long":"-87.6298","railroad":"BNSF","milepost":"12.5","stateab":"IL","objectid":"77"},
		{"lat":41.9,"long":-87.7,"railroad":"UP","milepost":3,"objectid":78},
		{"lat":"41.9","long":"-87.7","railroad":"CN","milepost":null},
		{"lat":"41.9","long":"-87.7","railroad":"CSX"}
	]`

	var records []RawCrossingRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &records))
	require.Len(t, records, 4)

	assert.Equal(t, FlexString("41.8781"), records[0].Lat)
	require.NotNil(t, records[0].Milepost)
	assert.Equal(t, "12.5", records[0].Milepost.String())
	assert.Equal(t, "IL", records[0].StateAb)

	assert.Equal(t, FlexString("41.9"), records[1].Lat)
	assert.Equal(t, "3", records[1].Milepost.String())
	assert.Equal(t, FlexString("78"), records[1].ObjectID)

	assert.Nil(t, records[2].Milepost, "null milepost stays undefined")
	assert.Nil(t, records[3].Milepost)
}

func TestFlexString_RejectsNonScalars(t *testing.T) {
	var f FlexString
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &f))
}

func TestDecodeCrossingRecords(t *testing.T) {
	good := `{"lat":"41.88","long":"-87.63","railroad":"BNSF","milepost":"12.5"}`

	tests := []struct {
		name string
		bad  string
	}{
		{"bool milepost", `{"lat":"41.9","long":"-87.7","railroad":"UP","milepost":true}`},
		{"numeric railroad", `{"lat":"41.9","long":"-87.7","railroad":42,"milepost":"3"}`},
		{"object lat", `{"lat":{},"long":"-87.7","railroad":"UP","milepost":"3"}`},
		{"array objectid", `{"lat":"41.9","long":"-87.7","railroad":"UP","objectid":[1]}`},
		{"not an object", `"oops"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, skipped, err := DecodeCrossingRecords([]byte("[" + good + "," + tt.bad + "]"))
			require.NoError(t, err)
			assert.Equal(t, 1, skipped)
			require.Len(t, records, 1)
			assert.Equal(t, "BNSF", records[0].Railroad)
			assert.Equal(t, "12.5", records[0].Milepost.String())
		})
	}

	t.Run("clean payload", func(t *testing.T) {
		records, skipped, err := DecodeCrossingRecords([]byte("[" + good + "," + good + "]"))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		assert.Len(t, records, 2)
	})

	t.Run("payload is not an array", func(t *testing.T) {
		_, _, err := DecodeCrossingRecords([]byte(`{"not":"an array"}`))
		assert.Error(t, err)
	})
}
