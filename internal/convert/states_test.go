package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishimandi/mandi-data/internal/config"
)

func intp(n int) *int { return &n }

func geographyFixture(codes StateCodeMap) (*RawDump, *Geography) {
	dump := &RawDump{}
	dump.Data.StateData = []RawState{
		{StateID: 1, StateName: "Maharashtra"},
		{StateID: 2, StateName: "Kerala"},
		{StateID: config.SentinelStateID, StateName: "ALL"},
	}
	dump.Data.DistrictData = []RawDistrict{
		{ID: 10, DistrictName: "Nashik", StateID: intp(1)},
		{ID: 11, DistrictName: "Pune", StateID: intp(1)},
		{ID: 12, DistrictName: "Thrissur", StateID: intp(2)},
		{ID: 13, DistrictName: "Orphan", StateID: nil},
		{ID: config.SentinelDistrictID, DistrictName: "ALL", StateID: intp(1)},
	}
	return dump, NewGeography(dump, codes)
}

func TestStatesConversion(t *testing.T) {
	codes := StateCodeMap{"Maharashtra": "MH", "Kerala": "KL"}
	_, geo := geographyFixture(codes)

	states, report, err := States(geo, Options{})
	require.NoError(t, err)
	require.Len(t, states, 2)

	mh := states[0]
	assert.Equal(t, "MH", mh.ID)
	assert.Equal(t, "maharashtra", mh.Name)
	require.Len(t, mh.Districts, 2)
	assert.Equal(t, "nashik", mh.Districts[0].ID)
	assert.Equal(t, "nashik", mh.Districts[0].Name)

	kl := states[1]
	assert.Equal(t, "KL", kl.ID)
	require.Len(t, kl.Districts, 1)
	assert.Equal(t, "thrissur", kl.Districts[0].ID)

	assert.Equal(t, 2, report.Converted)
	assert.Equal(t, 3, DistrictCount(states))
}

func TestStatesSentinelAndOrphanFiltered(t *testing.T) {
	codes := StateCodeMap{"Maharashtra": "MH", "Kerala": "KL"}
	_, geo := geographyFixture(codes)

	states, _, err := States(geo, Options{})
	require.NoError(t, err)
	for _, s := range states {
		assert.NotEqual(t, "all", s.Name)
		for _, d := range s.Districts {
			assert.NotEqual(t, "orphan", d.Name)
			assert.NotEqual(t, "all", d.Name)
		}
	}
}

func TestGeographyDistrictStateID(t *testing.T) {
	_, geo := geographyFixture(StateCodeMap{"Maharashtra": "MH", "Kerala": "KL"})

	sid, ok := geo.DistrictStateID(10)
	require.True(t, ok)
	assert.Equal(t, 1, sid)

	_, ok = geo.DistrictStateID(13) // null state in the dump
	assert.False(t, ok)
}

func TestStatesMissingCodeMapEntryFailsStrict(t *testing.T) {
	codes := StateCodeMap{"Maharashtra": "MH"} // Kerala missing
	_, geo := geographyFixture(codes)

	states, report, err := States(geo, Options{})
	require.Error(t, err)
	require.Len(t, report.Rejected, 1)
	assert.Contains(t, report.Rejected[0], "Kerala")
	// The mapped state is still converted so the report shows full damage.
	require.Len(t, states, 1)
	assert.Equal(t, "MH", states[0].ID)
}

func TestStatesMissingCodeMapEntrySkippedWhenAllowed(t *testing.T) {
	codes := StateCodeMap{"Maharashtra": "MH"}
	_, geo := geographyFixture(codes)

	states, report, err := States(geo, Options{AllowUnmapped: true})
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Len(t, report.Rejected, 1)
}

func TestStatesEmptyDistrictsIsEmptySlice(t *testing.T) {
	dump := &RawDump{}
	dump.Data.StateData = []RawState{{StateID: 3, StateName: "Goa"}}
	geo := NewGeography(dump, StateCodeMap{"Goa": "GA"})

	states, _, err := States(geo, Options{})
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.NotNil(t, states[0].Districts)
	assert.Empty(t, states[0].Districts)
}
