package nearby

import (
	"testing"

	"shop_companion/internal/shopapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gangnam = Point{Latitude: 37.4979, Longitude: 127.0276}

func TestDistance(t *testing.T) {
	assert.Zero(t, Distance(gangnam, gangnam))

	// Gangnam station to Seoul station is roughly 8 km.
	seoul := Point{Latitude: 37.5547, Longitude: 126.9707}
	assert.InDelta(t, 8100, Distance(gangnam, seoul), 600)
	assert.InDelta(t, Distance(gangnam, seoul), Distance(seoul, gangnam), 1e-6)
}

func TestRank(t *testing.T) {
	stores := []shopapi.Store{
		{ID: "far", Latitude: 37.5547, Longitude: 126.9707},
		{ID: "here-a", Latitude: gangnam.Latitude, Longitude: gangnam.Longitude},
		{ID: "near", Latitude: 37.5009, Longitude: 127.0276},
		{ID: "here-b", Latitude: gangnam.Latitude, Longitude: gangnam.Longitude},
	}

	got := Rank(stores, gangnam)

	require.Len(t, got, 4)
	ids := []string{got[0].Store.ID, got[1].Store.ID, got[2].Store.ID, got[3].Store.ID}
	assert.Equal(t, []string{"here-a", "here-b", "near", "far"}, ids)
	assert.Equal(t, "0m", got[0].DistanceText)
	assert.Equal(t, "334m", got[2].DistanceText)
	assert.Contains(t, got[3].DistanceText, "km")
}

func TestWithin(t *testing.T) {
	listings := []Listing{{DistanceMeters: 100}, {DistanceMeters: 900}, {DistanceMeters: 1500}}

	assert.Len(t, Within(listings, 1000), 2)
	assert.Len(t, Within(listings, 0), 3)
	assert.Empty(t, Within(listings, 50))
}

func TestMarkers(t *testing.T) {
	listings := Rank([]shopapi.Store{{ID: "S1", Name: "강남점", Address: "서울 강남구", Latitude: 37.5009, Longitude: 127.0276}}, gangnam)

	markers := Markers(listings)

	require.Len(t, markers, 1)
	assert.Equal(t, "S1", markers[0].ID)
	assert.Equal(t, "강남점", markers[0].Name)
	assert.Equal(t, "서울 강남구", markers[0].Address)
	assert.Equal(t, "334m", markers[0].Distance)
	assert.Empty(t, Markers(nil))
}
