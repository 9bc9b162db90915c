// Package nearby orders stores by distance from the user for the store
// finder list and map.
package nearby

import (
	"math"
	"sort"

	"shop_companion/internal/format"
	"shop_companion/internal/mapbridge"
	"shop_companion/internal/shopapi"
)

const earthRadiusMeters = 6371000

type Point struct {
	Latitude  float64
	Longitude float64
}

type Listing struct {
	Store          shopapi.Store
	DistanceMeters float64
	DistanceText   string
}

// Rank sorts stores by distance from origin. Stores at equal distance keep
// the order the API returned them in.
func Rank(stores []shopapi.Store, origin Point) []Listing {
	listings := make([]Listing, 0, len(stores))
	for _, store := range stores {
		meters := Distance(origin, Point{Latitude: store.Latitude, Longitude: store.Longitude})
		listings = append(listings, Listing{
			Store:          store,
			DistanceMeters: meters,
			DistanceText:   format.Distance(meters),
		})
	}

	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].DistanceMeters < listings[j].DistanceMeters
	})
	return listings
}

// Within keeps listings no farther than radius meters. A radius <= 0 keeps
// everything.
func Within(listings []Listing, radius float64) []Listing {
	if radius <= 0 {
		return listings
	}
	var out []Listing
	for _, l := range listings {
		if l.DistanceMeters <= radius {
			out = append(out, l)
		}
	}
	return out
}

func Markers(listings []Listing) []mapbridge.StoreMarker {
	markers := make([]mapbridge.StoreMarker, 0, len(listings))
	for _, l := range listings {
		markers = append(markers, mapbridge.StoreMarker{
			ID:        l.Store.ID,
			Name:      l.Store.Name,
			Latitude:  l.Store.Latitude,
			Longitude: l.Store.Longitude,
			Address:   l.Store.Address,
			Distance:  l.DistanceText,
		})
	}
	return markers
}

// Distance is the great-circle distance in meters (haversine).
func Distance(a, b Point) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := lat2 - lat1
	dLng := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
