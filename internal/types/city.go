package types

// CityLocation is the resolved geocode for a free-text city query.
// Name carries Nominatim's display name, not the raw user input.
type CityLocation struct {
	Name        string       `json:"name"`
	Lat         float64      `json:"lat"`
	Lon         float64      `json:"lon"`
	BoundingBox *BoundingBox `json:"bounding_box,omitempty"`
}

// BoundingBox keeps Nominatim's ordering: [south, north, west, east].
type BoundingBox struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}
