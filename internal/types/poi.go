package types

// LatLon is a bare coordinate pair as Overpass encodes way/relation centers.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OverpassElement is one raw element from an Overpass interpreter response.
// Nodes carry lat/lon directly; ways and relations only carry a center point
// when the query asks for "out center".
type OverpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *LatLon           `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// RawPointOfInterest is a normalized, deduplicated upstream element: named,
// located, and still carrying its raw OSM tags for classification.
type RawPointOfInterest struct {
	ExternalID int64             `json:"external_id"`
	Name       string            `json:"name"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Tags       map[string]string `json:"tags"`
}
