package dto

// Point is a WGS84 coordinate pair as it appears on the wire.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
