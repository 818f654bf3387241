package domain

// Immutable geographic position (longitude, latitude) in WGS84 degrees.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Validate checks the WGS84 degree ranges.
func (c Coordinate) Validate() error {
	if c.Lon < -180 || c.Lon > 180 {
		return &InvalidInputError{Field: "lon", Reason: "must be in [-180, 180]"}
	}
	if c.Lat < -90 || c.Lat > 90 {
		return &InvalidInputError{Field: "lat", Reason: "must be in [-90, 90]"}
	}
	return nil
}

// Return coordinates as [lon, lat] for external solver payload compatibility.
func (c Coordinate) ToList() []float64 { return []float64{c.Lon, c.Lat} }
