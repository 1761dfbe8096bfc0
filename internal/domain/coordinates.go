package domain

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64 `json:"lon" yaml:"lon"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// A named network location. Index positions in a travel-time matrix follow
// the order in which locations are configured.
type Location struct {
	Name        string      `json:"name" yaml:"name"`
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates"`
}
