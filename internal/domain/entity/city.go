package entity

// City is a registry entry: a named place with fixed coordinates. The
// registry is loaded once at startup and never mutated afterwards.
type City struct {
	Name      string  `json:"name" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}
