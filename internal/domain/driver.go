package domain

import "time"

// Vehicle describes the car a driver operates.
type Vehicle struct {
	Model string
	Color string
	Plate string
}

// Coordinates is a bare latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Driver represents a driver in the system.
type Driver struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Rating    float64
	Photo     string
	Car       Vehicle
	Location  Coordinates
	Available bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
