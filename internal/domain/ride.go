package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusPending        RideStatus = "pending"
	RideStatusDriverAssigned RideStatus = "driver_assigned"
	RideStatusPickingUp      RideStatus = "picking_up"
	RideStatusArrived        RideStatus = "arrived"
	RideStatusInProgress     RideStatus = "in_progress"
	RideStatusCompleted      RideStatus = "completed"
	RideStatusCancelled      RideStatus = "cancelled"
)

// rideTransitions is the allowed forward progression for each status.
// Cancellation is handled separately: every status except completed may
// move to cancelled.
var rideTransitions = map[RideStatus][]RideStatus{
	RideStatusPending:        {RideStatusDriverAssigned},
	RideStatusDriverAssigned: {RideStatusDriverAssigned, RideStatusPickingUp},
	RideStatusPickingUp:      {RideStatusArrived},
	RideStatusArrived:        {RideStatusInProgress},
	RideStatusInProgress:     {RideStatusCompleted},
}

// IsValid reports whether s is a known ride status.
func (s RideStatus) IsValid() bool {
	switch s {
	case RideStatusPending, RideStatusDriverAssigned, RideStatusPickingUp,
		RideStatusArrived, RideStatusInProgress, RideStatusCompleted,
		RideStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s is a terminal status.
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// CanTransitionTo reports whether a ride in status s may move to next.
func (s RideStatus) CanTransitionTo(next RideStatus) bool {
	if next == RideStatusCancelled {
		return s != RideStatusCompleted
	}
	for _, allowed := range rideTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// RideType represents the service tier requested by the rider.
type RideType string

const (
	RideTypeEconomy  RideType = "economy"
	RideTypeStandard RideType = "standard"
	RideTypePremium  RideType = "premium"
)

// IsValid reports whether t is a known ride type.
func (t RideType) IsValid() bool {
	switch t {
	case RideTypeEconomy, RideTypeStandard, RideTypePremium:
		return true
	}
	return false
}

// GeoPoint is a geographic location with a human-readable address.
type GeoPoint struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// RidePayment is the payment summary embedded on a completed ride.
type RidePayment struct {
	PaymentID string
	Amount    float64
	Method    string
	Status    PaymentStatus
}

// RideRating is the rider's rating attached to a ride after completion.
type RideRating struct {
	Value     float64
	Comment   string
	CreatedAt time.Time
}

// Ride represents a ride request in the system.
type Ride struct {
	ID             string
	UserID         string
	DriverID       string // empty until a driver is assigned
	Origin         GeoPoint
	Destination    GeoPoint
	RideType       RideType
	EstimatedPrice float64
	EstimatedTime  int     // minutes, advisory only
	DistanceKm     float64 // planar estimate recorded at request time
	Status         RideStatus
	Payment        *RidePayment
	Rating         *RideRating
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
