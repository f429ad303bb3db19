package service

import "errors"

var (
	// ErrInvalidUserID is returned when the user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidRideID is returned when the ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidDriverID is returned when the driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidOrigin is returned when origin coordinates are missing or out of range.
	ErrInvalidOrigin = errors.New("invalid origin")

	// ErrInvalidDestination is returned when destination coordinates are missing or out of range.
	ErrInvalidDestination = errors.New("invalid destination")

	// ErrInvalidRideType is returned when the ride type is not a known tier.
	ErrInvalidRideType = errors.New("invalid ride type")

	// ErrInvalidEstimatedTime is returned when the estimated time is negative.
	ErrInvalidEstimatedTime = errors.New("invalid estimated time")

	// ErrNotRideOwner is returned when the authenticated user does not own the ride.
	ErrNotRideOwner = errors.New("ride does not belong to user")

	// ErrRideCompleted is returned when trying to cancel a completed ride.
	ErrRideCompleted = errors.New("cannot cancel a completed ride")

	// ErrInvalidRideStatus is returned when a status value is not a known status.
	ErrInvalidRideStatus = errors.New("invalid ride status")

	// ErrInvalidStatusTransition is returned when the requested status is not
	// reachable from the ride's current status.
	ErrInvalidStatusTransition = errors.New("invalid ride status transition")

	// ErrRideNotAssignable is returned when driver assignment is requested on
	// a ride that is past assignment.
	ErrRideNotAssignable = errors.New("ride cannot be assigned in current state")

	// ErrRideBusy is returned when another mutation holds the ride lock.
	ErrRideBusy = errors.New("ride is being modified by another request")

	// ErrNoDriverAvailable is returned when no driver can be matched.
	ErrNoDriverAvailable = errors.New("no driver available")

	// ErrInvalidRating is returned when the rating value is outside 1-5.
	ErrInvalidRating = errors.New("invalid rating value")

	// ErrInvalidPaymentID is returned when the payment ID is empty.
	ErrInvalidPaymentID = errors.New("invalid payment id")

	// ErrInvalidPaymentMethod is returned when the payment method is empty.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidPaymentAmount is returned when the payment amount is not positive.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrInvalidPaymentDetails is returned when required card fields are missing.
	ErrInvalidPaymentDetails = errors.New("invalid payment details")

	// ErrRideNotPayable is returned when paying for a cancelled ride.
	ErrRideNotPayable = errors.New("ride cannot be paid in current state")

	// ErrNotPaymentOwner is returned when the authenticated user does not own the payment.
	ErrNotPaymentOwner = errors.New("payment does not belong to user")

	// ErrMissingCredentials is returned when required auth fields are missing.
	ErrMissingCredentials = errors.New("missing required credentials")

	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login credentials do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when a session token fails verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidLocation is returned when location coordinates are invalid.
	ErrInvalidLocation = errors.New("invalid location")
)
