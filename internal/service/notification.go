package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"rideshare/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationDriverAssigned NotificationType = "DRIVER_ASSIGNED"
	NotificationStatusChanged  NotificationType = "STATUS_CHANGED"
	NotificationRideCancelled  NotificationType = "RIDE_CANCELLED"
	NotificationPaymentSuccess NotificationType = "PAYMENT_SUCCESS"
	NotificationPaymentFailed  NotificationType = "PAYMENT_FAILED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - SMS client (Twilio)
	// - WebSocket connections for real-time
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyDriverAssigned notifies the rider that a driver has been assigned.
func (s *NotificationService) NotifyDriverAssigned(ctx context.Context, ride *domain.Ride, driver *domain.Driver) error {
	notification := Notification{
		Type:        NotificationDriverAssigned,
		RecipientID: ride.UserID,
		Title:       "Driver Assigned",
		Message:     fmt.Sprintf("%s is on the way in a %s %s", driver.Name, driver.Car.Color, driver.Car.Model),
		Data: map[string]interface{}{
			"ride_id":     ride.ID,
			"driver_id":   driver.ID,
			"driver_name": driver.Name,
			"plate":       driver.Car.Plate,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyStatusChanged notifies the rider about a ride status change.
func (s *NotificationService) NotifyStatusChanged(ctx context.Context, ride *domain.Ride) error {
	notification := Notification{
		Type:        NotificationStatusChanged,
		RecipientID: ride.UserID,
		Title:       "Ride Update",
		Message:     statusMessage(ride.Status),
		Data: map[string]interface{}{
			"ride_id": ride.ID,
			"status":  string(ride.Status),
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyRideCancelled notifies the assigned driver about a cancellation.
func (s *NotificationService) NotifyRideCancelled(ctx context.Context, ride *domain.Ride) error {
	if ride.DriverID == "" {
		return nil // No one to notify
	}

	notification := Notification{
		Type:        NotificationRideCancelled,
		RecipientID: ride.DriverID,
		Title:       "Ride Cancelled",
		Message:     "The rider has cancelled the ride",
		Data: map[string]interface{}{
			"ride_id": ride.ID,
			"user_id": ride.UserID,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyPaymentResult notifies the rider about a payment outcome.
func (s *NotificationService) NotifyPaymentResult(ctx context.Context, payment *domain.Payment) error {
	notifType := NotificationPaymentSuccess
	title := "Payment Successful"
	message := fmt.Sprintf("Payment of $%.2f was successful", payment.Amount)
	if payment.Status == domain.PaymentStatusFailed {
		notifType = NotificationPaymentFailed
		title = "Payment Failed"
		message = fmt.Sprintf("Payment of $%.2f failed. Please try again.", payment.Amount)
	}

	notification := Notification{
		Type:        notifType,
		RecipientID: payment.UserID,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"payment_id": payment.ID,
			"ride_id":    payment.RideID,
			"amount":     payment.Amount,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

func statusMessage(status domain.RideStatus) string {
	switch status {
	case domain.RideStatusPickingUp:
		return "Your driver is heading to the pickup point"
	case domain.RideStatusArrived:
		return "Your driver has arrived"
	case domain.RideStatusInProgress:
		return "Your trip has started. Enjoy your ride!"
	case domain.RideStatusCompleted:
		return "Your trip is complete"
	default:
		return fmt.Sprintf("Your ride is now %s", status)
	}
}

// send delivers a notification (mock implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	// In a real implementation, this would:
	// 1. Store notification in database
	// 2. Send push notification via FCM/APNS
	// 3. Broadcast via WebSocket for real-time updates

	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)

	return nil
}
