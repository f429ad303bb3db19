package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

// PSP is the interface for a Payment Service Provider.
type PSP interface {
	Charge(ctx context.Context, amount float64, method string) (bool, error)
}

// MockPSP is a mock implementation of PSP for testing.
type MockPSP struct{}

// NewMockPSP creates a new mock PSP.
func NewMockPSP() *MockPSP {
	return &MockPSP{}
}

// Charge simulates a payment charge. Always succeeds.
func (p *MockPSP) Charge(ctx context.Context, amount float64, method string) (bool, error) {
	return true, nil
}

// PaymentService handles ride payments and saved payment methods.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	methodRepo  repository.PaymentMethodRepository
	rideRepo    repository.RideRepository
	psp         PSP
	notifier    *NotificationService     // optional
	lockStore   redis.LockStoreInterface // optional
}

// NewPaymentService creates a new PaymentService. lockStore and notifier
// may be nil.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	methodRepo repository.PaymentMethodRepository,
	rideRepo repository.RideRepository,
	psp PSP,
	notifier *NotificationService,
	lockStore redis.LockStoreInterface,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		methodRepo:  methodRepo,
		rideRepo:    rideRepo,
		psp:         psp,
		notifier:    notifier,
		lockStore:   lockStore,
	}
}

// ProcessPaymentRequest contains the parameters for paying for a ride.
type ProcessPaymentRequest struct {
	RideID string
	UserID string
	Amount float64
	Method string
}

// ProcessPayment charges the rider for a ride and marks the ride completed
// on success. Only rides that can move to completed are payable; a completed
// ride carries its payment summary and an unpaid one never does. The ride
// read-check-update runs under the same per-ride lock the lifecycle
// mutations use, so a concurrent cancel cannot be overwritten.
func (s *PaymentService) ProcessPayment(ctx context.Context, req ProcessPaymentRequest) (*domain.Payment, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidPaymentAmount
	}
	if req.Method == "" {
		return nil, ErrInvalidPaymentMethod
	}

	var payment *domain.Payment
	err := s.withRideLock(ctx, req.RideID, func() error {
		ride, err := s.rideRepo.GetByID(ctx, req.RideID)
		if err != nil {
			return err
		}
		if ride.UserID != req.UserID {
			return ErrNotRideOwner
		}
		if !ride.Status.CanTransitionTo(domain.RideStatusCompleted) {
			return ErrRideNotPayable
		}

		payment = &domain.Payment{
			ID:        uuid.New().String(),
			RideID:    req.RideID,
			UserID:    req.UserID,
			Amount:    req.Amount,
			Method:    req.Method,
			Status:    domain.PaymentStatusPending,
			CreatedAt: time.Now(),
		}

		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		success, err := s.psp.Charge(ctx, req.Amount, req.Method)
		if err != nil || !success {
			_ = s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentStatusFailed)
			payment.Status = domain.PaymentStatusFailed
			return nil
		}

		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentStatusCompleted); err != nil {
			return err
		}
		payment.Status = domain.PaymentStatusCompleted

		ride.Status = domain.RideStatusCompleted
		ride.Payment = &domain.RidePayment{
			PaymentID: payment.ID,
			Amount:    payment.Amount,
			Method:    payment.Method,
			Status:    payment.Status,
		}
		ride.UpdatedAt = time.Now()
		return s.rideRepo.Update(ctx, ride)
	})
	if err != nil {
		return nil, err
	}

	s.notifyResult(ctx, payment)
	return payment, nil
}

// withRideLock serializes ride mutations with the lifecycle operations when
// a lock store is configured.
func (s *PaymentService) withRideLock(ctx context.Context, rideID string, fn func() error) error {
	if s.lockStore == nil {
		return fn()
	}

	locked, err := s.lockStore.AcquireRideLock(ctx, rideID, rideLockTTL)
	if err != nil {
		return err
	}
	if !locked {
		return ErrRideBusy
	}
	defer s.lockStore.ReleaseRideLock(ctx, rideID)

	return fn()
}

// GetPayment retrieves a payment by ID, ownership-checked.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID, userID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, ErrNotPaymentOwner
	}
	return payment, nil
}

// GetPaymentHistory returns the user's payments, newest first.
func (s *PaymentService) GetPaymentHistory(ctx context.Context, userID string) ([]*domain.Payment, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	payments, err := s.paymentRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	return payments, nil
}

// AddPaymentMethodRequest contains the parameters for saving a card.
type AddPaymentMethodRequest struct {
	UserID      string
	CardNumber  string
	ExpiryMonth int
	ExpiryYear  int
	SetDefault  bool
}

// AddPaymentMethod saves a new card for the user. Only the last four
// digits of the card number are retained.
func (s *PaymentService) AddPaymentMethod(ctx context.Context, req AddPaymentMethodRequest) (*domain.PaymentMethod, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}

	digits := strings.ReplaceAll(req.CardNumber, " ", "")
	if len(digits) < 12 || len(digits) > 19 {
		return nil, ErrInvalidPaymentDetails
	}
	if req.ExpiryMonth < 1 || req.ExpiryMonth > 12 || req.ExpiryYear < time.Now().Year() {
		return nil, ErrInvalidPaymentDetails
	}

	existing, err := s.methodRepo.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	method := &domain.PaymentMethod{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		Type:        "card",
		Brand:       detectCardBrand(digits),
		Last4:       digits[len(digits)-4:],
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		IsDefault:   req.SetDefault || len(existing) == 0,
		CreatedAt:   time.Now(),
	}

	if err := s.methodRepo.Create(ctx, method); err != nil {
		return nil, err
	}

	if method.IsDefault {
		if err := s.methodRepo.SetDefault(ctx, req.UserID, method.ID); err != nil {
			return nil, err
		}
	}
	return method, nil
}

// ListPaymentMethods returns the user's saved payment methods.
func (s *PaymentService) ListPaymentMethods(ctx context.Context, userID string) ([]*domain.PaymentMethod, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.methodRepo.ListByUser(ctx, userID)
}

// SetDefaultPaymentMethod marks one of the user's methods as default.
func (s *PaymentService) SetDefaultPaymentMethod(ctx context.Context, userID, methodID string) error {
	if methodID == "" {
		return ErrInvalidPaymentMethod
	}

	method, err := s.methodRepo.GetByID(ctx, methodID)
	if err != nil {
		return err
	}
	if method.UserID != userID {
		return ErrNotPaymentOwner
	}
	return s.methodRepo.SetDefault(ctx, userID, methodID)
}

// RemovePaymentMethod deletes one of the user's saved methods. If the
// default method is removed the oldest remaining one becomes default.
func (s *PaymentService) RemovePaymentMethod(ctx context.Context, userID, methodID string) error {
	if methodID == "" {
		return ErrInvalidPaymentMethod
	}

	method, err := s.methodRepo.GetByID(ctx, methodID)
	if err != nil {
		return err
	}
	if method.UserID != userID {
		return ErrNotPaymentOwner
	}

	if err := s.methodRepo.Delete(ctx, methodID); err != nil {
		return err
	}

	if method.IsDefault {
		remaining, err := s.methodRepo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			return s.methodRepo.SetDefault(ctx, userID, remaining[0].ID)
		}
	}
	return nil
}

func (s *PaymentService) notifyResult(ctx context.Context, payment *domain.Payment) {
	if s.notifier != nil {
		_ = s.notifier.NotifyPaymentResult(ctx, payment)
	}
}

// detectCardBrand guesses the card network from the leading digits.
func detectCardBrand(digits string) string {
	switch {
	case strings.HasPrefix(digits, "4"):
		return "visa"
	case strings.HasPrefix(digits, "5"):
		return "mastercard"
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return "amex"
	case strings.HasPrefix(digits, "6"):
		return "discover"
	default:
		return "card"
	}
}
