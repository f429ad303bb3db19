package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/middleware"
	"rideshare/internal/service"
)

// PaymentHandler handles HTTP requests for payments and payment methods.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ProcessPaymentRequest is the HTTP request body for paying for a ride.
type ProcessPaymentRequest struct {
	RideID string  `json:"ride_id"`
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

// PaymentResponse is the HTTP response body for a payment.
type PaymentResponse struct {
	ID        string `json:"id"`
	RideID    string `json:"ride_id"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ProcessPayment handles POST /v1/payments
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	payment, err := h.paymentService.ProcessPayment(c.Request.Context(), service.ProcessPaymentRequest{
		RideID: req.RideID,
		UserID: middleware.CurrentUserID(c),
		Amount: req.Amount,
		Method: req.Method,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toPaymentResponse(payment))
}

// GetPayment handles GET /v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPaymentResponse(payment))
}

// GetPaymentHistory handles GET /v1/payments
func (h *PaymentHandler) GetPaymentHistory(c *gin.Context) {
	payments, err := h.paymentService.GetPaymentHistory(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, toPaymentResponse(p))
	}
	respondJSON(c, http.StatusOK, gin.H{"payments": resp})
}

// AddPaymentMethodRequest is the HTTP request body for saving a card.
type AddPaymentMethodRequest struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	SetDefault  bool   `json:"set_default,omitempty"`
}

// PaymentMethodResponse is the HTTP response body for a saved method.
type PaymentMethodResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Brand       string `json:"brand"`
	Last4       string `json:"last4"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	IsDefault   bool   `json:"is_default"`
}

// AddPaymentMethod handles POST /v1/payments/methods
func (h *PaymentHandler) AddPaymentMethod(c *gin.Context) {
	var req AddPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	method, err := h.paymentService.AddPaymentMethod(c.Request.Context(), service.AddPaymentMethodRequest{
		UserID:      middleware.CurrentUserID(c),
		CardNumber:  req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		SetDefault:  req.SetDefault,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toPaymentMethodResponse(method))
}

// ListPaymentMethods handles GET /v1/payments/methods
func (h *PaymentHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.paymentService.ListPaymentMethods(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		resp = append(resp, toPaymentMethodResponse(m))
	}
	respondJSON(c, http.StatusOK, gin.H{"methods": resp})
}

// SetDefaultPaymentMethod handles PUT /v1/payments/methods/:id/default
func (h *PaymentHandler) SetDefaultPaymentMethod(c *gin.Context) {
	err := h.paymentService.SetDefaultPaymentMethod(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"message": "default payment method updated"})
}

// RemovePaymentMethod handles DELETE /v1/payments/methods/:id
func (h *PaymentHandler) RemovePaymentMethod(c *gin.Context) {
	err := h.paymentService.RemovePaymentMethod(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"message": "payment method removed"})
}

func toPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		RideID:    p.RideID,
		Amount:    money(p.Amount),
		Method:    p.Method,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func toPaymentMethodResponse(m *domain.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:          m.ID,
		Type:        m.Type,
		Brand:       m.Brand,
		Last4:       m.Last4,
		ExpiryMonth: m.ExpiryMonth,
		ExpiryYear:  m.ExpiryYear,
		IsDefault:   m.IsDefault,
	}
}
