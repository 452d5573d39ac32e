package api

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studycollab/collab-back/internal/db"
	"github.com/studycollab/collab-back/internal/models"
	"github.com/studycollab/collab-back/internal/payment"
)

type CreatePaymentIntentRequest struct {
	SessionID     uint  `json:"sessionId" binding:"required"`
	AmountInCents int64 `json:"amountInCents" binding:"required,gt=0"`
}

// CreatePaymentIntent godoc
// @Summary      Create a payment intent for a paid session
// @Description  The amount is cross-checked against the session's stored fee.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  CreatePaymentIntentRequest  true  "Payment info"
// @Success      200   {object} map[string]string
// @Failure      400   {object} map[string]string
// @Security     BearerAuth
// @Router       /create-payment-intent [post]
func CreatePaymentIntent(intents payment.IntentCreator) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")

		var req CreatePaymentIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		session, err := db.GetStudySession(c.Request.Context(), formatUint(req.SessionID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session"})
			return
		}
		if session.RegistrationFee <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Session is free"})
			return
		}

		expected := int64(math.Round(session.RegistrationFee * 100))
		if req.AmountInCents != expected {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount does not match the registration fee"})
			return
		}

		clientSecret, err := intents.CreateIntent(c.Request.Context(), req.AmountInCents, formatUint(session.ID), email)
		if err != nil {
			zap.S().Errorw("payment intent creation failed", "session", session.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
	}
}

type RecordPaymentRequest struct {
	SessionID     uint     `json:"sessionId" binding:"required"`
	Amount        float64  `json:"amount" binding:"required,gt=0"`
	TransactionID string   `json:"transactionId" binding:"required"`
	PaymentMethod []string `json:"paymentMethod"`
}

// RecordPayment godoc
// @Summary      Record a completed charge and mark the booking paid
// @Description  The same booking rules apply as for a direct booking:
// @Description  session approved, registration window open, amount equal
// @Description  to the stored fee.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  RecordPaymentRequest  true  "Payment result"
// @Success      201   {object} map[string]interface{}
// @Failure      400   {object} map[string]string
// @Failure      409   {object} map[string]string
// @Security     BearerAuth
// @Router       /payments [post]
func RecordPayment(c *gin.Context) {
	email := c.GetString("email")

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	session, err := db.GetStudySession(c.Request.Context(), formatUint(req.SessionID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session"})
		return
	}
	if session.Status != models.StatusApproved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session is not open for booking"})
		return
	}
	if time.Now().After(session.RegistrationEnd) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registration closed"})
		return
	}
	if session.RegistrationFee <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session is free"})
		return
	}
	if req.Amount != session.RegistrationFee {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount does not match the registration fee"})
		return
	}

	method := ""
	if len(req.PaymentMethod) > 0 {
		method = req.PaymentMethod[0]
	}
	p := models.Payment{
		SessionID:     session.ID,
		Email:         email,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		PaymentMethod: method,
	}
	if err := db.RecordPayment(c.Request.Context(), &p, session.Title, session.TutorEmail); err != nil {
		if errors.Is(err, db.ErrAlreadyBooked) {
			c.JSON(http.StatusConflict, gin.H{"error": "Payment already recorded"})
			return
		}
		zap.S().Errorw("failed to record payment", "session", session.ID, "student", email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"insertedId": p.ID, "transactionId": p.TransactionID})
}

// ListPayments godoc
// @Summary      List the caller's payment history
// @Tags         payments
// @Produce      json
// @Success      200 {array} models.Payment
// @Security     BearerAuth
// @Router       /payments [get]
func ListPayments(c *gin.Context) {
	payments, err := db.ListPaymentsByEmail(c.Request.Context(), c.GetString("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}
