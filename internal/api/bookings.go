package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studycollab/collab-back/internal/db"
	"github.com/studycollab/collab-back/internal/models"
)

type CreateBookingRequest struct {
	SessionID     uint   `json:"sessionId" binding:"required"`
	TransactionID string `json:"transactionId"`
}

// CreateBooking godoc
// @Summary      Book a study session
// @Description  Free sessions book directly; paid sessions need a completed payment.
// @Description  A duplicate (session, student) booking returns 409.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body  CreateBookingRequest  true  "Booking info"
// @Success      201   {object} map[string]interface{}
// @Failure      400   {object} map[string]string
// @Failure      409   {object} map[string]string
// @Security     BearerAuth
// @Router       /booked-sessions [post]
func CreateBooking(c *gin.Context) {
	email := c.GetString("email")

	var req CreateBookingRequest
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

	booking := models.BookedSession{
		SessionID:    session.ID,
		SessionTitle: session.Title,
		TutorEmail:   session.TutorEmail,
		StudentEmail: email,
	}
	if session.RegistrationFee > 0 {
		if req.TransactionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment required for paid session"})
			return
		}
		booking.PaymentStatus = models.PaymentPaid
		booking.TransactionID = req.TransactionID
	} else {
		booking.PaymentStatus = models.PaymentPaid
	}

	if err := db.CreateBooking(c.Request.Context(), &booking); err != nil {
		if errors.Is(err, db.ErrAlreadyBooked) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already booked"})
			return
		}
		zap.S().Errorw("failed to create booking", "session", session.ID, "student", email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"insertedId": booking.ID, "booking": booking})
}

// ListBookings godoc
// @Summary      List bookings
// @Description  With email, lists the student's bookings. With sessionId and
// @Description  studentEmail, returns that single booking (404 when absent) —
// @Description  the pre-payment duplicate check.
// @Tags         bookings
// @Produce      json
// @Param        email         query  string  false  "Student email"
// @Param        sessionId     query  string  false  "Session ID"
// @Param        studentEmail  query  string  false  "Student email for the single lookup"
// @Success      200 {array} models.BookedSession
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /booked-sessions [get]
func ListBookings(c *gin.Context) {
	email := c.GetString("email")

	sessionID := c.Query("sessionId")
	studentEmail := c.Query("studentEmail")
	if sessionID != "" && studentEmail != "" {
		if studentEmail != email {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		booking, err := db.GetBooking(c.Request.Context(), sessionID, studentEmail)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
			return
		}
		c.JSON(http.StatusOK, booking)
		return
	}

	queryEmail := c.DefaultQuery("email", email)
	if queryEmail != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	bookings, err := db.ListBookingsByEmail(c.Request.Context(), queryEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}
