package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/geekhaven/brew-backend/internal/app/model"
	"github.com/geekhaven/brew-backend/internal/app/service"
	apperrors "github.com/geekhaven/brew-backend/internal/errors"
	"github.com/geekhaven/brew-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	reservationService service.ReservationService
}

func NewReservationController(reservationService service.ReservationService) *ReservationController {
	return &ReservationController{
		reservationService: reservationService,
	}
}

type CreateReservationRequest struct {
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	PeopleCount int    `json:"people_count" binding:"required"`
}

// UpdateReservationRequest is a partial update; absent fields keep their value.
type UpdateReservationRequest struct {
	Date        *string                  `json:"date"`
	Time        *string                  `json:"time"`
	PeopleCount *int                     `json:"people_count"`
	Status      *model.ReservationStatus `json:"status"`
}

// respondReservationError maps service errors onto HTTP responses shared by
// the create and update handlers.
func respondReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSlotTaken):
		apperrors.Conflict(c, apperrors.ReservationSlotTaken, "This time slot is already booked")
	case errors.Is(err, service.ErrPastDate):
		apperrors.BadRequest(c, apperrors.ReservationPastDate, "Reservation date must be today or later")
	case errors.Is(err, service.ErrInvalidDateFormat):
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Date must be in YYYY-MM-DD format")
	case errors.Is(err, service.ErrInvalidTimeFormat):
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Time must be in HH:MM format")
	case errors.Is(err, service.ErrInvalidPeopleCount):
		apperrors.BadRequest(c, apperrors.ReservationInvalidParty, "Party size must be between 1 and 20")
	case errors.Is(err, service.ErrInvalidResStatus):
		apperrors.BadRequest(c, apperrors.ReservationInvalidStatus, "Invalid reservation status")
	case errors.Is(err, service.ErrReservationNotFound):
		apperrors.NotFound(c, apperrors.ReservationNotFound, "Reservation not found")
	case errors.Is(err, service.ErrReservationAccessDenied):
		apperrors.Forbidden(c, "You do not have access to this reservation")
	default:
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "reservation")
	}
}

// CreateReservation books a table
// POST /api/v1/reservations
func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to create reservation", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create reservation request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid reservation data")
		return
	}

	log.Debug("Creating reservation", map[string]interface{}{
		"user_id":      userID,
		"date":         req.Date,
		"time":         req.Time,
		"people_count": req.PeopleCount,
	})

	reservation, err := ctrl.reservationService.CreateReservation(userID, req.Date, req.Time, req.PeopleCount)
	if err != nil {
		log.Warn("Failed to create reservation", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		respondReservationError(c, err)
		return
	}

	log.Info("Reservation created successfully", map[string]interface{}{
		"reservation_id": reservation.ID,
		"user_id":        userID,
		"date":           reservation.Date,
		"time":           reservation.Time,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Reservation created successfully",
		"reservation": reservation,
	})
}

// GetReservations returns the current user's reservations
// GET /api/v1/reservations
func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to reservations", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	reservations, err := ctrl.reservationService.GetUserReservations(userID)
	if err != nil {
		log.Error("Failed to fetch reservations", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch reservations")
		return
	}

	log.Info("Reservations fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(reservations),
	})

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"count":        len(reservations),
	})
}

// GetAllReservations returns every reservation (Admin only)
// GET /api/v1/reservations/all
func (ctrl *ReservationController) GetAllReservations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	reservations, err := ctrl.reservationService.GetAllReservations()
	if err != nil {
		log.Error("Failed to fetch all reservations", err, nil)
		apperrors.InternalError(c, "Failed to fetch reservations")
		return
	}

	log.Info("All reservations fetched", map[string]interface{}{
		"count": len(reservations),
	})

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"count":        len(reservations),
	})
}

// UpdateReservation changes a reservation's slot, party size or status
// PUT /api/v1/reservations/:id
func (ctrl *ReservationController) UpdateReservation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to update reservation", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid reservation ID format", map[string]interface{}{
			"reservation_id": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid reservation ID")
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update reservation request", map[string]interface{}{
			"user_id":        userID,
			"reservation_id": id,
			"error":          err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid reservation data")
		return
	}

	update := service.ReservationUpdate{
		Date:        req.Date,
		Time:        req.Time,
		PeopleCount: req.PeopleCount,
		Status:      req.Status,
	}

	reservation, err := ctrl.reservationService.UpdateReservation(userID, isAdminRequest(c), uint(id), update)
	if err != nil {
		log.Warn("Failed to update reservation", map[string]interface{}{
			"user_id":        userID,
			"reservation_id": id,
			"error":          err.Error(),
		})
		respondReservationError(c, err)
		return
	}

	log.Info("Reservation updated successfully", map[string]interface{}{
		"reservation_id": reservation.ID,
		"user_id":        userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":     "Reservation updated successfully",
		"reservation": reservation,
	})
}

// CancelReservation cancels a reservation, freeing its slot
// DELETE /api/v1/reservations/:id
func (ctrl *ReservationController) CancelReservation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to cancel reservation", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid reservation ID format", map[string]interface{}{
			"reservation_id": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid reservation ID")
		return
	}

	if err := ctrl.reservationService.CancelReservation(userID, isAdminRequest(c), uint(id)); err != nil {
		log.Warn("Failed to cancel reservation", map[string]interface{}{
			"user_id":        userID,
			"reservation_id": id,
			"error":          err.Error(),
		})
		respondReservationError(c, err)
		return
	}

	log.Info("Reservation cancelled", map[string]interface{}{
		"reservation_id": id,
		"user_id":        userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Reservation cancelled successfully",
	})
}
