package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"bluewave-backend/services"
	"bluewave-backend/utils"

	"github.com/gin-gonic/gin"
)

// Identity headers supplied by the caller. The core trusts them — validating
// the principal is the presentation layer's job.
type callerIdentity struct {
	UID         string
	Email       string
	DisplayName string
}

func identityFrom(c *gin.Context) callerIdentity {
	return callerIdentity{
		UID:         strings.TrimSpace(c.GetHeader("X-User-Id")),
		Email:       strings.TrimSpace(c.GetHeader("X-User-Email")),
		DisplayName: strings.TrimSpace(c.GetHeader("X-User-Name")),
	}
}

type CreateReservationRequest struct {
	RoomID          uint   `json:"room_id" binding:"required"`
	CheckIn         string `json:"check_in" binding:"required"`
	CheckOut        string `json:"check_out" binding:"required"`
	Guests          int    `json:"guests" binding:"required"`
	SpecialRequests string `json:"special_requests"`

	// Optional guest name/email pair for non-authenticated flows; falls back
	// to the identity headers.
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
}

type transitionPayload struct {
	Status string `json:"status" binding:"required"`
}

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: svc}
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// CreateReservation (POST /api/reservations)
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_in format")
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_out format")
		return
	}

	ident := identityFrom(c)
	guestName := strings.TrimSpace(req.GuestName)
	if guestName == "" {
		guestName = ident.DisplayName
	}
	if guestName == "" {
		guestName = "Guest"
	}
	guestEmail := strings.TrimSpace(req.GuestEmail)
	if guestEmail == "" {
		guestEmail = ident.Email
	}

	reservation, err := rc.Reservations.CreateReservation(services.CreateReservationInput{
		RoomID:          req.RoomID,
		UserID:          ident.UID,
		UserEmail:       ident.Email,
		GuestName:       guestName,
		GuestEmail:      guestEmail,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONError(c, http.StatusNotFound, "room not found")
		case errors.Is(err, services.ErrOutOfStock):
			utils.JSONError(c, http.StatusConflict, "room is no longer available, please choose another room type")
		case errors.Is(err, services.ErrCompensationFailed):
			log.Printf("🚨 compensation failed during reservation create: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to create reservation")
		default:
			log.Printf("❌ create reservation error: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to create reservation")
		}
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// GetMyReservations (GET /api/reservations) — scoped to the caller identity.
func (rc *ReservationController) GetMyReservations(c *gin.Context) {
	ident := identityFrom(c)
	if ident.UID == "" {
		utils.JSONError(c, http.StatusBadRequest, "X-User-Id header is required")
		return
	}
	list, err := rc.Reservations.ListByUser(ident.UID)
	if err != nil {
		log.Printf("❌ list reservations error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load reservations")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetReservations (GET /api/admin/reservations)
func (rc *ReservationController) GetReservations(c *gin.Context) {
	list, err := rc.Reservations.ListAll()
	if err != nil {
		log.Printf("❌ list reservations error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load reservations")
		return
	}
	c.JSON(http.StatusOK, list)
}

// TransitionStatus (PATCH /api/admin/reservations/:id/status) — confirm,
// complete or cancel. A failed stock restore does not undo the status change;
// it comes back as a warning on an otherwise successful response.
func (rc *ReservationController) TransitionStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload transitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}

	reservation, err := rc.Reservations.TransitionStatus(id, strings.ToLower(strings.TrimSpace(payload.Status)))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReleaseFailed) && reservation != nil:
			// status change persisted, restore did not
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"data":    reservation,
				"warning": "reservation updated but stock restoration failed",
			})
		case errors.Is(err, services.ErrReservationNotFound):
			utils.JSONError(c, http.StatusNotFound, "reservation not found")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.JSONError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			log.Printf("❌ transition error for reservation %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to update reservation")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// DeleteReservation (DELETE /api/admin/reservations/:id) — hard delete, no
// stock restore. Distinct from cancellation on purpose.
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := rc.Reservations.DeleteReservation(id); err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.JSONError(c, http.StatusNotFound, "reservation not found")
			return
		}
		log.Printf("❌ delete reservation error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete reservation")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Reservation permanently deleted (room stock was not restored)",
	})
}
