package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"bluewave-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationService sequences reservation status changes with the matching
// inventory call. The contract: exactly one unit of stock is held for every
// pending/confirmed reservation, released exactly once on the transition
// into completed or cancelled, and never released by a hard delete.
type ReservationService struct {
	DB        *gorm.DB
	Inventory *InventoryService
}

func NewReservationService(db *gorm.DB, inv *InventoryService) *ReservationService {
	return &ReservationService{DB: db, Inventory: inv}
}

type CreateReservationInput struct {
	RoomID          uint
	UserID          string
	UserEmail       string
	GuestName       string
	GuestEmail      string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	SpecialRequests string
}

// allowedTransitions: pending -> confirmed | cancelled,
// confirmed -> completed | cancelled. completed and cancelled are terminal.
var allowedTransitions = map[string]map[string]bool{
	models.ReservationPending: {
		models.ReservationConfirmed: true,
		models.ReservationCancelled: true,
	},
	models.ReservationConfirmed: {
		models.ReservationCompleted: true,
		models.ReservationCancelled: true,
	},
}

func nightsBetween(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// CreateReservation validates, reserves a unit, then persists the pending
// reservation with the computed price and room snapshot. Validation failures
// happen before any ledger call so they have no stock side effect. If the
// persist fails after ReserveUnit succeeded, a compensating ReleaseUnit is
// attempted; if that also fails the error wraps ErrCompensationFailed and is
// logged as a stock-leak candidate for manual reconciliation.
func (s *ReservationService) CreateReservation(in CreateReservationInput) (*models.Reservation, error) {
	if !in.CheckOut.After(in.CheckIn) {
		return nil, fmt.Errorf("%w: check-out date must be after check-in date", ErrValidation)
	}

	var room models.Room
	if err := s.DB.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", in.RoomID, err)
	}

	if in.Guests < 1 || in.Guests > room.Capacity {
		return nil, fmt.Errorf("%w: guests must be between 1 and %d", ErrValidation, room.Capacity)
	}

	// Pre-check shrinks the race window for a friendlier failure; final
	// correctness still rests on ReserveUnit's conditional update.
	avail, err := s.Inventory.QueryAvailability(in.RoomID)
	if err != nil {
		return nil, err
	}
	if !avail.Available {
		return nil, ErrOutOfStock
	}

	if _, err := s.Inventory.ReserveUnit(in.RoomID); err != nil {
		return nil, err
	}

	nights := nightsBetween(in.CheckIn, in.CheckOut)
	roomID := room.ID
	reservation := models.Reservation{
		ReferenceCode:   uuid.NewString(),
		RoomID:          &roomID,
		RoomName:        room.Name,
		RoomPrice:       room.Price,
		UserID:          in.UserID,
		UserEmail:       in.UserEmail,
		GuestName:       in.GuestName,
		GuestEmail:      in.GuestEmail,
		CheckIn:         in.CheckIn,
		CheckOut:        in.CheckOut,
		Guests:          in.Guests,
		Nights:          nights,
		TotalPrice:      nights * room.Price,
		SpecialRequests: in.SpecialRequests,
		Status:          models.ReservationPending,
	}

	if err := s.DB.Create(&reservation).Error; err != nil {
		// best-effort rollback of the reserved unit
		if _, relErr := s.Inventory.ReleaseUnit(in.RoomID, 1); relErr != nil {
			log.Printf("🚨 STOCK LEAK: failed to release room %d after create failure (create: %v, release: %v)",
				in.RoomID, err, relErr)
			return nil, fmt.Errorf("%w: reservation create failed and rollback release failed: %v", ErrCompensationFailed, err)
		}
		return nil, fmt.Errorf("%w: failed to persist reservation: %v", ErrPersistenceFailed, err)
	}

	return &reservation, nil
}

// TransitionStatus applies one of the allowed lifecycle edges. Entering
// completed or cancelled releases the held unit exactly once — the prior
// two statuses are the only ones that hold stock and both lead out of the
// holding set, so the release edge is reachable once per reservation.
//
// The status change is persisted regardless of the release outcome; when the
// restore fails the updated reservation is still returned together with an
// error wrapping ErrReleaseFailed so callers can surface the warning.
func (s *ReservationService) TransitionStatus(reservationID uint, newStatus string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to load reservation %d: %w", reservationID, err)
	}

	if !allowedTransitions[reservation.Status][newStatus] {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, newStatus)
	}

	releasing := reservation.HoldsStock() &&
		(newStatus == models.ReservationCompleted || newStatus == models.ReservationCancelled)

	// Conditional on the observed status so a concurrent transition loses
	// cleanly instead of double-applying (and double-releasing) the edge.
	res := s.DB.Model(&models.Reservation{}).
		Where("id = ? AND status = ?", reservationID, reservation.Status).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("%w: failed to update reservation %d: %v", ErrPersistenceFailed, reservationID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: reservation %d left %s concurrently", ErrInvalidTransition, reservationID, reservation.Status)
	}
	reservation.Status = newStatus

	if releasing && reservation.RoomID != nil {
		if _, err := s.Inventory.ReleaseUnit(*reservation.RoomID, 1); err != nil {
			log.Printf("⚠️  reservation %d moved to %s but stock restore failed: %v", reservationID, newStatus, err)
			return &reservation, fmt.Errorf("%w: %v", ErrReleaseFailed, err)
		}
	}

	return &reservation, nil
}

// DeleteReservation removes the record unconditionally with NO stock
// release, regardless of status. This is a destructive admin override,
// deliberately distinct from cancellation.
func (s *ReservationService) DeleteReservation(reservationID uint) error {
	res := s.DB.Unscoped().Delete(&models.Reservation{}, reservationID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete reservation %d: %w", reservationID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	log.Printf("🗑️  reservation %d permanently deleted (stock not restored)", reservationID)
	return nil
}

func (s *ReservationService) GetByID(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to load reservation %d: %w", reservationID, err)
	}
	return &reservation, nil
}

// ListAll returns every reservation, newest first (admin console).
func (s *ReservationService) ListAll() ([]models.Reservation, error) {
	var list []models.Reservation
	if err := s.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return list, nil
}

// ListByUser returns the reservations stamped with the given user id
// (my-reservations screen).
func (s *ReservationService) ListByUser(userID string) ([]models.Reservation, error) {
	var list []models.Reservation
	if err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations for user %s: %w", userID, err)
	}
	return list, nil
}
