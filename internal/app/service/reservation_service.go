package service

import (
	"errors"
	"time"

	"github.com/geekhaven/brew-backend/internal/app/model"
	"github.com/geekhaven/brew-backend/internal/app/repository"
	"github.com/geekhaven/brew-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReservationNotFound     = errors.New("reservation not found")
	ErrReservationAccessDenied = errors.New("reservation access denied")
	ErrSlotTaken               = errors.New("time slot already reserved")
	ErrInvalidDateFormat       = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTimeFormat       = errors.New("time must be in HH:MM format")
	ErrPastDate                = errors.New("reservation date is in the past")
	ErrInvalidPeopleCount      = errors.New("people count must be between 1 and 20")
	ErrInvalidResStatus        = errors.New("invalid reservation status")
)

const (
	reservationDateLayout = "2006-01-02"
	reservationTimeLayout = "15:04"

	minPeopleCount = 1
	maxPeopleCount = 20
)

// ReservationUpdate carries a partial update; nil fields keep their value.
type ReservationUpdate struct {
	Date        *string
	Time        *string
	PeopleCount *int
	Status      *model.ReservationStatus
}

type ReservationService interface {
	CreateReservation(userID uint, date, timeSlot string, peopleCount int) (*model.Reservation, error)
	GetUserReservations(userID uint) ([]model.Reservation, error)
	GetAllReservations() ([]model.Reservation, error)
	UpdateReservation(userID uint, isAdmin bool, reservationID uint, update ReservationUpdate) (*model.Reservation, error)
	CancelReservation(userID uint, isAdmin bool, reservationID uint) error
	ExpireStalePending(now time.Time) (int, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
}

func NewReservationService(reservationRepo repository.ReservationRepository) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
	}
}

func validateReservationDate(date string) error {
	parsed, err := time.Parse(reservationDateLayout, date)
	if err != nil {
		return ErrInvalidDateFormat
	}
	today, _ := time.Parse(reservationDateLayout, time.Now().Format(reservationDateLayout))
	if parsed.Before(today) {
		return ErrPastDate
	}
	return nil
}

func validateReservationTime(timeSlot string) error {
	if _, err := time.Parse(reservationTimeLayout, timeSlot); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// slotAvailable reports whether the (date, time) slot is free of
// non-cancelled reservations, ignoring the reservation with id exclude.
func (s *reservationService) slotAvailable(date, timeSlot string, exclude uint) (bool, error) {
	existing, err := s.reservationRepo.FindActiveBySlot(date, timeSlot)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, err
	}
	return existing.ID == exclude, nil
}

func (s *reservationService) CreateReservation(userID uint, date, timeSlot string, peopleCount int) (*model.Reservation, error) {
	logger.Info("Creating reservation", map[string]interface{}{
		"user_id":      userID,
		"date":         date,
		"time":         timeSlot,
		"people_count": peopleCount,
	})

	if err := validateReservationDate(date); err != nil {
		logger.Warn("Reservation rejected: invalid date", map[string]interface{}{
			"user_id": userID,
			"date":    date,
			"error":   err.Error(),
		})
		return nil, err
	}
	if err := validateReservationTime(timeSlot); err != nil {
		logger.Warn("Reservation rejected: invalid time", map[string]interface{}{
			"user_id": userID,
			"time":    timeSlot,
		})
		return nil, err
	}
	if peopleCount < minPeopleCount || peopleCount > maxPeopleCount {
		logger.Warn("Reservation rejected: invalid people count", map[string]interface{}{
			"user_id":      userID,
			"people_count": peopleCount,
		})
		return nil, ErrInvalidPeopleCount
	}

	available, err := s.slotAvailable(date, timeSlot, 0)
	if err != nil {
		logger.Error("Failed to check slot availability", err, map[string]interface{}{
			"date": date,
			"time": timeSlot,
		})
		return nil, err
	}
	if !available {
		logger.Warn("Reservation rejected: slot taken", map[string]interface{}{
			"user_id": userID,
			"date":    date,
			"time":    timeSlot,
		})
		return nil, ErrSlotTaken
	}

	reservation := &model.Reservation{
		UserID:      userID,
		Date:        date,
		Time:        timeSlot,
		PeopleCount: peopleCount,
		Status:      model.ReservationStatusPending,
	}

	if err := s.reservationRepo.Create(reservation); err != nil {
		logger.Error("Failed to create reservation", err, map[string]interface{}{
			"user_id": userID,
			"date":    date,
			"time":    timeSlot,
		})
		return nil, err
	}

	logger.Info("Reservation created successfully", map[string]interface{}{
		"reservation_id": reservation.ID,
		"user_id":        userID,
	})
	return reservation, nil
}

func (s *reservationService) GetUserReservations(userID uint) ([]model.Reservation, error) {
	logger.Debug("Fetching user reservations", map[string]interface{}{
		"user_id": userID,
	})

	reservations, err := s.reservationRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user reservations", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User reservations fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(reservations),
	})
	return reservations, nil
}

func (s *reservationService) GetAllReservations() ([]model.Reservation, error) {
	logger.Debug("Fetching all reservations", nil)

	reservations, err := s.reservationRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch all reservations", err, nil)
		return nil, err
	}

	logger.Info("All reservations fetched successfully", map[string]interface{}{
		"count": len(reservations),
	})
	return reservations, nil
}

func (s *reservationService) findOwned(userID uint, isAdmin bool, reservationID uint) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Reservation not found", map[string]interface{}{
				"reservation_id": reservationID,
			})
			return nil, ErrReservationNotFound
		}
		logger.Error("Failed to fetch reservation", err, map[string]interface{}{
			"reservation_id": reservationID,
		})
		return nil, err
	}

	if !isAdmin && reservation.UserID != userID {
		logger.Warn("Reservation access denied: ownership mismatch", map[string]interface{}{
			"user_id":        userID,
			"reservation_id": reservationID,
			"owner_id":       reservation.UserID,
		})
		return nil, ErrReservationAccessDenied
	}
	return reservation, nil
}

func (s *reservationService) UpdateReservation(userID uint, isAdmin bool, reservationID uint, update ReservationUpdate) (*model.Reservation, error) {
	logger.Info("Updating reservation", map[string]interface{}{
		"user_id":        userID,
		"reservation_id": reservationID,
	})

	reservation, err := s.findOwned(userID, isAdmin, reservationID)
	if err != nil {
		return nil, err
	}

	date := reservation.Date
	timeSlot := reservation.Time
	slotChanged := false

	if update.Date != nil {
		if err := validateReservationDate(*update.Date); err != nil {
			logger.Warn("Reservation update rejected: invalid date", map[string]interface{}{
				"reservation_id": reservationID,
				"date":           *update.Date,
			})
			return nil, err
		}
		date = *update.Date
		slotChanged = slotChanged || date != reservation.Date
	}
	if update.Time != nil {
		if err := validateReservationTime(*update.Time); err != nil {
			logger.Warn("Reservation update rejected: invalid time", map[string]interface{}{
				"reservation_id": reservationID,
				"time":           *update.Time,
			})
			return nil, err
		}
		timeSlot = *update.Time
		slotChanged = slotChanged || timeSlot != reservation.Time
	}
	if update.PeopleCount != nil {
		if *update.PeopleCount < minPeopleCount || *update.PeopleCount > maxPeopleCount {
			logger.Warn("Reservation update rejected: invalid people count", map[string]interface{}{
				"reservation_id": reservationID,
				"people_count":   *update.PeopleCount,
			})
			return nil, ErrInvalidPeopleCount
		}
		reservation.PeopleCount = *update.PeopleCount
	}

	if slotChanged {
		available, err := s.slotAvailable(date, timeSlot, reservation.ID)
		if err != nil {
			logger.Error("Failed to check slot availability", err, map[string]interface{}{
				"date": date,
				"time": timeSlot,
			})
			return nil, err
		}
		if !available {
			logger.Warn("Reservation update rejected: slot taken", map[string]interface{}{
				"reservation_id": reservationID,
				"date":           date,
				"time":           timeSlot,
			})
			return nil, ErrSlotTaken
		}
	}

	reservation.Date = date
	reservation.Time = timeSlot
	if update.Status != nil {
		if !model.ValidReservationStatus(*update.Status) {
			logger.Warn("Reservation update rejected: unknown status", map[string]interface{}{
				"reservation_id": reservationID,
				"status":         *update.Status,
			})
			return nil, ErrInvalidResStatus
		}
		reservation.Status = *update.Status
	}

	if err := s.reservationRepo.Update(reservation); err != nil {
		logger.Error("Failed to update reservation", err, map[string]interface{}{
			"reservation_id": reservationID,
		})
		return nil, err
	}

	logger.Info("Reservation updated successfully", map[string]interface{}{
		"reservation_id": reservationID,
	})
	return reservation, nil
}

// CancelReservation flips the status to cancelled rather than deleting the
// row, so the history survives and the slot frees up for rebooking.
func (s *reservationService) CancelReservation(userID uint, isAdmin bool, reservationID uint) error {
	logger.Info("Cancelling reservation", map[string]interface{}{
		"user_id":        userID,
		"reservation_id": reservationID,
	})

	reservation, err := s.findOwned(userID, isAdmin, reservationID)
	if err != nil {
		return err
	}

	reservation.Status = model.ReservationStatusCancelled
	if err := s.reservationRepo.Update(reservation); err != nil {
		logger.Error("Failed to cancel reservation", err, map[string]interface{}{
			"reservation_id": reservationID,
		})
		return err
	}

	logger.Info("Reservation cancelled", map[string]interface{}{
		"reservation_id": reservationID,
	})
	return nil
}

// ExpireStalePending cancels pending reservations whose date has already
// passed. Returns how many were cancelled.
func (s *reservationService) ExpireStalePending(now time.Time) (int, error) {
	today := now.Format(reservationDateLayout)

	logger.Info("Expiring stale pending reservations", map[string]interface{}{
		"before": today,
	})

	stale, err := s.reservationRepo.FindStalePending(today)
	if err != nil {
		logger.Error("Failed to fetch stale pending reservations", err, nil)
		return 0, err
	}

	expired := 0
	for i := range stale {
		stale[i].Status = model.ReservationStatusCancelled
		if err := s.reservationRepo.Update(&stale[i]); err != nil {
			logger.Error("Failed to expire reservation", err, map[string]interface{}{
				"reservation_id": stale[i].ID,
			})
			continue
		}
		expired++
	}

	logger.Info("Stale pending reservations expired", map[string]interface{}{
		"count": expired,
	})
	return expired, nil
}
