package repository

import (
	"github.com/geekhaven/brew-backend/internal/app/model"
	"github.com/geekhaven/brew-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(reservation *model.Reservation) error
	FindByID(id uint) (*model.Reservation, error)
	FindByUserID(userID uint) ([]model.Reservation, error)
	FindAll() ([]model.Reservation, error)
	FindActiveBySlot(date, time string) (*model.Reservation, error)
	FindStalePending(before string) ([]model.Reservation, error)
	Update(reservation *model.Reservation) error
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(reservation *model.Reservation) error {
	logger.Debug("Creating reservation in database", map[string]interface{}{
		"user_id":      reservation.UserID,
		"date":         reservation.Date,
		"time":         reservation.Time,
		"people_count": reservation.PeopleCount,
	})

	if err := r.db.Create(reservation).Error; err != nil {
		logger.Error("Failed to create reservation in database", err, map[string]interface{}{
			"user_id": reservation.UserID,
			"date":    reservation.Date,
			"time":    reservation.Time,
		})
		return err
	}

	logger.Debug("Reservation created in database", map[string]interface{}{
		"reservation_id": reservation.ID,
		"user_id":        reservation.UserID,
	})
	return nil
}

func (r *reservationRepository) FindByID(id uint) (*model.Reservation, error) {
	logger.Debug("Finding reservation by ID in database", map[string]interface{}{
		"reservation_id": id,
	})

	var reservation model.Reservation
	if err := r.db.First(&reservation, id).Error; err != nil {
		logger.Error("Failed to find reservation by ID in database", err, map[string]interface{}{
			"reservation_id": id,
		})
		return nil, err
	}

	logger.Debug("Reservation found by ID in database", map[string]interface{}{
		"reservation_id": reservation.ID,
		"user_id":        reservation.UserID,
		"status":         reservation.Status,
	})
	return &reservation, nil
}

func (r *reservationRepository) FindByUserID(userID uint) ([]model.Reservation, error) {
	logger.Debug("Finding reservations by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var reservations []model.Reservation
	if err := r.db.Where("user_id = ?", userID).
		Order("date DESC, time DESC").
		Find(&reservations).Error; err != nil {
		logger.Error("Failed to find reservations by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Reservations found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(reservations),
	})
	return reservations, nil
}

func (r *reservationRepository) FindAll() ([]model.Reservation, error) {
	logger.Debug("Finding all reservations in database", nil)

	var reservations []model.Reservation
	if err := r.db.Order("date DESC, time DESC").
		Find(&reservations).Error; err != nil {
		logger.Error("Failed to find all reservations in database", err, nil)
		return nil, err
	}

	logger.Debug("All reservations found in database", map[string]interface{}{
		"count": len(reservations),
	})
	return reservations, nil
}

// FindActiveBySlot returns the non-cancelled reservation occupying the exact
// (date, time) slot, or gorm.ErrRecordNotFound when the slot is free.
func (r *reservationRepository) FindActiveBySlot(date, time string) (*model.Reservation, error) {
	logger.Debug("Finding active reservation by slot in database", map[string]interface{}{
		"date": date,
		"time": time,
	})

	var reservation model.Reservation
	err := r.db.Where("date = ? AND time = ? AND status <> ?", date, time, model.ReservationStatusCancelled).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}

	logger.Debug("Active reservation found for slot in database", map[string]interface{}{
		"reservation_id": reservation.ID,
		"date":           date,
		"time":           time,
	})
	return &reservation, nil
}

// FindStalePending returns pending reservations dated strictly before the
// given "2006-01-02" date.
func (r *reservationRepository) FindStalePending(before string) ([]model.Reservation, error) {
	logger.Debug("Finding stale pending reservations in database", map[string]interface{}{
		"before": before,
	})

	var reservations []model.Reservation
	if err := r.db.Where("status = ? AND date < ?", model.ReservationStatusPending, before).
		Find(&reservations).Error; err != nil {
		logger.Error("Failed to find stale pending reservations in database", err, map[string]interface{}{
			"before": before,
		})
		return nil, err
	}

	logger.Debug("Stale pending reservations found in database", map[string]interface{}{
		"count": len(reservations),
	})
	return reservations, nil
}

func (r *reservationRepository) Update(reservation *model.Reservation) error {
	logger.Debug("Updating reservation in database", map[string]interface{}{
		"reservation_id": reservation.ID,
		"user_id":        reservation.UserID,
		"status":         reservation.Status,
	})

	if err := r.db.Save(reservation).Error; err != nil {
		logger.Error("Failed to update reservation in database", err, map[string]interface{}{
			"reservation_id": reservation.ID,
			"user_id":        reservation.UserID,
		})
		return err
	}

	logger.Debug("Reservation updated in database", map[string]interface{}{
		"reservation_id": reservation.ID,
		"status":         reservation.Status,
	})
	return nil
}
