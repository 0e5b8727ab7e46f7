package model

import (
	"time"

	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// ValidReservationStatus reports whether s is one of the known status values.
func ValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled:
		return true
	}
	return false
}

// Reservation books a table for a given date and time slot.
// Date and Time are stored as plain "2006-01-02" / "15:04" strings;
// the service layer validates them before anything is persisted.
type Reservation struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	UserID      uint              `gorm:"not null;index" json:"user_id"`
	Date        string            `gorm:"type:varchar(10);not null;index" json:"date"`
	Time        string            `gorm:"type:varchar(5);not null" json:"time"`
	PeopleCount int               `gorm:"not null" json:"people_count"`
	Status      ReservationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Reservation) TableName() string {
	return "reservations"
}
