package scheduler

import (
	"time"

	"github.com/geekhaven/brew-backend/internal/app/service"
	"github.com/geekhaven/brew-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ReservationScheduler sweeps pending reservations whose date has passed
// and marks them cancelled so their slots free up.
type ReservationScheduler struct {
	cron               *cron.Cron
	reservationService service.ReservationService
}

func NewReservationScheduler(reservationService service.ReservationService) *ReservationScheduler {
	return &ReservationScheduler{
		cron:               cron.New(),
		reservationService: reservationService,
	}
}

// Start registers the nightly sweep. Runs daily at 03:00 server time.
func (s *ReservationScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled reservation sweep", nil)

		count, err := s.reservationService.ExpireStalePending(time.Now())
		if err != nil {
			logger.Error("Failed to expire stale reservations", err)
			return
		}

		logger.Info("Reservation sweep completed", map[string]interface{}{
			"expired_count": count,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for reservation sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Reservation scheduler started successfully (daily at 3:00 AM)", nil)

	return nil
}

// Stop halts the scheduler.
func (s *ReservationScheduler) Stop() {
	logger.Info("Stopping reservation scheduler...", nil)
	s.cron.Stop()
	logger.Info("Reservation scheduler stopped", nil)
}
