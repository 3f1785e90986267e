package cron

import (
	"time"

	bookingRepo "quadras/database/repository/booking"
	userRepo "quadras/database/repository/user"
	"quadras/models"
	"quadras/services/notification"
	"quadras/utils"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DeadlineSweeper cancels bookings whose payment deadline passed without an
// approved payment, freeing their slots.
type DeadlineSweeper struct {
	Bookings bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Notifier notification.Notifier
}

// StartDeadlineSweep schedules the sweeper every ten minutes and returns the
// scheduler so main can stop it.
func StartDeadlineSweep(s *DeadlineSweeper) *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("@every 10m", s.Sweep); err != nil {
		utils.GetLogger().Fatal("failed to schedule deadline sweep", zap.Error(err))
	}
	c.Start()
	utils.GetLogger().Info("payment deadline sweep scheduled")
	return c
}

// Sweep runs one pass over expired waiting_payment bookings.
func (s *DeadlineSweeper) Sweep() {
	logger := utils.GetLogger()

	expired, err := s.Bookings.FindExpiredWaitingPayment(time.Now())
	if err != nil {
		logger.Error("deadline sweep query failed", zap.Error(err))
		return
	}

	for i := range expired {
		b := &expired[i]
		err := s.Bookings.UpdateSetDocument(b.ID, bson.M{
			"status": models.StatusCancelled,
			"notes":  "Cancelled: payment deadline expired",
		})
		if err != nil {
			logger.Error("failed to cancel expired booking",
				zap.String("booking_id", b.ID), zap.Error(err))
			continue
		}
		logger.Info("cancelled expired booking",
			zap.String("booking_id", b.ID),
			zap.String("user_id", b.UserID))
		s.notify(b)
	}
}

func (s *DeadlineSweeper) notify(b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	user, err := s.Users.GetByIDWithProjection(b.UserID, nil)
	if err != nil || user == nil {
		return
	}
	payload := models.NotificationPayload{
		Event:     models.EventBookingCancelled,
		Email:     user.Email,
		Phone:     user.Phone,
		Recipient: user.FullName(),
		Date:      b.DateStr(),
		Time:      b.TimeStr(),
		Reason:    "payment deadline expired",
		BookingID: b.ID,
	}
	if err := s.Notifier.Notify(payload); err != nil {
		utils.GetLogger().Warn("sweep notification enqueue failed",
			zap.String("booking_id", b.ID), zap.Error(err))
	}
}
