package booking

import (
	"fmt"
	"time"

	arenaRepo "quadras/database/repository/arena"
	bookingRepo "quadras/database/repository/booking"
	courtRepo "quadras/database/repository/court"
	extraRepo "quadras/database/repository/extraservice"
	paymentRepo "quadras/database/repository/payment"
	userRepo "quadras/database/repository/user"
	"quadras/models"
	"quadras/services/notification"
	"quadras/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// maxAvailabilityDays caps the date span of one availability query.
const maxAvailabilityDays = 31

// DefaultBookingService is the standard BookingService implementation.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Courts   courtRepo.CourtRepository
	Arenas   arenaRepo.ArenaRepository
	Users    userRepo.UserRepository
	Extras   extraRepo.ExtraServiceRepository
	Payments paymentRepo.PaymentRepository
	Notifier notification.Notifier

	// Now is overridable for deterministic tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create validates, prices and persists a new booking. The initial status is
// waiting_payment when the court (or its arena) requires advance payment,
// pending otherwise.
func (s *DefaultBookingService) Create(actor models.Actor, req *models.BookingCreate) (*models.Booking, error) {
	court, err := s.Courts.GetByID(req.CourtID)
	if err != nil {
		return nil, err
	}
	if court == nil {
		return nil, ErrCourtNotFound
	}
	if !court.IsAvailable {
		return nil, ErrCourtUnavailable
	}

	arena, err := s.Arenas.GetByID(court.ArenaID)
	if err != nil {
		return nil, err
	}
	if arena == nil || !arena.Active {
		return nil, ErrArenaInactive
	}

	now := s.now()
	if err := validateCreate(req, court, now); err != nil {
		return nil, err
	}
	if err := s.checkBusinessHours(arena, req); err != nil {
		return nil, err
	}

	active, err := s.Bookings.CountActiveForUser(actor.ID)
	if err != nil {
		return nil, err
	}
	if active >= utils.MaxActiveBookingsPerUser {
		return nil, ErrTooManyActive
	}

	conflict, err := s.hasConflict(court.ID, req)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSlotConflict
	}

	catalogue, err := s.Extras.ListByArena(arena.ID)
	if err != nil {
		return nil, err
	}
	quote, err := BuildQuote(court, req, catalogue)
	if err != nil {
		return nil, err
	}

	requiresPayment := arena.AdvancePaymentRequired
	if court.AdvancePaymentRequired != nil {
		requiresPayment = *court.AdvancePaymentRequired
	}

	b := &models.Booking{
		ID:              uuid.NewString(),
		UserID:          actor.ID,
		CourtID:         court.ID,
		ArenaID:         arena.ID,
		BookingType:     req.BookingType,
		Timeslot:        req.Timeslot,
		MonthlyConfig:   req.MonthlyConfig,
		Status:          models.StatusPending,
		PricePerHour:    quote.PricePerHour,
		TotalHours:      quote.TotalHours,
		Subtotal:        quote.Subtotal,
		ExtraServices:   quote.ExtraServices,
		DiscountAmount:  quote.DiscountAmount,
		TotalAmount:     quote.TotalAmount,
		RequiresPayment: requiresPayment,
	}
	if requiresPayment {
		hours := arena.PaymentDeadlineHours
		if hours <= 0 {
			hours = 24
		}
		deadline := now.Add(time.Duration(hours) * time.Hour)
		b.Status = models.StatusWaitingPayment
		b.PaymentDeadline = &deadline
	}

	if err := s.Bookings.Create(b); err != nil {
		return nil, err
	}

	s.attachRefs(b, court, arena)
	s.notifyOwner(b, arena, models.EventBookingRequested, "")
	return b, nil
}

// checkBusinessHours verifies the requested time falls inside the arena's
// opening windows, per weekday for monthly bookings.
func (s *DefaultBookingService) checkBusinessHours(arena *models.Arena, req *models.BookingCreate) error {
	switch req.BookingType {
	case models.BookingSingle:
		ok, err := withinBusinessHours(arena.BusinessHours, req.Timeslot.Date, req.Timeslot.StartTime, req.Timeslot.EndTime)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOutsideHours
		}
	case models.BookingMonthly:
		cfg := req.MonthlyConfig
		for _, weekday := range cfg.Weekdays {
			if !rangeWithinWindows(arena.BusinessHours.ForWeekday(weekday), cfg.StartTime, cfg.EndTime) {
				return ErrOutsideHours
			}
		}
	}
	return nil
}

// hasConflict checks the request against every booking that holds time on
// the court.
func (s *DefaultBookingService) hasConflict(courtID string, req *models.BookingCreate) (bool, error) {
	switch req.BookingType {
	case models.BookingSingle:
		slot := req.Timeslot
		singles, err := s.Bookings.FindActiveSingleOnDate(courtID, slot.Date)
		if err != nil {
			return false, err
		}
		monthlies, err := s.Bookings.FindActiveMonthlyCovering(courtID, slot.Date)
		if err != nil {
			return false, err
		}
		return singleSlotConflicts(slot, append(singles, monthlies...)), nil

	case models.BookingMonthly:
		cfg := req.MonthlyConfig
		singles, err := s.Bookings.FindActiveSingleInRange(courtID, cfg.StartDate, cfg.EndDate)
		if err != nil {
			return false, err
		}
		monthlies, err := s.Bookings.FindActiveMonthlyOverlapping(courtID, cfg.StartDate, cfg.EndDate)
		if err != nil {
			return false, err
		}
		return monthlyConfigConflicts(cfg, append(singles, monthlies...)), nil
	}
	return false, fmt.Errorf("unknown booking type %q", req.BookingType)
}

// Get returns a booking visible to the actor: its owner, the arena owner or
// an admin.
func (s *DefaultBookingService) Get(actor models.Actor, id string) (*models.Booking, error) {
	b, err := s.authorized(actor, id)
	if err != nil {
		return nil, err
	}
	s.attachRefs(b, nil, nil)
	return b, nil
}

// authorized fetches a booking and enforces read access.
func (s *DefaultBookingService) authorized(actor models.Actor, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if actor.IsAdmin() || actor.ID == b.UserID {
		return b, nil
	}
	owns, err := s.ownsArena(actor, b.ArenaID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrNotPermitted
	}
	return b, nil
}

func (s *DefaultBookingService) ownsArena(actor models.Actor, arenaID string) (bool, error) {
	arena, err := s.Arenas.GetByID(arenaID)
	if err != nil {
		return false, err
	}
	return arena != nil && arena.OwnerID == actor.ID, nil
}

// ListForUser pages over a user's own bookings, newest first.
func (s *DefaultBookingService) ListForUser(userID, status string, page, perPage int) (*models.PaginatedBookings, error) {
	return s.list(models.BookingFilter{
		UserID:       userID,
		Status:       status,
		Page:         page,
		ItemsPerPage: perPage,
	})
}

// ListForArena pages over an arena's bookings for its owner or an admin.
func (s *DefaultBookingService) ListForArena(actor models.Actor, filter models.BookingFilter) (*models.PaginatedBookings, error) {
	if !actor.IsAdmin() {
		owns, err := s.ownsArena(actor, filter.ArenaID)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, ErrNotPermitted
		}
	}
	return s.list(filter)
}

func (s *DefaultBookingService) list(filter models.BookingFilter) (*models.PaginatedBookings, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.ItemsPerPage < 1 {
		filter.ItemsPerPage = utils.DefaultPageSize
	}
	if filter.ItemsPerPage > utils.MaxPageSize {
		filter.ItemsPerPage = utils.MaxPageSize
	}

	bookings, total, err := s.Bookings.List(filter)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		s.attachRefs(&bookings[i], nil, nil)
	}

	pages := int(total) / filter.ItemsPerPage
	if int(total)%filter.ItemsPerPage > 0 {
		pages++
	}
	return &models.PaginatedBookings{
		Bookings:     bookings,
		TotalPages:   pages,
		CurrentPage:  filter.Page,
		TotalItems:   int(total),
		ItemsPerPage: filter.ItemsPerPage,
	}, nil
}

// UpdateStatus moves a booking through the state machine. Only the arena
// owner or an admin may confirm or complete; cancellation goes through
// Cancel so refunds are handled.
func (s *DefaultBookingService) UpdateStatus(actor models.Actor, id string, update *models.BookingStatusUpdate) (*models.Booking, error) {
	b, err := s.authorized(actor, id)
	if err != nil {
		return nil, err
	}

	if update.Status == models.StatusCancelled {
		return s.Cancel(actor, id, &models.BookingCancellation{Reason: update.Notes})
	}

	// Confirmation and completion are arena-side decisions.
	if !actor.IsAdmin() {
		owns, err := s.ownsArena(actor, b.ArenaID)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, ErrNotPermitted
		}
	}

	if !CanTransition(b.Status, update.Status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.Status, update.Status)
	}

	updateDoc := bson.M{"status": update.Status}
	if update.Notes != "" {
		updateDoc["notes"] = update.Notes
	}
	if err := s.Bookings.UpdateSetDocument(b.ID, updateDoc); err != nil {
		return nil, err
	}
	b.Status = update.Status
	if update.Notes != "" {
		b.Notes = update.Notes
	}

	if update.Status == models.StatusConfirmed {
		s.notifyCustomer(b, models.EventBookingConfirmed, "")
	}
	s.attachRefs(b, nil, nil)
	return b, nil
}

// Cancel cancels a booking for its owner, the arena owner or an admin, and
// flags an approved payment as refunded when a refund is requested.
func (s *DefaultBookingService) Cancel(actor models.Actor, id string, req *models.BookingCancellation) (*models.Booking, error) {
	b, err := s.authorized(actor, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, models.StatusCancelled) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.Status, models.StatusCancelled)
	}

	updateDoc := bson.M{"status": models.StatusCancelled}
	if req.Reason != "" {
		updateDoc["notes"] = "Cancelled: " + req.Reason
	}
	if err := s.Bookings.UpdateSetDocument(b.ID, updateDoc); err != nil {
		return nil, err
	}
	b.Status = models.StatusCancelled
	if req.Reason != "" {
		b.Notes = "Cancelled: " + req.Reason
	}

	if req.RequestRefund {
		if err := s.refundApprovedPayment(b.ID); err != nil {
			utils.GetLogger().Error("refund request failed",
				zap.String("booking_id", b.ID), zap.Error(err))
		}
	}

	if actor.ID == b.UserID {
		arena, aerr := s.Arenas.GetByID(b.ArenaID)
		if aerr == nil && arena != nil {
			s.notifyOwner(b, arena, models.EventBookingCancelled, req.Reason)
		}
	} else {
		s.notifyCustomer(b, models.EventBookingCancelled, req.Reason)
	}

	s.attachRefs(b, nil, nil)
	return b, nil
}

func (s *DefaultBookingService) refundApprovedPayment(bookingID string) error {
	p, err := s.Payments.GetOpenForBooking(bookingID)
	if err != nil {
		return err
	}
	if p == nil || p.Status != models.PaymentApproved {
		return nil
	}
	return s.Payments.UpdateSetDocument(p.ID, bson.M{"status": models.PaymentRefunded})
}

// Availability returns one-hour slot maps for a court across a date range,
// capped at one month.
func (s *DefaultBookingService) Availability(courtID, startDate, endDate string) (models.Availability, error) {
	court, err := s.Courts.GetByID(courtID)
	if err != nil {
		return nil, err
	}
	if court == nil {
		return nil, ErrCourtNotFound
	}
	arena, err := s.Arenas.GetByID(court.ArenaID)
	if err != nil {
		return nil, err
	}
	if arena == nil {
		return nil, ErrArenaInactive
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeslot, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeslot, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidTimeslot)
	}
	if end.Sub(start) > maxAvailabilityDays*24*time.Hour {
		end = start.AddDate(0, 0, maxAvailabilityDays)
	}

	result := models.Availability{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		weekday := (int(day.Weekday()) + 6) % 7
		windows := arena.BusinessHours.ForWeekday(weekday)
		if len(windows) == 0 {
			result[date] = []models.AvailabilitySlot{}
			continue
		}

		singles, err := s.Bookings.FindActiveSingleOnDate(courtID, date)
		if err != nil {
			return nil, err
		}
		monthlies, err := s.Bookings.FindActiveMonthlyCovering(courtID, date)
		if err != nil {
			return nil, err
		}

		slots, err := BuildDaySlots(date, windows, append(singles, monthlies...))
		if err != nil {
			return nil, err
		}
		if slots == nil {
			slots = []models.AvailabilitySlot{}
		}
		result[date] = slots
	}
	return result, nil
}

// PaymentStatus reports where a booking stands on payment, with its most
// recent payment attached.
func (s *DefaultBookingService) PaymentStatus(actor models.Actor, id string) (*models.BookingPaymentStatus, error) {
	b, err := s.authorized(actor, id)
	if err != nil {
		return nil, err
	}
	p, err := s.Payments.GetLatestForBooking(b.ID)
	if err != nil {
		return nil, err
	}
	return &models.BookingPaymentStatus{
		BookingID:       b.ID,
		Status:          b.Status,
		RequiresPayment: b.RequiresPayment,
		PaymentDeadline: b.PaymentDeadline,
		Payment:         p,
	}, nil
}

// attachRefs decorates a booking with court, arena and user summaries.
// Already-fetched documents can be passed to avoid refetching.
func (s *DefaultBookingService) attachRefs(b *models.Booking, court *models.Court, arena *models.Arena) {
	if court == nil {
		court, _ = s.Courts.GetByID(b.CourtID)
	}
	if court != nil {
		b.Court = &models.CourtRef{ID: court.ID, Name: court.Name, Type: court.Type}
	}
	if arena == nil {
		arena, _ = s.Arenas.GetByID(b.ArenaID)
	}
	if arena != nil {
		b.Arena = &models.ArenaRef{ID: arena.ID, Name: arena.Name}
	}
	if user, _ := s.Users.GetByIDWithProjection(b.UserID, nil); user != nil {
		b.User = &models.UserRef{
			ID:    user.ID,
			Name:  user.FullName(),
			Email: user.Email,
			Phone: user.Phone,
		}
	}
}

func (s *DefaultBookingService) notifyOwner(b *models.Booking, arena *models.Arena, event models.NotificationEvent, reason string) {
	if s.Notifier == nil {
		return
	}
	owner, err := s.Users.GetByIDWithProjection(arena.OwnerID, nil)
	if err != nil || owner == nil {
		return
	}
	s.notify(models.NotificationPayload{
		Event:     event,
		Email:     owner.Email,
		Phone:     owner.Phone,
		Recipient: owner.FullName(),
		ArenaName: arena.Name,
		CourtName: s.courtName(b),
		Date:      b.DateStr(),
		Time:      b.TimeStr(),
		Reason:    reason,
		BookingID: b.ID,
	})
}

func (s *DefaultBookingService) notifyCustomer(b *models.Booking, event models.NotificationEvent, reason string) {
	if s.Notifier == nil {
		return
	}
	user, err := s.Users.GetByIDWithProjection(b.UserID, nil)
	if err != nil || user == nil {
		return
	}
	payload := models.NotificationPayload{
		Event:     event,
		Email:     user.Email,
		Phone:     user.Phone,
		Recipient: user.FullName(),
		CourtName: s.courtName(b),
		Date:      b.DateStr(),
		Time:      b.TimeStr(),
		Reason:    reason,
		BookingID: b.ID,
	}
	if arena, _ := s.Arenas.GetByID(b.ArenaID); arena != nil {
		payload.ArenaName = arena.Name
	}
	s.notify(payload)
}

func (s *DefaultBookingService) notify(payload models.NotificationPayload) {
	if err := s.Notifier.Notify(payload); err != nil {
		utils.GetLogger().Warn("notification enqueue failed",
			zap.String("event", string(payload.Event)),
			zap.String("booking_id", payload.BookingID),
			zap.Error(err))
	}
}

func (s *DefaultBookingService) courtName(b *models.Booking) string {
	if b.Court != nil {
		return b.Court.Name
	}
	if court, _ := s.Courts.GetByID(b.CourtID); court != nil {
		return court.Name
	}
	return ""
}
