package booking

import (
	"fmt"
	"time"

	"quadras/models"
	"quadras/utils"
)

// validateCreate checks a booking request's shape, its clock values and the
// advance-window rules. The court is needed for its minimum booking length.
func validateCreate(req *models.BookingCreate, court *models.Court, now time.Time) error {
	var date, startTime, endTime string

	switch req.BookingType {
	case models.BookingSingle:
		if req.Timeslot == nil || req.MonthlyConfig != nil {
			return fmt.Errorf("%w: single bookings need exactly a timeslot", ErrInvalidTimeslot)
		}
		date = req.Timeslot.Date
		startTime = req.Timeslot.StartTime
		endTime = req.Timeslot.EndTime

	case models.BookingMonthly:
		if req.MonthlyConfig == nil || req.Timeslot != nil {
			return fmt.Errorf("%w: monthly bookings need exactly a monthly config", ErrInvalidTimeslot)
		}
		cfg := req.MonthlyConfig
		if len(cfg.Weekdays) == 0 {
			return fmt.Errorf("%w: monthly config needs at least one weekday", ErrInvalidTimeslot)
		}
		seen := make(map[int]bool, len(cfg.Weekdays))
		for _, w := range cfg.Weekdays {
			if w < 0 || w > 6 {
				return fmt.Errorf("%w: weekday %d out of range", ErrInvalidTimeslot, w)
			}
			if seen[w] {
				return fmt.Errorf("%w: weekday %d repeated", ErrInvalidTimeslot, w)
			}
			seen[w] = true
		}
		if _, err := weekdayOf(cfg.StartDate); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimeslot, err)
		}
		if cfg.EndDate != nil {
			if _, err := weekdayOf(*cfg.EndDate); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTimeslot, err)
			}
			if *cfg.EndDate < cfg.StartDate {
				return fmt.Errorf("%w: end date before start date", ErrInvalidTimeslot)
			}
		}
		// The advance window applies to the first actual occurrence, which can
		// fall days after start_date when start_date's weekday is unselected.
		first, err := firstOccurrenceDate(cfg.Weekdays, cfg.StartDate)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimeslot, err)
		}
		if cfg.EndDate != nil && first > *cfg.EndDate {
			return fmt.Errorf("%w: no occurrence before the end date", ErrInvalidTimeslot)
		}
		date = first
		startTime = cfg.StartTime
		endTime = cfg.EndTime

	default:
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidTimeslot, req.BookingType)
	}

	hours, err := SlotHours(startTime, endTime)
	if err != nil {
		return err
	}
	if court.MinimumBookingHours > 0 && hours < court.MinimumBookingHours {
		return fmt.Errorf("%w: %.2fh booked, %.2fh minimum", ErrBelowMinimumHours, hours, court.MinimumBookingHours)
	}

	start, err := slotStart(date, startTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeslot, err)
	}
	if start.Before(now.Add(utils.MinBookingAdvance)) {
		return ErrTooSoon
	}
	if start.After(now.AddDate(0, 0, utils.MaxBookingAdvanceDays)) {
		return ErrTooFarAhead
	}
	return nil
}

// rangeWithinWindows reports whether an "HH:MM" range fits entirely inside
// one of the opening windows.
func rangeWithinWindows(windows []models.HourRange, startTime, endTime string) bool {
	for _, window := range windows {
		if startTime >= window.Start && endTime <= window.End {
			return true
		}
	}
	return false
}

// withinBusinessHours reports whether an "HH:MM" range falls inside one of
// the arena's opening windows for the date's weekday.
func withinBusinessHours(schedule models.WeeklySchedule, date, startTime, endTime string) (bool, error) {
	weekday, err := weekdayOf(date)
	if err != nil {
		return false, err
	}
	return rangeWithinWindows(schedule.ForWeekday(weekday), startTime, endTime), nil
}
