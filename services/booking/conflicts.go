package booking

import "quadras/models"

// Conflict decisions work on candidate bookings already narrowed by the
// repository queries. Keeping the overlap logic here, on plain values, makes
// it testable without a database.

// containsWeekday reports whether a Monday-origin weekday is selected.
func containsWeekday(weekdays []int, weekday int) bool {
	for _, w := range weekdays {
		if w == weekday {
			return true
		}
	}
	return false
}

// weekdaysIntersect reports whether two weekday selections share a day.
func weekdaysIntersect(a, b []int) bool {
	for _, w := range a {
		if containsWeekday(b, w) {
			return true
		}
	}
	return false
}

// monthlyCoversDate reports whether a recurrence has an occurrence on the
// given date. The caller has already checked the date is inside the
// recurrence's date range.
func monthlyCoversDate(cfg *models.MonthlyBookingConfig, date string) bool {
	weekday, err := weekdayOf(date)
	if err != nil {
		return false
	}
	return containsWeekday(cfg.Weekdays, weekday)
}

// singleSlotConflicts reports whether a requested single slot collides with
// any candidate booking. Single candidates are same-date; monthly candidates
// have date ranges covering the slot date.
func singleSlotConflicts(slot *models.BookingTimeslot, candidates []models.Booking) bool {
	for i := range candidates {
		b := &candidates[i]
		switch b.BookingType {
		case models.BookingSingle:
			if b.Timeslot != nil &&
				clockOverlaps(slot.StartTime, slot.EndTime, b.Timeslot.StartTime, b.Timeslot.EndTime) {
				return true
			}
		case models.BookingMonthly:
			if b.MonthlyConfig != nil &&
				monthlyCoversDate(b.MonthlyConfig, slot.Date) &&
				clockOverlaps(slot.StartTime, slot.EndTime, b.MonthlyConfig.StartTime, b.MonthlyConfig.EndTime) {
				return true
			}
		}
	}
	return false
}

// monthlyConfigConflicts reports whether a requested recurrence collides with
// any candidate booking. Single candidates fall inside the recurrence's date
// range; monthly candidates have overlapping date ranges.
func monthlyConfigConflicts(cfg *models.MonthlyBookingConfig, candidates []models.Booking) bool {
	for i := range candidates {
		b := &candidates[i]
		switch b.BookingType {
		case models.BookingSingle:
			if b.Timeslot != nil &&
				monthlyCoversDate(cfg, b.Timeslot.Date) &&
				clockOverlaps(cfg.StartTime, cfg.EndTime, b.Timeslot.StartTime, b.Timeslot.EndTime) {
				return true
			}
		case models.BookingMonthly:
			if b.MonthlyConfig != nil &&
				weekdaysIntersect(cfg.Weekdays, b.MonthlyConfig.Weekdays) &&
				clockOverlaps(cfg.StartTime, cfg.EndTime, b.MonthlyConfig.StartTime, b.MonthlyConfig.EndTime) {
				return true
			}
		}
	}
	return false
}
