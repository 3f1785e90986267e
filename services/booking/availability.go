package booking

import (
	"fmt"

	"quadras/models"
)

// BuildDaySlots cuts the arena's opening windows for one date into one-hour
// slots and marks each slot taken when it overlaps an active booking on that
// date. Windows shorter than a full hour at the tail are dropped.
func BuildDaySlots(date string, windows []models.HourRange, active []models.Booking) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	for _, window := range windows {
		start, err := parseClock(window.Start)
		if err != nil {
			return nil, err
		}
		end, err := parseClock(window.End)
		if err != nil {
			return nil, err
		}

		for cur := start; cur+60 <= end; cur += 60 {
			slot := models.AvailabilitySlot{
				Start: formatClock(cur),
				End:   formatClock(cur + 60),
			}
			slot.IsAvailable = !singleSlotConflicts(&models.BookingTimeslot{
				Date:      date,
				StartTime: slot.Start,
				EndTime:   slot.End,
			}, active)
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

// formatClock renders minutes since midnight as zero-padded "HH:MM".
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
