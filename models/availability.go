package models

// AvailabilitySlot is one candidate window on a date, tagged free or taken.
type AvailabilitySlot struct {
	Start       string `json:"start"` // HH:MM
	End         string `json:"end"`
	IsAvailable bool   `json:"is_available"`
}

// Availability maps ISO dates to their ordered slot lists, the shape of
// GET /courts/{id}/availability.
type Availability map[string][]AvailabilitySlot
