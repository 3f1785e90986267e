package booking

import (
	"testing"

	"quadras/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDaySlots(t *testing.T) {
	windows := []models.HourRange{
		{Start: "08:00", End: "12:00"},
		{Start: "18:00", End: "21:30"},
	}

	slots, err := BuildDaySlots("2026-09-10", windows, nil)
	require.NoError(t, err)

	// 08-12 yields four slots, 18-21:30 yields three; the half-hour tail is dropped.
	require.Len(t, slots, 7)
	assert.Equal(t, "08:00", slots[0].Start)
	assert.Equal(t, "09:00", slots[0].End)
	assert.Equal(t, "11:00", slots[3].Start)
	assert.Equal(t, "12:00", slots[3].End)
	assert.Equal(t, "20:00", slots[6].Start)
	assert.Equal(t, "21:00", slots[6].End)
	for _, s := range slots {
		assert.True(t, s.IsAvailable)
	}
}

func TestBuildDaySlotsMarksTakenSlots(t *testing.T) {
	windows := []models.HourRange{{Start: "08:00", End: "12:00"}}
	active := []models.Booking{
		singleCandidate("2026-09-10", "09:00", "10:30"),
	}

	slots, err := BuildDaySlots("2026-09-10", windows, active)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.True(t, slots[0].IsAvailable)  // 08-09
	assert.False(t, slots[1].IsAvailable) // 09-10
	assert.False(t, slots[2].IsAvailable) // 10-11 overlaps the 10:00-10:30 tail
	assert.True(t, slots[3].IsAvailable)  // 11-12
}

func TestBuildDaySlotsMonthlyOccurrence(t *testing.T) {
	windows := []models.HourRange{{Start: "18:00", End: "22:00"}}
	// 2026-09-10 is a Thursday (weekday 3).
	active := []models.Booking{
		monthlyCandidate([]int{3}, "19:00", "20:00"),
	}

	slots, err := BuildDaySlots("2026-09-10", windows, active)
	require.NoError(t, err)
	require.Len(t, slots, 4)
	assert.True(t, slots[0].IsAvailable)
	assert.False(t, slots[1].IsAvailable)
	assert.True(t, slots[2].IsAvailable)
	assert.True(t, slots[3].IsAvailable)
}

func TestBuildDaySlotsEmptyWindows(t *testing.T) {
	slots, err := BuildDaySlots("2026-09-10", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestBuildDaySlotsBadWindow(t *testing.T) {
	_, err := BuildDaySlots("2026-09-10", []models.HourRange{{Start: "ten", End: "12:00"}}, nil)
	assert.Error(t, err)
}
