package booking

import (
	"fmt"

	"quadras/models"

	"github.com/shopspring/decimal"
)

// Quote is the server-side price breakdown for a booking request. Clients
// never send prices; everything here is derived from the court and the
// arena's extra-service catalogue.
type Quote struct {
	PricePerHour   float64
	TotalHours     float64
	Subtotal       float64
	ExtraServices  []models.BookingExtraService
	DiscountAmount float64
	TotalAmount    float64
}

// SlotHours returns the duration of an "HH:MM" range in fractional hours.
func SlotHours(startTime, endTime string) (float64, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return 0, err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return 0, err
	}
	if end <= start {
		return 0, fmt.Errorf("%w: end %s not after start %s", ErrInvalidTimeslot, endTime, startTime)
	}
	hours := decimal.NewFromInt(int64(end - start)).Div(decimal.NewFromInt(60))
	f, _ := hours.Float64()
	return f, nil
}

// requestHours returns the billable hours of a booking request. Monthly
// bookings bill one week's worth of occurrences, one per selected weekday.
func requestHours(req *models.BookingCreate) (float64, error) {
	switch req.BookingType {
	case models.BookingSingle:
		return SlotHours(req.Timeslot.StartTime, req.Timeslot.EndTime)
	case models.BookingMonthly:
		per, err := SlotHours(req.MonthlyConfig.StartTime, req.MonthlyConfig.EndTime)
		if err != nil {
			return 0, err
		}
		return per * float64(len(req.MonthlyConfig.Weekdays)), nil
	}
	return 0, fmt.Errorf("unknown booking type %q", req.BookingType)
}

// BuildQuote prices a booking request against the court's effective rate and
// the extra-service catalogue. All money math runs through decimals and is
// rounded to cents at the edges.
func BuildQuote(court *models.Court, req *models.BookingCreate, catalogue []models.ExtraService) (*Quote, error) {
	hours, err := requestHours(req)
	if err != nil {
		return nil, err
	}

	rate := decimal.NewFromFloat(court.EffectiveRate())
	subtotal := rate.Mul(decimal.NewFromFloat(hours)).Round(2)

	byID := make(map[string]models.ExtraService, len(catalogue))
	for _, svc := range catalogue {
		byID[svc.ID] = svc
	}

	var extras []models.BookingExtraService
	extrasTotal := decimal.Zero
	for _, sel := range req.ExtraServices {
		svc, ok := byID[sel.ServiceID]
		if !ok || !svc.Active {
			return nil, fmt.Errorf("%w: %s", ErrUnknownExtra, sel.ServiceID)
		}
		qty := sel.Quantity
		if qty < 1 {
			qty = 1
		}
		unit := decimal.NewFromFloat(svc.EffectiveRate())
		line := unit.Mul(decimal.NewFromInt(int64(qty))).Round(2)
		extrasTotal = extrasTotal.Add(line)

		unitF, _ := unit.Round(2).Float64()
		lineF, _ := line.Float64()
		extras = append(extras, models.BookingExtraService{
			ServiceID:  svc.ID,
			Name:       svc.Name,
			Quantity:   qty,
			UnitPrice:  unitF,
			TotalPrice: lineF,
		})
	}

	discount := decimal.Zero
	total := subtotal.Add(extrasTotal).Sub(discount).Round(2)

	rateF, _ := rate.Round(2).Float64()
	subtotalF, _ := subtotal.Float64()
	discountF, _ := discount.Float64()
	totalF, _ := total.Float64()

	return &Quote{
		PricePerHour:   rateF,
		TotalHours:     hours,
		Subtotal:       subtotalF,
		ExtraServices:  extras,
		DiscountAmount: discountF,
		TotalAmount:    totalF,
	}, nil
}
