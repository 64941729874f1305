// Package pricing computes slot subtotals and booking totals. Slots always last one hour.
package pricing

import (
	"fmt"

	"dipsport/shared/failure"
)

type Line struct {
	FieldID  string
	Override *int64
}

type Quote struct {
	Subtotals []int64
	Total     int64
}

// Subtotal is the override when present, else the field price.
func Subtotal(pricePerHour int64, override *int64) int64 {
	if override != nil {
		return *override
	}

	return pricePerHour
}

// Calculate prices every line against prices, keyed by field id. Academic bookings total zero.
func Calculate(prices map[string]int64, lines []Line, academic bool) (Quote, error) {
	quote := Quote{Subtotals: make([]int64, len(lines))}

	for i, line := range lines {
		price, ok := prices[line.FieldID]
		if !ok {
			return Quote{}, failure.ErrFieldNotFound.WithMessage(fmt.Sprintf("field %s has no price", line.FieldID))
		}

		quote.Subtotals[i] = Subtotal(price, line.Override)
		quote.Total += quote.Subtotals[i]
	}

	if academic {
		quote.Total = 0
	}

	return quote, nil
}
