// Package pricing computes the cost breakdown for a prospective studio
// reservation.  Quote is a pure function over its inputs: the same studio
// rate, duration, equipment selections and catalog always produce the same
// breakdown, and nothing here touches the database or the clock.
package pricing

import "math"

// Breakdown is the result of pricing one reservation request.  Only the
// service fee is rounded (to a whole currency unit); the subtotal and total
// intentionally carry through any fractional part of the inputs so the sum
// always reconciles line by line.
type Breakdown struct {
    StudioTotal    float64 `json:"studio_total"`    // hourly rate × booked hours
    EquipmentTotal float64 `json:"equipment_total"` // Σ price-per-day × quantity
    Subtotal       float64 `json:"subtotal"`        // StudioTotal + EquipmentTotal
    ServiceFee     float64 `json:"service_fee"`     // round(Subtotal × fee rate)
    Total          float64 `json:"total"`           // Subtotal + ServiceFee
}

// Quote prices a reservation request.  hourlyRate is the studio's rate,
// durationHours the requested whole hours, selections maps equipment IDs to
// requested quantities and catalog maps equipment IDs to their per-day
// price.
//
// Inputs are deliberately tolerated rather than validated: a selection whose
// ID is absent from the catalog contributes zero, and quantities of zero or
// less are ignored.  The service fee rounds half away from zero to a whole
// currency amount.
func Quote(hourlyRate float64, durationHours int, selections map[uint64]int, catalog map[uint64]float64, feeRate float64) Breakdown {
    studioTotal := hourlyRate * float64(durationHours)

    var equipmentTotal float64
    for id, qty := range selections {
        if qty <= 0 {
            continue
        }
        equipmentTotal += catalog[id] * float64(qty) // missing id -> 0
    }

    subtotal := studioTotal + equipmentTotal
    serviceFee := math.Round(subtotal * feeRate)
    return Breakdown{
        StudioTotal:    studioTotal,
        EquipmentTotal: equipmentTotal,
        Subtotal:       subtotal,
        ServiceFee:     serviceFee,
        Total:          subtotal + serviceFee,
    }
}

// HostPayout returns the amount credited to the host for a subtotal: the
// subtotal minus the platform commission, with the commission rounded to a
// whole currency unit the same way the renter-facing fee is.
func HostPayout(subtotal, commissionRate float64) float64 {
    return subtotal - math.Round(subtotal*commissionRate)
}
