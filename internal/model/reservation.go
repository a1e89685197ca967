package model

import "time"

// Reservation lifecycle states.  "completed" is special: it is derived
// from the clock for display (see EffectiveStatus) and is never written
// by new code, but legacy rows may carry it as a literal stored value
// and are honoured when read.
const (
    StatusPending   = "pending"
    StatusConfirmed = "confirmed"
    StatusCancelled = "cancelled"
    StatusCompleted = "completed"
)

// Payment states carried on a reservation.  Payment collection itself
// happens outside this service; the field only records the outcome.
const (
    PaymentUnpaid   = "unpaid"
    PaymentPaid     = "paid"
    PaymentRefunded = "refunded"
)

// Reservation records a renter's booking of a studio for a time
// window, together with the full price breakdown computed at creation
// time.  EndAt is always StartAt plus TotalHours hours.
//
// Fields:
//  ID                 – primary key identifier.
//  Reference          – human-readable booking reference for support lookup.
//  StudioID           – studio being booked.
//  RenterID           – user who placed the booking.
//  HostID             – owner of the studio at booking time.
//  StartAt            – session start (UTC).
//  EndAt              – session end (UTC), StartAt + TotalHours.
//  TotalHours         – whole hours booked, at least 1.
//  Subtotal           – studio total plus equipment total.
//  ServiceFee         – renter-facing platform fee (whole currency units).
//  TotalAmount        – Subtotal + ServiceFee.
//  HostPayout         – Subtotal minus platform commission.
//  Status             – lifecycle state (see constants above).
//  PaymentStatus      – unpaid/paid/refunded.
//  PaymentRef         – external payment reference, if any.
//  Note               – optional free-text note from the renter.
//  CancelledBy        – user who cancelled, when cancelled.
//  CancellationReason – free-text reason, required for host declines.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Reservation struct {
    ID                 uint64     // reservations.id
    Reference          string     // reservations.reference
    StudioID           uint64     // reservations.studio_id
    RenterID           uint64     // reservations.renter_id
    HostID             uint64     // reservations.host_id
    StartAt            time.Time  // reservations.start_at
    EndAt              time.Time  // reservations.end_at
    TotalHours         uint32     // reservations.total_hours
    Subtotal           float64    // reservations.subtotal
    ServiceFee         float64    // reservations.service_fee
    TotalAmount        float64    // reservations.total_amount
    HostPayout         float64    // reservations.host_payout
    Status             string     // reservations.status
    PaymentStatus      string     // reservations.payment_status
    PaymentRef         *string    // reservations.payment_ref (nullable)
    Note               string     // reservations.note
    CancelledBy        *uint64    // reservations.cancelled_by (nullable)
    CancellationReason *string    // reservations.cancellation_reason (nullable)
    CreatedAt          time.Time  // reservations.created_at
    UpdatedAt          time.Time  // reservations.updated_at
}

// EffectiveStatus returns the status a reservation should display at
// the given instant.  Cancelled always wins.  A reservation whose
// start time has passed shows as completed regardless of whether a
// "completed" value was ever stored; rows that do carry a stored
// "completed" are reported as such even before their start time.
func (r *Reservation) EffectiveStatus(now time.Time) string {
    if r.Status == StatusCancelled {
        return StatusCancelled
    }
    if r.Status == StatusCompleted {
        return StatusCompleted
    }
    if r.StartAt.Before(now) {
        return StatusCompleted
    }
    return r.Status
}

// IsPast reports whether the session start has elapsed.  Reviews are
// only accepted for past, non-cancelled reservations.
func (r *Reservation) IsPast(now time.Time) bool {
    return r.StartAt.Before(now)
}

// CanAcceptOrDecline reports whether a host response is still
// meaningful.  Only pending reservations can be accepted or declined.
func (r *Reservation) CanAcceptOrDecline() bool {
    return r.Status == StatusPending
}

// CanCancel reports whether the reservation can still be cancelled.
// Any state other than cancelled may be cancelled, past sessions
// included.
func (r *Reservation) CanCancel() bool {
    return r.Status != StatusCancelled
}
