package utils

import (
    "fmt"
    "strings"
    "time"
)

// NewBookingReference produces the human-readable reference shown on a
// reservation, e.g. "BK-20260831-4F2A9C".  The date segment makes
// references easy to eyeball in support tooling; the random suffix keeps
// collisions improbable across concurrent bookings.  Nothing ever parses a
// reference back into parts, so the format is cosmetic and uniqueness is
// probabilistic only; the database primary key, not the reference, is the
// real identity of a reservation.
func NewBookingReference(now time.Time) (string, error) {
    suffix, err := randomHex(3) // 3 bytes -> 6 hex chars
    if err != nil {
        return "", err
    }
    return fmt.Sprintf("BK-%s-%s", now.UTC().Format("20060102"), strings.ToUpper(suffix)), nil
}
