package utils

import (
    "regexp"
    "testing"
    "time"
)

func TestNewBookingReferenceFormat(t *testing.T) {
    now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)
    ref, err := NewBookingReference(now)
    if err != nil {
        t.Fatalf("NewBookingReference: %v", err)
    }
    pat := regexp.MustCompile(`^BK-20260831-[0-9A-F]{6}$`)
    if !pat.MatchString(ref) {
        t.Errorf("reference %q does not match expected shape", ref)
    }
}

func TestNewBookingReferenceDistinct(t *testing.T) {
    // Uniqueness is probabilistic, but a small batch generated in one
    // process should never collide.
    now := time.Now()
    seen := make(map[string]bool)
    for i := 0; i < 1000; i++ {
        ref, err := NewBookingReference(now)
        if err != nil {
            t.Fatalf("NewBookingReference: %v", err)
        }
        if seen[ref] {
            t.Fatalf("duplicate reference %q after %d generations", ref, i)
        }
        seen[ref] = true
    }
}
