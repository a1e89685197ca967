package model

import (
    "testing"
    "time"
)

func TestEffectiveStatus(t *testing.T) {
    now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
    future := now.Add(48 * time.Hour)
    past := now.Add(-48 * time.Hour)

    cases := []struct {
        name    string
        status  string
        startAt time.Time
        want    string
    }{
        {"pending upcoming stays pending", StatusPending, future, StatusPending},
        {"confirmed upcoming stays confirmed", StatusConfirmed, future, StatusConfirmed},
        {"pending past reads as completed", StatusPending, past, StatusCompleted},
        {"confirmed past reads as completed", StatusConfirmed, past, StatusCompleted},
        {"cancelled wins over the clock", StatusCancelled, past, StatusCancelled},
        {"cancelled upcoming stays cancelled", StatusCancelled, future, StatusCancelled},
        {"stored completed honoured before start", StatusCompleted, future, StatusCompleted},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            r := Reservation{Status: tc.status, StartAt: tc.startAt}
            if got := r.EffectiveStatus(now); got != tc.want {
                t.Fatalf("EffectiveStatus = %q, want %q", got, tc.want)
            }
        })
    }
}

func TestEffectiveStatusNeverWritesCompleted(t *testing.T) {
    // The derived view flips with the clock while the stored status is
    // untouched.
    r := Reservation{Status: StatusConfirmed, StartAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
    before := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
    after := time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)

    if got := r.EffectiveStatus(before); got != StatusConfirmed {
        t.Fatalf("before start: got %q", got)
    }
    if got := r.EffectiveStatus(after); got != StatusCompleted {
        t.Fatalf("after start: got %q", got)
    }
    if r.Status != StatusConfirmed {
        t.Fatalf("stored status mutated to %q", r.Status)
    }
}

func TestCanCancel(t *testing.T) {
    for _, status := range []string{StatusPending, StatusConfirmed, StatusCompleted} {
        r := Reservation{Status: status}
        if !r.CanCancel() {
            t.Errorf("status %q: expected cancellable", status)
        }
    }
    r := Reservation{Status: StatusCancelled}
    if r.CanCancel() {
        t.Error("cancelled reservation reported as cancellable")
    }
}

func TestCanAcceptOrDecline(t *testing.T) {
    if !(&Reservation{Status: StatusPending}).CanAcceptOrDecline() {
        t.Error("pending reservation should accept a host response")
    }
    for _, status := range []string{StatusConfirmed, StatusCancelled, StatusCompleted} {
        if (&Reservation{Status: status}).CanAcceptOrDecline() {
            t.Errorf("status %q should not accept a host response", status)
        }
    }
}

func TestIsPast(t *testing.T) {
    now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
    if (&Reservation{StartAt: now.Add(time.Hour)}).IsPast(now) {
        t.Error("future start reported as past")
    }
    if !(&Reservation{StartAt: now.Add(-time.Hour)}).IsPast(now) {
        t.Error("elapsed start not reported as past")
    }
}
