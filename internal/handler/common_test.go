package handler

import (
    "testing"
    "time"
)

func TestParseSlotAccepted(t *testing.T) {
    for _, slot := range bookingSlots {
        hour, ok := parseSlot(slot)
        if !ok {
            t.Fatalf("slot %q rejected", slot)
        }
        want, _ := time.Parse("15:04", slot)
        if hour != want.Hour() {
            t.Fatalf("slot %q: hour = %d, want %d", slot, hour, want.Hour())
        }
    }
}

func TestParseSlotRejected(t *testing.T) {
    for _, slot := range []string{"", "07:00", "22:00", "14:30", "14", "2pm", "14:00:00"} {
        if _, ok := parseSlot(slot); ok {
            t.Errorf("slot %q accepted", slot)
        }
    }
}

func TestSlotStart(t *testing.T) {
    day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
    got := slotStart(day, 14)
    want := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
    if !got.Equal(want) {
        t.Fatalf("slotStart = %v, want %v", got, want)
    }
    // Duration is always whole hours, so end computation stays on the hour.
    end := got.Add(3 * time.Hour)
    if end.Minute() != 0 || end.Hour() != 17 {
        t.Fatalf("end = %v", end)
    }
}
