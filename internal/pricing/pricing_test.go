package pricing

import (
    "math"
    "testing"
)

func TestQuoteStudioOnly(t *testing.T) {
    // With no equipment the total is rate×hours plus the rounded fee.
    cases := []struct {
        rate  float64
        hours int
    }{
        {50, 2},
        {0, 1},
        {75, 8},
        {33.5, 3},
        {120, 12},
    }
    for _, tc := range cases {
        b := Quote(tc.rate, tc.hours, nil, nil, 0.10)
        studio := tc.rate * float64(tc.hours)
        wantFee := math.Round(studio * 0.10)
        if b.StudioTotal != studio {
            t.Errorf("rate=%v hours=%d: studio total = %v, want %v", tc.rate, tc.hours, b.StudioTotal, studio)
        }
        if b.EquipmentTotal != 0 {
            t.Errorf("rate=%v hours=%d: equipment total = %v, want 0", tc.rate, tc.hours, b.EquipmentTotal)
        }
        if b.ServiceFee != wantFee {
            t.Errorf("rate=%v hours=%d: service fee = %v, want %v", tc.rate, tc.hours, b.ServiceFee, wantFee)
        }
        if b.Total != studio+wantFee {
            t.Errorf("rate=%v hours=%d: total = %v, want %v", tc.rate, tc.hours, b.Total, studio+wantFee)
        }
    }
}

func TestQuoteScenario(t *testing.T) {
    // 50/h × 2h + 2 × 25/day at a 10% fee.
    b := Quote(50, 2, map[uint64]int{1: 2}, map[uint64]float64{1: 25}, 0.10)
    if b.StudioTotal != 100 {
        t.Errorf("studio total = %v, want 100", b.StudioTotal)
    }
    if b.EquipmentTotal != 50 {
        t.Errorf("equipment total = %v, want 50", b.EquipmentTotal)
    }
    if b.Subtotal != 150 {
        t.Errorf("subtotal = %v, want 150", b.Subtotal)
    }
    if b.ServiceFee != 15 {
        t.Errorf("service fee = %v, want 15", b.ServiceFee)
    }
    if b.Total != 165 {
        t.Errorf("total = %v, want 165", b.Total)
    }
}

func TestQuoteZeroQuantityPruned(t *testing.T) {
    catalog := map[uint64]float64{1: 25, 2: 40}
    b := Quote(50, 2, map[uint64]int{1: 0, 2: 1}, catalog, 0.10)
    if b.EquipmentTotal != 40 {
        t.Errorf("equipment total = %v, want 40 (zero-quantity line must not contribute)", b.EquipmentTotal)
    }
}

func TestQuoteUnknownEquipmentContributesZero(t *testing.T) {
    // Unknown IDs are tolerated, not errors.
    b := Quote(50, 2, map[uint64]int{99: 3}, map[uint64]float64{1: 25}, 0.10)
    if b.EquipmentTotal != 0 {
        t.Errorf("equipment total = %v, want 0 for unknown catalog id", b.EquipmentTotal)
    }
    if b.Total != 110 {
        t.Errorf("total = %v, want 110", b.Total)
    }
}

func TestQuoteFeeIsWholeUnit(t *testing.T) {
    // Fractional subtotals still yield an integer fee; the total keeps
    // the fractional part of the subtotal.
    b := Quote(33.75, 3, nil, nil, 0.10)
    if b.ServiceFee != math.Trunc(b.ServiceFee) {
        t.Errorf("service fee %v is not a whole unit", b.ServiceFee)
    }
    if b.ServiceFee < 0 {
        t.Errorf("service fee %v is negative", b.ServiceFee)
    }
    if b.Total != b.Subtotal+b.ServiceFee {
        t.Errorf("total %v != subtotal %v + fee %v", b.Total, b.Subtotal, b.ServiceFee)
    }
}

func TestQuoteRoundsHalfAwayFromZero(t *testing.T) {
    // subtotal 125 at 10% -> 12.5 -> 13, not 12.
    b := Quote(125, 1, nil, nil, 0.10)
    if b.ServiceFee != 13 {
        t.Errorf("service fee = %v, want 13 (half rounds away from zero)", b.ServiceFee)
    }
}

func TestQuoteDeterministic(t *testing.T) {
    sel := map[uint64]int{1: 2, 2: 1}
    cat := map[uint64]float64{1: 25, 2: 40.5}
    first := Quote(62.5, 4, sel, cat, 0.12)
    for i := 0; i < 10; i++ {
        if got := Quote(62.5, 4, sel, cat, 0.12); got != first {
            t.Fatalf("quote %d differs: %+v vs %+v", i, got, first)
        }
    }
}

func TestQuotePermissiveInputs(t *testing.T) {
    // Zero and negative durations are tolerated, mirroring the lack of
    // validation in the booking flows this calculator serves.
    if b := Quote(50, 0, nil, nil, 0.10); b.Total != 0 {
        t.Errorf("zero duration: total = %v, want 0", b.Total)
    }
    b := Quote(50, -2, nil, nil, 0.10)
    if b.StudioTotal != -100 {
        t.Errorf("negative duration: studio total = %v, want -100", b.StudioTotal)
    }
}

func TestHostPayout(t *testing.T) {
    cases := []struct {
        subtotal float64
        rate     float64
        want     float64
    }{
        {150, 0.15, 150 - 23}, // 22.5 rounds up to 23
        {100, 0.15, 85},
        {0, 0.15, 0},
        {200, 0.15, 170},
    }
    for _, tc := range cases {
        if got := HostPayout(tc.subtotal, tc.rate); got != tc.want {
            t.Errorf("HostPayout(%v, %v) = %v, want %v", tc.subtotal, tc.rate, got, tc.want)
        }
    }
}
