// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a booking reaches the
// confirmed state, whether through instant booking or an explicit host
// accept. It carries enough for downstream consumers to log, notify, or
// feed analytics without querying the primary database.
type ReservationConfirmedEvent struct {
    ReservationID uint64  `json:"reservation_id"`
    Reference     string  `json:"reference"`
    StudioID      uint64  `json:"studio_id"`
    StudioName    string  `json:"studio_name,omitempty"`
    RenterID      uint64  `json:"renter_id"`
    HostID        uint64  `json:"host_id"`
    StartAt       string  `json:"start_at"`
    EndAt         string  `json:"end_at"`
    TotalAmount   float64 `json:"total_amount"`
    HostPayout    float64 `json:"host_payout"`
    ConfirmedAt   string  `json:"confirmed_at"`
}
