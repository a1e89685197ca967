package repository

import (
    "context"
    "database/sql"
    "time"
)

// Message mirrors the messages table (reservation-scoped renter↔host
// threads).
type Message struct {
    ID            uint64    `json:"id"`
    ReservationID uint64    `json:"reservation_id"`
    SenderID      uint64    `json:"sender_id"`
    Body          string    `json:"body"`
    CreatedAt     time.Time `json:"created_at"`
}

// MessageRepo persists the conversation attached to a reservation.
type MessageRepo struct {
    db *sql.DB
}

// NewMessageRepo returns a new MessageRepo bound to the given database.
func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

// Create appends a message to a reservation's thread and populates the
// generated ID and timestamp.
func (r *MessageRepo) Create(ctx context.Context, m *Message) error {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO messages (reservation_id, sender_id, body) VALUES (?, ?, ?)`,
        m.ReservationID, m.SenderID, m.Body)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at FROM messages WHERE id = ?`, m.ID).Scan(&m.CreatedAt)
}

// ListByReservation returns a thread oldest first.
func (r *MessageRepo) ListByReservation(ctx context.Context, reservationID uint64) ([]Message, error) {
    const q = `SELECT id, reservation_id, sender_id, body, created_at
               FROM messages WHERE reservation_id = ? ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, reservationID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []Message
    for rows.Next() {
        var m Message
        if err := rows.Scan(&m.ID, &m.ReservationID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    return out, rows.Err()
}
