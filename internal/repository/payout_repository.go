package repository

import (
    "context"
    "database/sql"
    "time"
)

// Payout mirrors the payouts table.  One row accrues per confirmed
// reservation; settlement happens outside this service.
type Payout struct {
    ID            uint64    `json:"id"`
    HostID        uint64    `json:"host_id"`
    ReservationID uint64    `json:"reservation_id"`
    Amount        float64   `json:"amount"`
    Status        string    `json:"status"`
    BatchRef      *string   `json:"batch_ref,omitempty"`
    CreatedAt     time.Time `json:"created_at"`
    UpdatedAt     time.Time `json:"updated_at"`
}

// PayoutRepo records host earnings per reservation and answers the
// host-facing earnings summary.
type PayoutRepo struct {
    db *sql.DB
}

// NewPayoutRepo returns a new PayoutRepo bound to the given database.
func NewPayoutRepo(db *sql.DB) *PayoutRepo { return &PayoutRepo{db: db} }

// CreateTx accrues a payout row inside an existing transaction, normally
// the same transaction that confirms the reservation.  Inserting twice for
// the same reservation is a no-op thanks to the unique key on
// reservation_id.
func (r *PayoutRepo) CreateTx(ctx context.Context, tx *sql.Tx, hostID, reservationID uint64, amount float64) error {
    const q = `INSERT IGNORE INTO payouts (host_id, reservation_id, amount, status) VALUES (?, ?, ?, 'accrued')`
    _, err := tx.ExecContext(ctx, q, hostID, reservationID, amount)
    return err
}

// CancelByReservationTx removes the accrued payout when a confirmed
// reservation is later cancelled.  Already-paid payouts are left alone.
func (r *PayoutRepo) CancelByReservationTx(ctx context.Context, tx *sql.Tx, reservationID uint64) error {
    const q = `DELETE FROM payouts WHERE reservation_id = ? AND status = 'accrued'`
    _, err := tx.ExecContext(ctx, q, reservationID)
    return err
}

// ListByHost returns a host's payout rows newest first.
func (r *PayoutRepo) ListByHost(ctx context.Context, hostID uint64) ([]Payout, error) {
    const q = `SELECT id, host_id, reservation_id, amount, status, batch_ref, created_at, updated_at
               FROM payouts WHERE host_id = ? ORDER BY id DESC`
    rows, err := r.db.QueryContext(ctx, q, hostID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []Payout
    for rows.Next() {
        var (
            p     Payout
            batch sql.NullString
        )
        if err := rows.Scan(&p.ID, &p.HostID, &p.ReservationID, &p.Amount, &p.Status, &batch, &p.CreatedAt, &p.UpdatedAt); err != nil {
            return nil, err
        }
        if batch.Valid {
            v := batch.String
            p.BatchRef = &v
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// EarningsSummary aggregates a host's accrued and settled amounts.
type EarningsSummary struct {
    Accrued float64 `json:"accrued"`
    Paid    float64 `json:"paid"`
    Total   float64 `json:"total"`
}

// Earnings sums a host's payouts by settlement state.
func (r *PayoutRepo) Earnings(ctx context.Context, hostID uint64) (EarningsSummary, error) {
    const q = `SELECT
                 COALESCE(SUM(CASE WHEN status = 'accrued' THEN amount ELSE 0 END), 0),
                 COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0)
               FROM payouts WHERE host_id = ?`
    var s EarningsSummary
    if err := r.db.QueryRowContext(ctx, q, hostID).Scan(&s.Accrued, &s.Paid); err != nil {
        return EarningsSummary{}, err
    }
    s.Total = s.Accrued + s.Paid
    return s, nil
}
