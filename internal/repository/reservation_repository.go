package repository

import (
    "context"
    "database/sql"
    "time"
)

// ReservationRepo provides CRUD operations for reservations and their
// equipment line items.  A reservation books one studio for a contiguous
// time window and carries the full price breakdown computed at creation
// time.  All timestamp fields are assumed to be stored in UTC.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span the reservation and payout repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// ReservationRecord mirrors the schema of the reservations table.  It is
// used internally by the repository when constructing or scanning rows.
// Business logic should use the model.Reservation type instead.
type ReservationRecord struct {
    ID                 uint64
    Reference          string
    StudioID           uint64
    RenterID           uint64
    HostID             uint64
    StartAt            time.Time
    EndAt              time.Time
    TotalHours         uint32
    Subtotal           float64
    ServiceFee         float64
    TotalAmount        float64
    HostPayout         float64
    Status             string
    PaymentStatus      string
    PaymentRef         *string
    Note               string
    CancelledBy        *uint64
    CancellationReason *string
    CreatedAt          time.Time
    UpdatedAt          time.Time
}

// EquipmentLineRecord mirrors the reservation_equipment table.  The per-day
// price is snapshotted from the catalog at booking time so later catalog
// edits never change past bookings.
type EquipmentLineRecord struct {
    ReservationID uint64
    EquipmentID   uint64
    Quantity      uint32
    PricePerDay   float64
}

const reservationCols = `id, reference, studio_id, renter_id, host_id, start_at, end_at, total_hours,
    subtotal, service_fee, total_amount, host_payout, status, payment_status, payment_ref,
    note, cancelled_by, cancellation_reason, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }, res *ReservationRecord) error {
    var (
        paymentRef sql.NullString
        reason     sql.NullString
        cancelled  sql.NullInt64
    )
    err := row.Scan(&res.ID, &res.Reference, &res.StudioID, &res.RenterID, &res.HostID,
        &res.StartAt, &res.EndAt, &res.TotalHours, &res.Subtotal, &res.ServiceFee,
        &res.TotalAmount, &res.HostPayout, &res.Status, &res.PaymentStatus, &paymentRef,
        &res.Note, &cancelled, &reason, &res.CreatedAt, &res.UpdatedAt)
    if err != nil {
        return err
    }
    if paymentRef.Valid {
        v := paymentRef.String
        res.PaymentRef = &v
    }
    if reason.Valid {
        v := reason.String
        res.CancellationReason = &v
    }
    if cancelled.Valid {
        v := uint64(cancelled.Int64)
        res.CancelledBy = &v
    }
    return nil
}

// FindOverlappingTx returns the IDs of non-cancelled reservations for the
// studio whose window overlaps the interval [start, end).  A reservation
// overlaps when it starts before the proposed end and ends after the
// proposed start.  Rows are locked (FOR UPDATE) so that two concurrent
// creations for the same window serialize on the check.  excludeID skips
// one reservation, which lets a reschedule overlap with itself; pass 0 to
// exclude nothing.
func (r *ReservationRepo) FindOverlappingTx(ctx context.Context, tx *sql.Tx, studioID, excludeID uint64, start, end time.Time) ([]uint64, error) {
    const q = `SELECT id FROM reservations
               WHERE studio_id = ? AND id <> ? AND status <> 'cancelled'
                 AND NOT (end_at <= ? OR start_at >= ?)
               FOR UPDATE`
    rows, err := tx.QueryContext(ctx, q, studioID, excludeID, start, end)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var ids []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    return ids, rows.Err()
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction.  It populates the generated ID and timestamps on the
// provided record.  The caller must commit or rollback the transaction.
// Status should be 'pending' or 'confirmed'; the instant-book decision is
// made once by the caller at creation time.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *ReservationRecord) error {
    const q = `INSERT INTO reservations
               (reference, studio_id, renter_id, host_id, start_at, end_at, total_hours,
                subtotal, service_fee, total_amount, host_payout, status, payment_status, payment_ref, note)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q, res.Reference, res.StudioID, res.RenterID, res.HostID,
        res.StartAt, res.EndAt, res.TotalHours, res.Subtotal, res.ServiceFee, res.TotalAmount,
        res.HostPayout, res.Status, res.PaymentStatus, res.PaymentRef, res.Note)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    // Query back the full row to populate timestamps and defaults
    return scanReservation(tx.QueryRowContext(ctx,
        `SELECT `+reservationCols+` FROM reservations WHERE id = ?`, res.ID), res)
}

// CreateEquipmentBulkTx inserts the reservation's equipment line items in a
// single statement.  Passing an empty slice has no effect and returns nil.
func (r *ReservationRepo) CreateEquipmentBulkTx(ctx context.Context, tx *sql.Tx, lines []EquipmentLineRecord) error {
    if len(lines) == 0 {
        return nil
    }
    query := `INSERT INTO reservation_equipment (reservation_id, equipment_id, quantity, price_per_day) VALUES `
    args := make([]any, 0, len(lines)*4)
    for i, l := range lines {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?)"
        args = append(args, l.ReservationID, l.EquipmentID, l.Quantity, l.PricePerDay)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// GetByID retrieves a reservation by its ID, returning
// ErrReservationNotFound when the row does not exist.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*ReservationRecord, error) {
    var res ReservationRecord
    err := scanReservation(r.db.QueryRowContext(ctx,
        `SELECT `+reservationCols+` FROM reservations WHERE id = ?`, id), &res)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, ErrReservationNotFound
        }
        return nil, err
    }
    return &res, nil
}

// GetByIDTx is GetByID inside an existing transaction, with the row locked
// for the duration of the transaction.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*ReservationRecord, error) {
    var res ReservationRecord
    err := scanReservation(tx.QueryRowContext(ctx,
        `SELECT `+reservationCols+` FROM reservations WHERE id = ? FOR UPDATE`, id), &res)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, ErrReservationNotFound
        }
        return nil, err
    }
    return &res, nil
}

// UpdateStatusTx transitions a reservation's status when its current status
// is one of the allowed source states.  cancelledBy/reason are only written
// for cancellations.  It returns ErrConflict when the reservation is not in
// an allowed source state, which covers both illegal transitions and lost
// races with the other party.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, newStatus string, cancelledBy *uint64, reason *string, allowedFrom ...string) error {
    if len(allowedFrom) == 0 {
        return ErrConflict
    }
    q := `UPDATE reservations SET status = ?, cancelled_by = ?, cancellation_reason = ? WHERE id = ? AND status IN (?`
    args := []any{newStatus, cancelledBy, reason, id, allowedFrom[0]}
    for _, s := range allowedFrom[1:] {
        q += ",?"
        args = append(args, s)
    }
    q += ")"
    result, err := tx.ExecContext(ctx, q, args...)
    if err != nil {
        return err
    }
    n, err := result.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrConflict
    }
    return nil
}

// RescheduleTx moves a reservation to a new window.  The caller is
// responsible for the overlap check and for preserving the original
// duration (end = start + total_hours).
func (r *ReservationRepo) RescheduleTx(ctx context.Context, tx *sql.Tx, id uint64, start, end time.Time) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE reservations SET start_at = ?, end_at = ? WHERE id = ?`, start, end, id)
    return err
}

// ListEquipmentLines returns the add-on line items of a reservation.
func (r *ReservationRepo) ListEquipmentLines(ctx context.Context, reservationID uint64) ([]EquipmentLineRecord, error) {
    const q = `SELECT reservation_id, equipment_id, quantity, price_per_day
               FROM reservation_equipment WHERE reservation_id = ? ORDER BY equipment_id`
    rows, err := r.db.QueryContext(ctx, q, reservationID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []EquipmentLineRecord
    for rows.Next() {
        var l EquipmentLineRecord
        if err := rows.Scan(&l.ReservationID, &l.EquipmentID, &l.Quantity, &l.PricePerDay); err != nil {
            return nil, err
        }
        out = append(out, l)
    }
    return out, rows.Err()
}

// ReservationDetail pairs a reservation with display fields from the studio
// row.  It is returned by ListByRenter and ListByHost for listing surfaces.
type ReservationDetail struct {
    ReservationRecord
    StudioName string
    StudioCity string
}

// ListByRenter returns a renter's reservations newest first.
func (r *ReservationRepo) ListByRenter(ctx context.Context, renterID uint64) ([]ReservationDetail, error) {
    const q = `SELECT ` + detailCols + `
               FROM reservations rv JOIN studios s ON s.id = rv.studio_id
               WHERE rv.renter_id = ? ORDER BY rv.id DESC`
    return r.queryDetails(ctx, q, renterID)
}

// ListByHost returns the reservations across all of a host's studios,
// optionally filtered to one stored status value.
func (r *ReservationRepo) ListByHost(ctx context.Context, hostID uint64, status string) ([]ReservationDetail, error) {
    q := `SELECT ` + detailCols + `
          FROM reservations rv JOIN studios s ON s.id = rv.studio_id
          WHERE rv.host_id = ?`
    args := []any{hostID}
    if status != "" {
        q += ` AND rv.status = ?`
        args = append(args, status)
    }
    q += ` ORDER BY rv.id DESC`
    return r.queryDetails(ctx, q, args...)
}

const detailCols = `rv.id, rv.reference, rv.studio_id, rv.renter_id, rv.host_id, rv.start_at, rv.end_at,
    rv.total_hours, rv.subtotal, rv.service_fee, rv.total_amount, rv.host_payout, rv.status,
    rv.payment_status, rv.payment_ref, rv.note, rv.cancelled_by, rv.cancellation_reason,
    rv.created_at, rv.updated_at, s.name, s.city`

func (r *ReservationRepo) queryDetails(ctx context.Context, q string, args ...any) ([]ReservationDetail, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []ReservationDetail
    for rows.Next() {
        var (
            d          ReservationDetail
            paymentRef sql.NullString
            reason     sql.NullString
            cancelled  sql.NullInt64
        )
        err := rows.Scan(&d.ID, &d.Reference, &d.StudioID, &d.RenterID, &d.HostID,
            &d.StartAt, &d.EndAt, &d.TotalHours, &d.Subtotal, &d.ServiceFee,
            &d.TotalAmount, &d.HostPayout, &d.Status, &d.PaymentStatus, &paymentRef,
            &d.Note, &cancelled, &reason, &d.CreatedAt, &d.UpdatedAt,
            &d.StudioName, &d.StudioCity)
        if err != nil {
            return nil, err
        }
        if paymentRef.Valid {
            v := paymentRef.String
            d.PaymentRef = &v
        }
        if reason.Valid {
            v := reason.String
            d.CancellationReason = &v
        }
        if cancelled.Valid {
            v := uint64(cancelled.Int64)
            d.CancelledBy = &v
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// Window is one booked interval, returned by the public availability view.
type Window struct {
    StartAt time.Time `json:"start_at"`
    EndAt   time.Time `json:"end_at"`
}

// ListWindows returns the booked (non-cancelled) windows of a studio that
// intersect [from, to).  Guests use this to pick a free slot before
// booking; no renter identity is exposed.
func (r *ReservationRepo) ListWindows(ctx context.Context, studioID uint64, from, to time.Time) ([]Window, error) {
    const q = `SELECT start_at, end_at FROM reservations
               WHERE studio_id = ? AND status <> 'cancelled'
                 AND NOT (end_at <= ? OR start_at >= ?)
               ORDER BY start_at`
    rows, err := r.db.QueryContext(ctx, q, studioID, from, to)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []Window
    for rows.Next() {
        var w Window
        if err := rows.Scan(&w.StartAt, &w.EndAt); err != nil {
            return nil, err
        }
        out = append(out, w)
    }
    return out, rows.Err()
}
