package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"
)

// Review mirrors the reviews table.  One review per reservation.
type Review struct {
    ID            uint64    `json:"id"`
    ReservationID uint64    `json:"reservation_id"`
    StudioID      uint64    `json:"studio_id"`
    RenterID      uint64    `json:"renter_id"`
    Rating        uint8     `json:"rating"`
    Comment       string    `json:"comment,omitempty"`
    CreatedAt     time.Time `json:"created_at"`
}

// ReviewRepo persists studio reviews.  The studio's aggregate rating is
// maintained by StudioRepo.ApplyReviewTx within the same transaction as
// the insert.
type ReviewRepo struct {
    db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// CreateTx inserts a review inside an existing transaction.  The unique
// key on reservation_id makes a second review for the same booking fail;
// that duplicate surfaces as ErrConflict.
func (r *ReviewRepo) CreateTx(ctx context.Context, tx *sql.Tx, rv *Review) error {
    res, err := tx.ExecContext(ctx,
        `INSERT INTO reviews (reservation_id, studio_id, renter_id, rating, comment) VALUES (?, ?, ?, ?, ?)`,
        rv.ReservationID, rv.StudioID, rv.RenterID, rv.Rating, rv.Comment)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrConflict
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rv.ID = uint64(id)
    return nil
}

// ListByStudio returns a studio's reviews newest first.
func (r *ReviewRepo) ListByStudio(ctx context.Context, studioID uint64, limit int) ([]Review, error) {
    if limit <= 0 {
        limit = 50
    }
    const q = `SELECT id, reservation_id, studio_id, renter_id, rating, comment, created_at
               FROM reviews WHERE studio_id = ? ORDER BY id DESC LIMIT ?`
    rows, err := r.db.QueryContext(ctx, q, studioID, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []Review
    for rows.Next() {
        var rv Review
        if err := rows.Scan(&rv.ID, &rv.ReservationID, &rv.StudioID, &rv.RenterID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, rv)
    }
    return out, rows.Err()
}
