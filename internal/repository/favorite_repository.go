package repository

import (
    "context"
    "database/sql"
)

// FavoriteRepo persists the renter↔studio saved-listing relation.  Add and
// Remove are idempotent: the unique (renter_id, studio_id) key absorbs
// double-adds, matching the optimistic toggle the clients perform.
type FavoriteRepo struct {
    db *sql.DB
}

// NewFavoriteRepo returns a new FavoriteRepo bound to the given database.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add saves a studio for a renter.  Saving twice is a no-op.
func (r *FavoriteRepo) Add(ctx context.Context, renterID, studioID uint64) error {
    _, err := r.db.ExecContext(ctx,
        `INSERT IGNORE INTO favorites (renter_id, studio_id) VALUES (?, ?)`, renterID, studioID)
    return err
}

// Remove unsaves a studio.  Removing an absent row is a no-op.
func (r *FavoriteRepo) Remove(ctx context.Context, renterID, studioID uint64) error {
    _, err := r.db.ExecContext(ctx,
        `DELETE FROM favorites WHERE renter_id = ? AND studio_id = ?`, renterID, studioID)
    return err
}

// ListStudios returns the renter's saved studios, most recently saved
// first.
func (r *FavoriteRepo) ListStudios(ctx context.Context, renterID uint64) ([]Studio, error) {
    const q = `SELECT s.id, s.host_id, s.name, s.description, s.address, s.city, s.hourly_rate,
                      s.instant_book, s.is_active, s.rating, s.review_count, s.created_at, s.updated_at
               FROM favorites f JOIN studios s ON s.id = f.studio_id
               WHERE f.renter_id = ? ORDER BY f.id DESC`
    rows, err := r.db.QueryContext(ctx, q, renterID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []Studio
    for rows.Next() {
        var s Studio
        if err := scanStudio(rows, &s); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}
