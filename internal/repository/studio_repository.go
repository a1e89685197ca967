package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"
)

// Studio mirrors the schema of the studios table.  It is used by the
// repository when constructing or scanning rows.
type Studio struct {
    ID          uint64    `json:"id"`
    HostID      uint64    `json:"host_id"`
    Name        string    `json:"name"`
    Description string    `json:"description,omitempty"`
    Address     string    `json:"address,omitempty"`
    City        string    `json:"city"`
    HourlyRate  float64   `json:"hourly_rate"`
    InstantBook bool      `json:"instant_book"`
    IsActive    bool      `json:"is_active"`
    Rating      float64   `json:"rating"`
    ReviewCount uint32    `json:"review_count"`
    CreatedAt   time.Time `json:"created_at"`
    UpdatedAt   time.Time `json:"updated_at"`
}

// StudioRepo provides CRUD operations for studio listings.  All timestamp
// fields are assumed to be stored in UTC.
type StudioRepo struct {
    db *sql.DB
}

// NewStudioRepo returns a new StudioRepo bound to the given database.
func NewStudioRepo(db *sql.DB) *StudioRepo { return &StudioRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span multiple repositories.
func (r *StudioRepo) DB() *sql.DB { return r.db }

const studioCols = `id, host_id, name, description, address, city, hourly_rate, instant_book, is_active, rating, review_count, created_at, updated_at`

func scanStudio(row interface{ Scan(...any) error }, s *Studio) error {
    return row.Scan(&s.ID, &s.HostID, &s.Name, &s.Description, &s.Address, &s.City,
        &s.HourlyRate, &s.InstantBook, &s.IsActive, &s.Rating, &s.ReviewCount,
        &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a new studio listing and populates the generated ID and
// timestamps on the provided record.
func (r *StudioRepo) Create(ctx context.Context, s *Studio) error {
    const q = `INSERT INTO studios (host_id, name, description, address, city, hourly_rate, instant_book, is_active)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, s.HostID, s.Name, s.Description, s.Address, s.City,
        s.HourlyRate, s.InstantBook, s.IsActive)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    // Query back the full row to populate timestamps and defaults
    return scanStudio(r.db.QueryRowContext(ctx, `SELECT `+studioCols+` FROM studios WHERE id = ?`, s.ID), s)
}

// GetByID retrieves a studio by its ID.  It returns ErrStudioNotFound if
// the row does not exist.
func (r *StudioRepo) GetByID(ctx context.Context, id uint64) (*Studio, error) {
    var s Studio
    err := scanStudio(r.db.QueryRowContext(ctx, `SELECT `+studioCols+` FROM studios WHERE id = ?`, id), &s)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, ErrStudioNotFound
        }
        return nil, err
    }
    return &s, nil
}

// ListActive returns active listings, optionally filtered by city, in a
// stable newest-first order.  limit/offset implement paging; a limit of 0
// falls back to 50.
func (r *StudioRepo) ListActive(ctx context.Context, city string, limit, offset int) ([]Studio, error) {
    if limit <= 0 {
        limit = 50
    }
    q := `SELECT ` + studioCols + ` FROM studios WHERE is_active = 1`
    args := []any{}
    if city = strings.TrimSpace(city); city != "" {
        q += ` AND city = ?`
        args = append(args, city)
    }
    q += ` ORDER BY id DESC LIMIT ? OFFSET ?`
    args = append(args, limit, offset)
    return r.queryStudios(ctx, q, args...)
}

// ListByHost returns every listing owned by the given host, newest first,
// including inactive ones so hosts can manage hidden listings.
func (r *StudioRepo) ListByHost(ctx context.Context, hostID uint64) ([]Studio, error) {
    const q = `SELECT ` + studioCols + ` FROM studios WHERE host_id = ? ORDER BY id DESC`
    return r.queryStudios(ctx, q, hostID)
}

// Search performs a LIKE search over name and description, with optional
// city and maximum hourly rate filters.  Only active listings are returned.
func (r *StudioRepo) Search(ctx context.Context, term, city string, maxRate float64, limit int) ([]Studio, error) {
    if limit <= 0 {
        limit = 50
    }
    q := `SELECT ` + studioCols + ` FROM studios WHERE is_active = 1`
    args := []any{}
    if term = strings.TrimSpace(term); term != "" {
        q += ` AND (name LIKE ? OR description LIKE ?)`
        pat := "%" + term + "%"
        args = append(args, pat, pat)
    }
    if city = strings.TrimSpace(city); city != "" {
        q += ` AND city = ?`
        args = append(args, city)
    }
    if maxRate > 0 {
        q += ` AND hourly_rate <= ?`
        args = append(args, maxRate)
    }
    q += ` ORDER BY rating DESC, id DESC LIMIT ?`
    args = append(args, limit)
    return r.queryStudios(ctx, q, args...)
}

// UpdateByIDAndHost updates listing attributes when the studio belongs to
// the given host.  It returns ErrStudioNotFound when the studio does not
// exist and ErrForbidden when it is owned by someone else.
func (r *StudioRepo) UpdateByIDAndHost(ctx context.Context, s *Studio, hostID uint64) error {
    existing, err := r.GetByID(ctx, s.ID)
    if err != nil {
        return err
    }
    if existing.HostID != hostID {
        return ErrForbidden
    }
    const q = `UPDATE studios SET name = ?, description = ?, address = ?, city = ?,
               hourly_rate = ?, instant_book = ?, is_active = ? WHERE id = ?`
    _, err = r.db.ExecContext(ctx, q, s.Name, s.Description, s.Address, s.City,
        s.HourlyRate, s.InstantBook, s.IsActive, s.ID)
    return err
}

// ApplyReviewTx folds a new review rating into the studio's aggregate
// rating and count inside an existing transaction.  The running average is
// recomputed from the stored aggregate rather than re-scanning reviews.
func (r *StudioRepo) ApplyReviewTx(ctx context.Context, tx *sql.Tx, studioID uint64, rating uint8) error {
    const q = `UPDATE studios
               SET rating = ((rating * review_count) + ?) / (review_count + 1),
                   review_count = review_count + 1
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, rating, studioID)
    return err
}

func (r *StudioRepo) queryStudios(ctx context.Context, q string, args ...any) ([]Studio, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
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
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
