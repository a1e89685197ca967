package repository

import (
    "context"
    "database/sql"
    "time"
)

// Equipment mirrors the schema of the equipment table (per-studio rental
// add-on catalog).
type Equipment struct {
    ID          uint64    `json:"id"`
    StudioID    uint64    `json:"studio_id"`
    Name        string    `json:"name"`
    PricePerDay float64   `json:"price_per_day"`
    IsActive    bool      `json:"is_active"`
    CreatedAt   time.Time `json:"created_at"`
    UpdatedAt   time.Time `json:"updated_at"`
}

// EquipmentRepo provides access to a studio's add-on catalog.  The pricing
// calculator consumes the catalog as a plain id→price map; CatalogFor
// builds that map from active items only.
type EquipmentRepo struct {
    db *sql.DB
}

// NewEquipmentRepo returns a new EquipmentRepo bound to the given database.
func NewEquipmentRepo(db *sql.DB) *EquipmentRepo { return &EquipmentRepo{db: db} }

// Create inserts a catalog item and populates the generated ID.
func (r *EquipmentRepo) Create(ctx context.Context, e *Equipment) error {
    const q = `INSERT INTO equipment (studio_id, name, price_per_day, is_active) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, e.StudioID, e.Name, e.PricePerDay, e.IsActive)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    e.ID = uint64(id)
    return nil
}

// GetByID retrieves one catalog item, returning ErrEquipmentNotFound when
// the row does not exist.
func (r *EquipmentRepo) GetByID(ctx context.Context, id uint64) (*Equipment, error) {
    const q = `SELECT id, studio_id, name, price_per_day, is_active, created_at, updated_at FROM equipment WHERE id = ?`
    var e Equipment
    err := r.db.QueryRowContext(ctx, q, id).Scan(&e.ID, &e.StudioID, &e.Name, &e.PricePerDay, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, ErrEquipmentNotFound
        }
        return nil, err
    }
    return &e, nil
}

// ListByStudio returns the catalog items for a studio.  When activeOnly is
// set, hidden items are excluded (the renter-facing view).
func (r *EquipmentRepo) ListByStudio(ctx context.Context, studioID uint64, activeOnly bool) ([]Equipment, error) {
    q := `SELECT id, studio_id, name, price_per_day, is_active, created_at, updated_at FROM equipment WHERE studio_id = ?`
    if activeOnly {
        q += ` AND is_active = 1`
    }
    q += ` ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, studioID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []Equipment
    for rows.Next() {
        var e Equipment
        if err := rows.Scan(&e.ID, &e.StudioID, &e.Name, &e.PricePerDay, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, e)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// CatalogFor returns the active catalog of a studio as an id→price-per-day
// map, the shape the pricing calculator consumes.
func (r *EquipmentRepo) CatalogFor(ctx context.Context, studioID uint64) (map[uint64]float64, error) {
    items, err := r.ListByStudio(ctx, studioID, true)
    if err != nil {
        return nil, err
    }
    catalog := make(map[uint64]float64, len(items))
    for _, it := range items {
        catalog[it.ID] = it.PricePerDay
    }
    return catalog, nil
}

// UpdateByIDAndHost updates a catalog item after verifying, via a join to
// studios, that the caller owns the parent studio.  Returns
// ErrEquipmentNotFound or ErrForbidden accordingly.
func (r *EquipmentRepo) UpdateByIDAndHost(ctx context.Context, e *Equipment, hostID uint64) error {
    owner, err := r.ownerOf(ctx, e.ID)
    if err != nil {
        return err
    }
    if owner != hostID {
        return ErrForbidden
    }
    const q = `UPDATE equipment SET name = ?, price_per_day = ?, is_active = ? WHERE id = ?`
    _, err = r.db.ExecContext(ctx, q, e.Name, e.PricePerDay, e.IsActive, e.ID)
    return err
}

// DeleteByIDAndHost removes a catalog item owned by the host.  Existing
// reservation line items keep their snapshotted price, so deletion never
// rewrites booking history.
func (r *EquipmentRepo) DeleteByIDAndHost(ctx context.Context, id, hostID uint64) error {
    owner, err := r.ownerOf(ctx, id)
    if err != nil {
        return err
    }
    if owner != hostID {
        return ErrForbidden
    }
    _, err = r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = ?`, id)
    return err
}

func (r *EquipmentRepo) ownerOf(ctx context.Context, equipmentID uint64) (uint64, error) {
    const q = `SELECT s.host_id FROM equipment e JOIN studios s ON s.id = e.studio_id WHERE e.id = ?`
    var hostID uint64
    if err := r.db.QueryRowContext(ctx, q, equipmentID).Scan(&hostID); err != nil {
        if err == sql.ErrNoRows {
            return 0, ErrEquipmentNotFound
        }
        return 0, err
    }
    return hostID, nil
}
