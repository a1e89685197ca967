package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/studio-rental-marketplace/internal/repository"
)

// HostStudioHandler serves the host's listing management surface: creating
// and editing studios and their add-on equipment catalogs.  Ownership is
// enforced in the repository layer (writes match on host_id and return
// ErrForbidden when the row belongs to someone else).
type HostStudioHandler struct {
    StudioRepo    *repository.StudioRepo
    EquipmentRepo *repository.EquipmentRepo
}

// NewHostStudioHandler constructs a HostStudioHandler.
func NewHostStudioHandler(studioRepo *repository.StudioRepo, equipmentRepo *repository.EquipmentRepo) *HostStudioHandler {
    if studioRepo == nil || equipmentRepo == nil {
        panic("nil repository passed to NewHostStudioHandler")
    }
    return &HostStudioHandler{StudioRepo: studioRepo, EquipmentRepo: equipmentRepo}
}

type studioReq struct {
    Name        string  `json:"name"`
    Description string  `json:"description"`
    Address     string  `json:"address"`
    City        string  `json:"city"`
    HourlyRate  float64 `json:"hourly_rate"`
    InstantBook bool    `json:"instant_book"`
    IsActive    *bool   `json:"is_active"` // nil on create means active
}

func (r *studioReq) validate() string {
    r.Name = strings.TrimSpace(r.Name)
    r.City = strings.TrimSpace(r.City)
    if r.Name == "" {
        return "name is required"
    }
    if r.City == "" {
        return "city is required"
    }
    if r.HourlyRate <= 0 {
        return "hourly_rate must be positive"
    }
    return ""
}

// CreateStudio handles POST /v1/host/studios.
func (h *HostStudioHandler) CreateStudio(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req studioReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := req.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    active := true
    if req.IsActive != nil {
        active = *req.IsActive
    }
    s := &repository.Studio{
        HostID:      hostID,
        Name:        req.Name,
        Description: strings.TrimSpace(req.Description),
        Address:     strings.TrimSpace(req.Address),
        City:        req.City,
        HourlyRate:  req.HourlyRate,
        InstantBook: req.InstantBook,
        IsActive:    active,
    }
    if err := h.StudioRepo.Create(c.Request().Context(), s); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create studio"})
    }
    return c.JSON(http.StatusCreated, s)
}

// UpdateStudio handles PUT /v1/host/studios/:id.  Only the owning host may
// edit; a mismatch returns 403.
func (h *HostStudioHandler) UpdateStudio(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid studio id"})
    }
    var req studioReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := req.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    active := true
    if req.IsActive != nil {
        active = *req.IsActive
    }
    s := &repository.Studio{
        ID:          id,
        Name:        req.Name,
        Description: strings.TrimSpace(req.Description),
        Address:     strings.TrimSpace(req.Address),
        City:        req.City,
        HourlyRate:  req.HourlyRate,
        InstantBook: req.InstantBook,
        IsActive:    active,
    }
    err = h.StudioRepo.UpdateByIDAndHost(c.Request().Context(), s, hostID)
    switch err {
    case nil:
        return c.JSON(http.StatusOK, s)
    case repository.ErrStudioNotFound:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "studio not found"})
    case repository.ErrForbidden:
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update studio"})
    }
}

// ListStudios handles GET /v1/host/studios and returns all of the host's
// listings, inactive ones included.
func (h *HostStudioHandler) ListStudios(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    studios, err := h.StudioRepo.ListByHost(c.Request().Context(), hostID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, studios)
}

type equipmentReq struct {
    Name        string  `json:"name"`
    PricePerDay float64 `json:"price_per_day"`
    IsActive    *bool   `json:"is_active"`
}

// CreateEquipment handles POST /v1/host/studios/:id/equipment.  Ownership
// of the studio is checked before the insert.
func (h *HostStudioHandler) CreateEquipment(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    studioID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || studioID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid studio id"})
    }
    var req equipmentReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    if req.PricePerDay < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_per_day must not be negative"})
    }
    ctx := c.Request().Context()
    studio, err := h.StudioRepo.GetByID(ctx, studioID)
    if err != nil {
        if err == repository.ErrStudioNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "studio not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if studio.HostID != hostID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    active := true
    if req.IsActive != nil {
        active = *req.IsActive
    }
    e := &repository.Equipment{
        StudioID:    studioID,
        Name:        req.Name,
        PricePerDay: req.PricePerDay,
        IsActive:    active,
    }
    if err := h.EquipmentRepo.Create(ctx, e); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create equipment"})
    }
    return c.JSON(http.StatusCreated, e)
}

// UpdateEquipment handles PUT /v1/host/equipment/:id.
func (h *HostStudioHandler) UpdateEquipment(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid equipment id"})
    }
    var req equipmentReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    if req.PricePerDay < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_per_day must not be negative"})
    }
    active := true
    if req.IsActive != nil {
        active = *req.IsActive
    }
    e := &repository.Equipment{ID: id, Name: req.Name, PricePerDay: req.PricePerDay, IsActive: active}
    err = h.EquipmentRepo.UpdateByIDAndHost(c.Request().Context(), e, hostID)
    switch err {
    case nil:
        return c.JSON(http.StatusOK, e)
    case repository.ErrEquipmentNotFound:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "equipment not found"})
    case repository.ErrForbidden:
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update equipment"})
    }
}

// DeleteEquipment handles DELETE /v1/host/equipment/:id.  Prices already
// snapshotted on reservation line items are unaffected.
func (h *HostStudioHandler) DeleteEquipment(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid equipment id"})
    }
    err = h.EquipmentRepo.DeleteByIDAndHost(c.Request().Context(), id, hostID)
    switch err {
    case nil:
        return c.NoContent(http.StatusNoContent)
    case repository.ErrEquipmentNotFound:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "equipment not found"})
    case repository.ErrForbidden:
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete equipment"})
    }
}
