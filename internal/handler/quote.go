package handler

// quote.go implements the public pricing preview.  A quote prices a
// prospective reservation without persisting anything: the studio's stored
// hourly rate and active equipment catalog are fed to the pricing
// calculator together with the requested duration and selections.  The
// same calculator runs again at creation time, so a quote always matches
// the booking that follows it.

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/studio-rental-marketplace/internal/pricing"
    "github.com/iliyamo/studio-rental-marketplace/internal/repository"
)

// QuoteHandler bundles the lookups a quote needs plus the configured fee
// rate.
type QuoteHandler struct {
    StudioRepo    *repository.StudioRepo
    EquipmentRepo *repository.EquipmentRepo
    FeeRate       float64
}

// NewQuoteHandler constructs a QuoteHandler.  Repositories must be non-nil.
func NewQuoteHandler(studioRepo *repository.StudioRepo, equipmentRepo *repository.EquipmentRepo, feeRate float64) *QuoteHandler {
    if studioRepo == nil || equipmentRepo == nil {
        panic("nil repository passed to NewQuoteHandler")
    }
    return &QuoteHandler{StudioRepo: studioRepo, EquipmentRepo: equipmentRepo, FeeRate: feeRate}
}

type quoteReq struct {
    StudioID      uint64         `json:"studio_id"`
    DurationHours int            `json:"duration_hours"`
    Equipment     map[uint64]int `json:"equipment"` // equipment id -> quantity
}

// Quote handles POST /v1/quote.  It returns the full price breakdown for a
// prospective booking.  Duration and equipment selections are passed
// through to the calculator as-is: unknown equipment ids price at zero and
// zero quantities are ignored, matching the permissive behavior of the
// booking flow itself.
func (h *QuoteHandler) Quote(c echo.Context) error {
    var req quoteReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.StudioID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "studio_id is required"})
    }
    ctx := c.Request().Context()
    studio, err := h.StudioRepo.GetByID(ctx, req.StudioID)
    if err != nil {
        if err == repository.ErrStudioNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "studio not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    catalog, err := h.EquipmentRepo.CatalogFor(ctx, req.StudioID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    b := pricing.Quote(studio.HourlyRate, req.DurationHours, req.Equipment, catalog, h.FeeRate)
    return c.JSON(http.StatusOK, b)
}
