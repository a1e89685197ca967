// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public browsing API. These routes allow
// unauthenticated users to browse studio listings, equipment catalogs and
// booked-out windows without requiring authentication. Sensitive fields
// (renter identities, payout amounts, host ids) are filtered from responses.

package handler

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/studio-rental-marketplace/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
// It produces sanitized responses suitable for public consumption.
type PublicHandler struct {
    StudioRepo      *repository.StudioRepo      // provides access to studio listings
    EquipmentRepo   *repository.EquipmentRepo   // provides access to add-on catalogs
    ReservationRepo *repository.ReservationRepo // provides access to booked windows
    ReviewRepo      *repository.ReviewRepo      // provides access to reviews
}

// PublicStudio represents a listing exposed via the public API.  It contains
// only safe fields.
type PublicStudio struct {
    ID          uint64  `json:"id"`
    Name        string  `json:"name"`
    Description string  `json:"description,omitempty"`
    Address     string  `json:"address,omitempty"`
    City        string  `json:"city"`
    HourlyRate  float64 `json:"hourly_rate"`
    InstantBook bool    `json:"instant_book"`
    Rating      float64 `json:"rating"`
    ReviewCount uint32  `json:"review_count"`
}

// PublicEquipment represents one catalog item in the renter-facing view.
type PublicEquipment struct {
    ID          uint64  `json:"id"`
    Name        string  `json:"name"`
    PricePerDay float64 `json:"price_per_day"`
}

func toPublicStudio(s repository.Studio) PublicStudio {
    return PublicStudio{
        ID:          s.ID,
        Name:        s.Name,
        Description: s.Description,
        Address:     s.Address,
        City:        s.City,
        HourlyRate:  s.HourlyRate,
        InstantBook: s.InstantBook,
        Rating:      s.Rating,
        ReviewCount: s.ReviewCount,
    }
}

// GetPublicStudios handles GET /v1/studios.  Optional query parameters:
// city filters by city, limit/offset page the result.
func (h *PublicHandler) GetPublicStudios(c echo.Context) error {
    limit, _ := strconv.Atoi(c.QueryParam("limit"))
    offset, _ := strconv.Atoi(c.QueryParam("offset"))
    studios, err := h.StudioRepo.ListActive(c.Request().Context(), c.QueryParam("city"), limit, offset)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicStudio, 0, len(studios))
    for _, s := range studios {
        out = append(out, toPublicStudio(s))
    }
    return c.JSON(http.StatusOK, out)
}

// GetPublicStudio handles GET /v1/studios/:id and returns one listing.
// Inactive listings are hidden from guests.
func (h *PublicHandler) GetPublicStudio(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid studio id"})
    }
    s, err := h.StudioRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        if err == repository.ErrStudioNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "studio not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !s.IsActive {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "studio not found"})
    }
    return c.JSON(http.StatusOK, toPublicStudio(*s))
}

// GetStudioEquipment handles GET /v1/studios/:id/equipment.  It returns the
// active add-on catalog renters choose from when booking.
func (h *PublicHandler) GetStudioEquipment(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid studio id"})
    }
    if _, err := h.StudioRepo.GetByID(c.Request().Context(), id); err != nil {
        if err == repository.ErrStudioNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "studio not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    items, err := h.EquipmentRepo.ListByStudio(c.Request().Context(), id, true)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicEquipment, 0, len(items))
    for _, it := range items {
        out = append(out, PublicEquipment{ID: it.ID, Name: it.Name, PricePerDay: it.PricePerDay})
    }
    return c.JSON(http.StatusOK, out)
}

// GetStudioAvailability handles GET /v1/studios/:id/availability.  It
// returns the booked (non-cancelled) windows intersecting [from, to) so
// guests can pick a free slot.  from/to default to the next 30 days.
func (h *PublicHandler) GetStudioAvailability(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid studio id"})
    }
    now := time.Now().UTC()
    from := now
    to := now.Add(30 * 24 * time.Hour)
    if v := c.QueryParam("from"); v != "" {
        if t, err := time.Parse(time.RFC3339, v); err == nil {
            from = t.UTC()
        }
    }
    if v := c.QueryParam("to"); v != "" {
        if t, err := time.Parse(time.RFC3339, v); err == nil {
            to = t.UTC()
        }
    }
    windows, err := h.ReservationRepo.ListWindows(c.Request().Context(), id, from, to)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if windows == nil {
        windows = []repository.Window{}
    }
    return c.JSON(http.StatusOK, echo.Map{
        "studio_id": id,
        "from":      from.Format(time.RFC3339),
        "to":        to.Format(time.RFC3339),
        "booked":    windows,
    })
}

// GetStudioReviews handles GET /v1/studios/:id/reviews.
func (h *PublicHandler) GetStudioReviews(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid studio id"})
    }
    limit, _ := strconv.Atoi(c.QueryParam("limit"))
    reviews, err := h.ReviewRepo.ListByStudio(c.Request().Context(), id, limit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    type publicReview struct {
        Rating    uint8  `json:"rating"`
        Comment   string `json:"comment,omitempty"`
        CreatedAt string `json:"created_at"`
    }
    out := make([]publicReview, 0, len(reviews))
    for _, rv := range reviews {
        out = append(out, publicReview{Rating: rv.Rating, Comment: rv.Comment, CreatedAt: rv.CreatedAt.Format(time.RFC3339)})
    }
    return c.JSON(http.StatusOK, out)
}
