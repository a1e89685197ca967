package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/studio-rental-marketplace/internal/repository"
)

// FavoriteHandler serves the renter's saved-studio list.
type FavoriteHandler struct {
    FavoriteRepo *repository.FavoriteRepo
    StudioRepo   *repository.StudioRepo
}

// NewFavoriteHandler constructs a FavoriteHandler.
func NewFavoriteHandler(favoriteRepo *repository.FavoriteRepo, studioRepo *repository.StudioRepo) *FavoriteHandler {
    if favoriteRepo == nil || studioRepo == nil {
        panic("nil repository passed to NewFavoriteHandler")
    }
    return &FavoriteHandler{FavoriteRepo: favoriteRepo, StudioRepo: studioRepo}
}

// AddFavorite handles PUT /v1/favorites/:studioID.  Saving the same studio
// twice is a no-op.
func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
    renterID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    studioID, err := strconv.ParseUint(c.Param("studioID"), 10, 64)
    if err != nil || studioID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid studio id"})
    }
    ctx := c.Request().Context()
    if _, err := h.StudioRepo.GetByID(ctx, studioID); err != nil {
        if err == repository.ErrStudioNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "studio not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := h.FavoriteRepo.Add(ctx, renterID, studioID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save favorite"})
    }
    return c.JSON(http.StatusOK, echo.Map{"studio_id": studioID, "favorited": true})
}

// RemoveFavorite handles DELETE /v1/favorites/:studioID.
func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
    renterID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    studioID, err := strconv.ParseUint(c.Param("studioID"), 10, 64)
    if err != nil || studioID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid studio id"})
    }
    if err := h.FavoriteRepo.Remove(c.Request().Context(), renterID, studioID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to remove favorite"})
    }
    return c.NoContent(http.StatusNoContent)
}

// ListFavorites handles GET /v1/favorites and returns the saved studios.
func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
    renterID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    studios, err := h.FavoriteRepo.ListStudios(c.Request().Context(), renterID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, studios)
}
