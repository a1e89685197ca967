package handler

// public_studio_search.go implements GET /v1/search/studios.  Search is a
// LIKE match over name and description with optional city and price
// filters; results are ranked by rating.  The endpoint is public and sits
// behind the response cache.

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
)

// SearchStudios handles GET /v1/search/studios.  Query parameters:
//   q        – free-text term matched against name and description
//   city     – exact city filter
//   max_rate – maximum hourly rate (inclusive)
//   limit    – maximum number of results (default 50)
func (h *PublicHandler) SearchStudios(c echo.Context) error {
    maxRate, _ := strconv.ParseFloat(c.QueryParam("max_rate"), 64)
    limit, _ := strconv.Atoi(c.QueryParam("limit"))
    studios, err := h.StudioRepo.Search(c.Request().Context(), c.QueryParam("q"), c.QueryParam("city"), maxRate, limit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicStudio, 0, len(studios))
    for _, s := range studios {
        out = append(out, toPublicStudio(s))
    }
    return c.JSON(http.StatusOK, out)
}
