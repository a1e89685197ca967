package router // router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/studio-rental-marketplace/internal/handler"    // host handlers
    "github.com/iliyamo/studio-rental-marketplace/internal/middleware" // JWT + role middlewares
)

// RegisterHost registers HOST-scoped endpoints under /v1/host.
// All routes require a valid JWT and HOST role.
func RegisterHost(e *echo.Echo, s *handler.HostStudioHandler, r *handler.HostReservationHandler, jwtSecret string, mws ...echo.MiddlewareFunc) {
    // Attach middlewares at group construction time for clarity.
    g := e.Group(
        "/v1/host",
        append([]echo.MiddlewareFunc{
            middleware.JWTAuth(jwtSecret),
            middleware.RequireRole("HOST"),
        }, mws...)...,
    )

    // ---- Studios ----
    g.POST("/studios", s.CreateStudio)
    g.GET("/studios", s.ListStudios) // includes inactive listings, unlike the public browse API
    g.PUT("/studios/:id", s.UpdateStudio)
    g.PATCH("/studios/:id", s.UpdateStudio) // allow partial/semantic updates via PATCH as well

    // ---- Equipment ----
    g.POST("/studios/:id/equipment", s.CreateEquipment)
    g.PUT("/equipment/:id", s.UpdateEquipment)
    g.PATCH("/equipment/:id", s.UpdateEquipment)
    g.DELETE("/equipment/:id", s.DeleteEquipment)

    // ---- Reservations ----
    g.GET("/reservations", r.ListReservations) // optional ?status= filter
    g.POST("/reservations/:id/accept", r.AcceptReservation)
    g.POST("/reservations/:id/decline", r.DeclineReservation)

    // ---- Earnings ----
    g.GET("/earnings", r.Earnings)
}
