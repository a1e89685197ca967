package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/studio-rental-marketplace/internal/handler"
    "github.com/iliyamo/studio-rental-marketplace/internal/middleware"
)

// RegisterRenter registers renter-scoped endpoints under /v1.  All routes
// require a valid JWT and the RENTER role.  Renters create bookings, view
// their own, and manage their saved studios and reviews.
func RegisterRenter(e *echo.Echo, r *handler.RenterHandler, f *handler.FavoriteHandler, rv *handler.ReviewHandler, jwtSecret string, mws ...echo.MiddlewareFunc) {
    g := e.Group(
        "/v1",
        append([]echo.MiddlewareFunc{
            middleware.JWTAuth(jwtSecret),
            middleware.RequireRole("RENTER"),
        }, mws...)...,
    )

    // Booking creation is renter-only; reads and lifecycle mutations shared
    // with hosts are registered in RegisterShared.
    g.POST("/reservations", r.CreateReservation)
    g.GET("/my-reservations", r.ListReservations)

    // ---- Favorites ----
    g.PUT("/favorites/:studioID", f.AddFavorite)
    g.DELETE("/favorites/:studioID", f.RemoveFavorite)
    g.GET("/favorites", f.ListFavorites)

    // ---- Reviews ----
    g.POST("/reservations/:id/review", rv.CreateReview)
}

// RegisterShared registers reservation endpoints available to both parties
// of a booking: detail view, cancellation, rescheduling and the message
// thread.  Party membership is validated in the handlers.
func RegisterShared(e *echo.Echo, r *handler.RenterHandler, m *handler.MessageHandler, jwtSecret string, mws ...echo.MiddlewareFunc) {
    g := e.Group(
        "/v1",
        append([]echo.MiddlewareFunc{
            middleware.JWTAuth(jwtSecret),
            middleware.RequireRole("RENTER", "HOST"),
        }, mws...)...,
    )

    g.GET("/reservations/:id", r.GetReservation)
    g.POST("/reservations/:id/cancel", r.CancelReservation)
    g.POST("/reservations/:id/reschedule", r.RescheduleReservation)

    // ---- Messages ----
    g.POST("/reservations/:id/messages", m.CreateMessage)
    g.GET("/reservations/:id/messages", m.ListMessages)
}
