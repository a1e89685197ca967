package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/iliyamo/studio-rental-marketplace/internal/handler"    // import the handlers that implement business logic
    "github.com/iliyamo/studio-rental-marketplace/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitoring poll this endpoint.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    // Operations that do not require an existing session: register, login
    // and the two refresh variants.
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Refresh rotates the refresh token; refresh-access issues a new access
    // token without rotating.
    g.POST("/refresh", a.Refresh)
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout accepts a refresh token in the body (or a bearer token) and
    // invalidates the session; no JWT middleware required.
    g.POST("/logout", a.Logout)

    // Authenticated identity endpoint shared by both roles.
    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole("RENTER", "HOST"))
    auth.GET("/me", a.Me)

    // Alias so clients can call /v1/logout as well as /v1/auth/logout.
    e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints: studio
// listings, catalogs, availability windows, reviews, search and the pricing
// preview.  Responses are sanitized for guests; no JWT or role middleware
// is applied.  The optional cache middleware (Redis-backed, see
// middleware.NewRedisCache) can be attached by the caller via mws.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, q *handler.QuoteHandler, mws ...echo.MiddlewareFunc) {
    g := e.Group("", mws...)
    // Browse active listings, optionally filtered by ?city=
    g.GET("/v1/studios", p.GetPublicStudios)
    // Detail view of a single active listing
    g.GET("/v1/studios/:id", p.GetPublicStudio)
    // A studio's active add-on catalog
    g.GET("/v1/studios/:id/equipment", p.GetStudioEquipment)
    // Booked-out windows so guests can see availability before registering
    g.GET("/v1/studios/:id/availability", p.GetStudioAvailability)
    // A studio's reviews, newest first
    g.GET("/v1/studios/:id/reviews", p.GetStudioReviews)
    // Keyword/city/rate search over active listings
    g.GET("/v1/search/studios", p.SearchStudios)
    // Pricing preview: same calculator the booking flow uses, no side effects.
    // POST because the selection payload is structured; never cached.
    e.POST("/v1/quote", q.Quote)
}
