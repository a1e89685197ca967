package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // Loads .env files into the environment
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/studio-rental-marketplace/internal/config"
    "github.com/iliyamo/studio-rental-marketplace/internal/database"
    "github.com/iliyamo/studio-rental-marketplace/internal/handler"
    "github.com/iliyamo/studio-rental-marketplace/internal/middleware"
    "github.com/iliyamo/studio-rental-marketplace/internal/queue"
    "github.com/iliyamo/studio-rental-marketplace/internal/repository"
    "github.com/iliyamo/studio-rental-marketplace/internal/router"
)

func main() {
    // A missing .env is fine in production where the environment is set
    // by the deployment.
    _ = godotenv.Load()

    cfg := config.Load() // Load environment config

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis backs the rate limiter and the response cache.  Both degrade
    // to pass-through when the client is nil.
    rdb := config.NewRedisClient()

    // Repositories
    userRepo := repository.NewUserRepo(db)
    tokenRepo := repository.NewTokenRepo(db)
    studioRepo := repository.NewStudioRepo(db)
    equipmentRepo := repository.NewEquipmentRepo(db)
    reservationRepo := repository.NewReservationRepo(db)
    payoutRepo := repository.NewPayoutRepo(db)
    messageRepo := repository.NewMessageRepo(db)
    reviewRepo := repository.NewReviewRepo(db)
    favoriteRepo := repository.NewFavoriteRepo(db)

    // Handlers
    authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
    publicHandler := &handler.PublicHandler{
        StudioRepo:      studioRepo,
        EquipmentRepo:   equipmentRepo,
        ReservationRepo: reservationRepo,
        ReviewRepo:      reviewRepo,
    }
    quoteHandler := handler.NewQuoteHandler(studioRepo, equipmentRepo, cfg.FeeRate)
    renterHandler := handler.NewRenterHandler(studioRepo, equipmentRepo, reservationRepo, payoutRepo, cfg.FeeRate, cfg.CommissionRate)
    hostStudioHandler := handler.NewHostStudioHandler(studioRepo, equipmentRepo)
    hostReservationHandler := handler.NewHostReservationHandler(reservationRepo, payoutRepo)
    favoriteHandler := handler.NewFavoriteHandler(favoriteRepo, studioRepo)
    messageHandler := handler.NewMessageHandler(reservationRepo, messageRepo)
    reviewHandler := handler.NewReviewHandler(reservationRepo, reviewRepo, studioRepo)

    e := echo.New() // Create Echo instance

    // The rate limiter covers every route; the response cache only the
    // public browse surface.
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
    cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authHandler, cfg.JWTSecret)
    router.RegisterPublic(e, publicHandler, quoteHandler, cacheMW)
    router.RegisterRenter(e, renterHandler, favoriteHandler, reviewHandler, cfg.JWTSecret)
    router.RegisterShared(e, renterHandler, messageHandler, cfg.JWTSecret)
    router.RegisterHost(e, hostStudioHandler, hostReservationHandler, cfg.JWTSecret)

    // Background consumer for confirmation events.  It reconnects on
    // failure and never stops the server.
    go func() {
        if err := queue.StartReservationConsumer(); err != nil {
            log.Printf("reservation consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
