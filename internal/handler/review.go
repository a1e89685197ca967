package handler

import (
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/studio-rental-marketplace/internal/model"
    "github.com/iliyamo/studio-rental-marketplace/internal/repository"
)

// ReviewHandler lets renters review the studios they actually used.  A
// reservation is reviewable once its window has passed and it was not
// cancelled; one review per reservation.  The insert and the studio's
// aggregate rating update run in the same transaction.
type ReviewHandler struct {
    ReservationRepo *repository.ReservationRepo
    ReviewRepo      *repository.ReviewRepo
    StudioRepo      *repository.StudioRepo
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(reservationRepo *repository.ReservationRepo, reviewRepo *repository.ReviewRepo, studioRepo *repository.StudioRepo) *ReviewHandler {
    if reservationRepo == nil || reviewRepo == nil || studioRepo == nil {
        panic("nil repository passed to NewReviewHandler")
    }
    return &ReviewHandler{ReservationRepo: reservationRepo, ReviewRepo: reviewRepo, StudioRepo: studioRepo}
}

type reviewReq struct {
    Rating  uint8  `json:"rating"`
    Comment string `json:"comment"`
}

// CreateReview handles POST /v1/reservations/:id/review.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
    renterID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || reservationID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req reviewReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Rating < 1 || req.Rating > 5 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
    }

    ctx := c.Request().Context()
    rec, err := h.ReservationRepo.GetByID(ctx, reservationID)
    if err != nil {
        if err == repository.ErrReservationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if rec.RenterID != renterID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    m := model.Reservation{Status: rec.Status, StartAt: rec.StartAt}
    if rec.Status == model.StatusCancelled || !m.IsPast(time.Now().UTC()) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not completed"})
    }

    tx, err := h.ReservationRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    rv := &repository.Review{
        ReservationID: reservationID,
        StudioID:      rec.StudioID,
        RenterID:      renterID,
        Rating:        req.Rating,
        Comment:       strings.TrimSpace(req.Comment),
    }
    if err := h.ReviewRepo.CreateTx(ctx, tx, rv); err != nil {
        if err == repository.ErrConflict {
            return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already reviewed"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
    }
    if err := h.StudioRepo.ApplyReviewTx(ctx, tx, rec.StudioID, req.Rating); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update studio rating"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.JSON(http.StatusCreated, rv)
}
