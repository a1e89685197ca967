package handler

import (
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/studio-rental-marketplace/internal/model"
    "github.com/iliyamo/studio-rental-marketplace/internal/queue"
    "github.com/iliyamo/studio-rental-marketplace/internal/repository"
    queue_publisher "github.com/iliyamo/studio-rental-marketplace/internal/service"
)

// HostReservationHandler serves the host's side of the booking lifecycle:
// reviewing incoming requests, accepting or declining them, and reading
// earnings.  Accept and decline only ever move a reservation out of
// pending; anything else is a conflict, including a request the renter
// cancelled moments earlier.
type HostReservationHandler struct {
    ReservationRepo *repository.ReservationRepo
    PayoutRepo      *repository.PayoutRepo
}

// NewHostReservationHandler constructs a HostReservationHandler.
func NewHostReservationHandler(reservationRepo *repository.ReservationRepo, payoutRepo *repository.PayoutRepo) *HostReservationHandler {
    if reservationRepo == nil || payoutRepo == nil {
        panic("nil repository passed to NewHostReservationHandler")
    }
    return &HostReservationHandler{ReservationRepo: reservationRepo, PayoutRepo: payoutRepo}
}

// ListReservations handles GET /v1/host/reservations.  An optional
// ?status= filter narrows by stored status; effective status is still
// derived per row so past confirmed bookings read as completed.
func (h *HostReservationHandler) ListReservations(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    status := strings.TrimSpace(c.QueryParam("status"))
    switch status {
    case "", model.StatusPending, model.StatusConfirmed, model.StatusCancelled, model.StatusCompleted:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
    }
    details, err := h.ReservationRepo.ListByHost(c.Request().Context(), hostID, status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    now := time.Now().UTC()
    out := make([]reservationResp, 0, len(details))
    for i := range details {
        out = append(out, toReservationResp(&details[i].ReservationRecord, details[i].StudioName, now, true))
    }
    return c.JSON(http.StatusOK, out)
}

// AcceptReservation handles POST /v1/host/reservations/:id/accept.  The
// transition pending -> confirmed accrues the host payout and publishes a
// confirmation event after commit.  A reservation in any other state
// returns 409.
func (h *HostReservationHandler) AcceptReservation(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    ctx := c.Request().Context()
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

    rec, err := h.ReservationRepo.GetByIDTx(ctx, tx, id)
    if err != nil {
        if err == repository.ErrReservationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if rec.HostID != hostID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    m := model.Reservation{Status: rec.Status, StartAt: rec.StartAt}
    if !m.CanAcceptOrDecline() {
        return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not pending"})
    }
    err = h.ReservationRepo.UpdateStatusTx(ctx, tx, id, model.StatusConfirmed, nil, nil, model.StatusPending)
    if err != nil {
        if err == repository.ErrConflict {
            return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not pending"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to accept reservation"})
    }
    if err := h.PayoutRepo.CreateTx(ctx, tx, hostID, id, rec.HostPayout); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to accrue payout"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    _ = queue_publisher.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
        ReservationID: rec.ID,
        Reference:     rec.Reference,
        StudioID:      rec.StudioID,
        RenterID:      rec.RenterID,
        HostID:        rec.HostID,
        StartAt:       rec.StartAt.Format(time.RFC3339),
        EndAt:         rec.EndAt.Format(time.RFC3339),
        TotalAmount:   rec.TotalAmount,
        HostPayout:    rec.HostPayout,
        ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.StatusConfirmed})
}

type declineReq struct {
    Reason string `json:"reason"`
}

// DeclineReservation handles POST /v1/host/reservations/:id/decline.  A
// decline is a cancellation initiated by the host and the reason is
// mandatory; because enforcement lives here and not in any client, an
// empty reason is a 400 before the transaction even starts.
func (h *HostReservationHandler) DeclineReservation(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req declineReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    reason := strings.TrimSpace(req.Reason)
    if reason == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason is required"})
    }

    ctx := c.Request().Context()
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

    rec, err := h.ReservationRepo.GetByIDTx(ctx, tx, id)
    if err != nil {
        if err == repository.ErrReservationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if rec.HostID != hostID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    m := model.Reservation{Status: rec.Status, StartAt: rec.StartAt}
    if !m.CanAcceptOrDecline() {
        return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not pending"})
    }
    err = h.ReservationRepo.UpdateStatusTx(ctx, tx, id, model.StatusCancelled, &hostID, &reason, model.StatusPending)
    if err != nil {
        if err == repository.ErrConflict {
            return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not pending"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to decline reservation"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.StatusCancelled, "reason": reason})
}

// Earnings handles GET /v1/host/earnings: an accrued/paid summary plus the
// individual payout rows, newest first.
func (h *HostReservationHandler) Earnings(c echo.Context) error {
    hostID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx := c.Request().Context()
    summary, err := h.PayoutRepo.Earnings(ctx, hostID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    payouts, err := h.PayoutRepo.ListByHost(ctx, hostID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "summary": summary,
        "payouts": payouts,
    })
}
