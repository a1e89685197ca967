package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/studio-rental-marketplace/internal/repository"
)

// MessageHandler serves the per-reservation message thread.  A thread is
// visible only to the two parties of its reservation.
type MessageHandler struct {
    ReservationRepo *repository.ReservationRepo
    MessageRepo     *repository.MessageRepo
}

// NewMessageHandler constructs a MessageHandler.
func NewMessageHandler(reservationRepo *repository.ReservationRepo, messageRepo *repository.MessageRepo) *MessageHandler {
    if reservationRepo == nil || messageRepo == nil {
        panic("nil repository passed to NewMessageHandler")
    }
    return &MessageHandler{ReservationRepo: reservationRepo, MessageRepo: messageRepo}
}

// partyOf loads the reservation and verifies the user is one of its two
// parties.  It writes the error response itself and returns false when the
// caller should stop.
func (h *MessageHandler) partyOf(c echo.Context, reservationID, userID uint64) bool {
    rec, err := h.ReservationRepo.GetByID(c.Request().Context(), reservationID)
    if err != nil {
        if err == repository.ErrReservationNotFound {
            _ = c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        } else {
            _ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        return false
    }
    if rec.RenterID != userID && rec.HostID != userID {
        _ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        return false
    }
    return true
}

type messageReq struct {
    Body string `json:"body"`
}

// CreateMessage handles POST /v1/reservations/:id/messages.
func (h *MessageHandler) CreateMessage(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || reservationID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req messageReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    body := strings.TrimSpace(req.Body)
    if body == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "body is required"})
    }
    if !h.partyOf(c, reservationID, userID) {
        return nil
    }
    m := &repository.Message{ReservationID: reservationID, SenderID: userID, Body: body}
    if err := h.MessageRepo.Create(c.Request().Context(), m); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send message"})
    }
    return c.JSON(http.StatusCreated, m)
}

// ListMessages handles GET /v1/reservations/:id/messages, oldest first.
func (h *MessageHandler) ListMessages(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || reservationID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    if !h.partyOf(c, reservationID, userID) {
        return nil
    }
    messages, err := h.MessageRepo.ListByReservation(c.Request().Context(), reservationID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, messages)
}
