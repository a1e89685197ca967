package handler

import (
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters
    "strings"  // trimming request fields
    "time"     // working with timestamps

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/studio-rental-marketplace/internal/model"
    "github.com/iliyamo/studio-rental-marketplace/internal/pricing"
    "github.com/iliyamo/studio-rental-marketplace/internal/queue"
    "github.com/iliyamo/studio-rental-marketplace/internal/repository"
    queue_publisher "github.com/iliyamo/studio-rental-marketplace/internal/service"
    "github.com/iliyamo/studio-rental-marketplace/internal/utils"
)

// RenterHandler groups the repositories needed to create and manage
// reservations on behalf of renters.  All methods assume that JWT
// authentication and role validation has already been performed by
// middleware.  Each mutating method runs its critical DB operations inside
// a transaction so that the overlap check and the write are atomic.
type RenterHandler struct {
    StudioRepo      *repository.StudioRepo      // studio lookups and instant-book flag
    EquipmentRepo   *repository.EquipmentRepo   // add-on catalog for pricing
    ReservationRepo *repository.ReservationRepo // reservations and their line items
    PayoutRepo      *repository.PayoutRepo      // host earnings accrual/release
    FeeRate         float64                     // renter-facing service fee rate
    CommissionRate  float64                     // platform commission on the host side
}

// NewRenterHandler constructs a new RenterHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewRenterHandler(studioRepo *repository.StudioRepo, equipmentRepo *repository.EquipmentRepo, reservationRepo *repository.ReservationRepo, payoutRepo *repository.PayoutRepo, feeRate, commissionRate float64) *RenterHandler {
    if studioRepo == nil || equipmentRepo == nil || reservationRepo == nil || payoutRepo == nil {
        panic("nil repository passed to NewRenterHandler")
    }
    return &RenterHandler{
        StudioRepo:      studioRepo,
        EquipmentRepo:   equipmentRepo,
        ReservationRepo: reservationRepo,
        PayoutRepo:      payoutRepo,
        FeeRate:         feeRate,
        CommissionRate:  commissionRate,
    }
}

// reservationResp is the JSON shape for a single reservation.  The
// effective status is derived from the clock on every read; the stored
// status never flips to "completed" on its own.
type reservationResp struct {
    ID              uint64            `json:"id"`
    Reference       string            `json:"reference"`
    StudioID        uint64            `json:"studio_id"`
    StudioName      string            `json:"studio_name,omitempty"`
    RenterID        uint64            `json:"renter_id"`
    HostID          uint64            `json:"host_id"`
    StartAt         time.Time         `json:"start_at"`
    EndAt           time.Time         `json:"end_at"`
    TotalHours      uint32            `json:"total_hours"`
    Breakdown       pricing.Breakdown `json:"breakdown"`
    HostPayout      float64           `json:"host_payout,omitempty"`
    Status          string            `json:"status"`
    EffectiveStatus string            `json:"effective_status"`
    PaymentStatus   string            `json:"payment_status"`
    Note            string            `json:"note,omitempty"`
    CancelReason    *string           `json:"cancellation_reason,omitempty"`
}

// toReservationResp converts a repository record into the response shape,
// computing the effective status at the given instant.
func toReservationResp(rec *repository.ReservationRecord, studioName string, now time.Time, includePayout bool) reservationResp {
    m := model.Reservation{Status: rec.Status, StartAt: rec.StartAt}
    resp := reservationResp{
        ID:         rec.ID,
        Reference:  rec.Reference,
        StudioID:   rec.StudioID,
        StudioName: studioName,
        RenterID:   rec.RenterID,
        HostID:     rec.HostID,
        StartAt:    rec.StartAt,
        EndAt:      rec.EndAt,
        TotalHours: rec.TotalHours,
        // Listing surfaces report the persisted totals; the detail
        // endpoint rebuilds the studio/equipment split from line items.
        Breakdown: pricing.Breakdown{
            StudioTotal: rec.Subtotal,
            Subtotal:    rec.Subtotal,
            ServiceFee:  rec.ServiceFee,
            Total:       rec.TotalAmount,
        },
        Status:          rec.Status,
        EffectiveStatus: m.EffectiveStatus(now),
        PaymentStatus:   rec.PaymentStatus,
        Note:            rec.Note,
        CancelReason:    rec.CancellationReason,
    }
    if includePayout {
        resp.HostPayout = rec.HostPayout
    }
    return resp
}

type createReservationReq struct {
    StudioID      uint64         `json:"studio_id"`
    Date          string         `json:"date"` // calendar day, "2006-01-02"
    Slot          string         `json:"slot"` // start-of-hour slot, e.g. "14:00"
    DurationHours int            `json:"duration_hours"`
    Equipment     map[uint64]int `json:"equipment"` // equipment id -> quantity
    Note          string         `json:"note"`
}

// CreateReservation handles POST /v1/reservations.  It prices the request
// with the same pure calculator the quote endpoint uses, generates a
// booking reference, rejects windows that overlap an existing
// non-cancelled reservation for the studio (409), and persists the record
// with its equipment line items in one transaction.  The initial status is
// decided once, here: confirmed when the studio has instant booking
// enabled, pending otherwise.  Instant bookings publish a confirmation
// event after commit.
func (h *RenterHandler) CreateReservation(c echo.Context) error {
    renterID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createReservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.StudioID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "studio_id is required"})
    }
    day, err := time.Parse("2006-01-02", req.Date)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
    }
    hour, ok := parseSlot(req.Slot)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot"})
    }
    if req.DurationHours < 1 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration_hours must be at least 1"})
    }
    start := slotStart(day, hour)
    end := start.Add(time.Duration(req.DurationHours) * time.Hour)

    ctx := c.Request().Context()
    studio, err := h.StudioRepo.GetByID(ctx, req.StudioID)
    if err != nil {
        if err == repository.ErrStudioNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "studio not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !studio.IsActive {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "studio not found"})
    }
    catalog, err := h.EquipmentRepo.CatalogFor(ctx, req.StudioID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    // Price the request.  The calculator tolerates unknown ids and zero
    // quantities; line items below keep only selections that actually
    // priced, snapshotting the catalog price of each.
    breakdown := pricing.Quote(studio.HourlyRate, req.DurationHours, req.Equipment, catalog, h.FeeRate)
    payout := pricing.HostPayout(breakdown.Subtotal, h.CommissionRate)

    reference, err := utils.NewBookingReference(time.Now())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate reference"})
    }

    status := model.StatusPending
    if studio.InstantBook {
        status = model.StatusConfirmed
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

    // Overlap check and insert share the transaction so two concurrent
    // bookings for the same window serialize on the row locks.
    overlapping, err := h.ReservationRepo.FindOverlappingTx(ctx, tx, req.StudioID, 0, start, end)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
    }
    if len(overlapping) > 0 {
        return c.JSON(http.StatusConflict, echo.Map{"error": "studio is already booked for this window"})
    }

    // The payment reference doubles as the idempotency key handed to the
    // payment provider when the charge is initiated.
    paymentRef := uuid.NewString()

    rec := &repository.ReservationRecord{
        Reference:     reference,
        StudioID:      req.StudioID,
        RenterID:      renterID,
        HostID:        studio.HostID,
        StartAt:       start,
        EndAt:         end,
        TotalHours:    uint32(req.DurationHours),
        Subtotal:      breakdown.Subtotal,
        ServiceFee:    breakdown.ServiceFee,
        TotalAmount:   breakdown.Total,
        HostPayout:    payout,
        Status:        status,
        PaymentStatus: model.PaymentUnpaid,
        PaymentRef:    &paymentRef,
        Note:          strings.TrimSpace(req.Note),
    }
    if err := h.ReservationRepo.CreateTx(ctx, tx, rec); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
    }

    lines := make([]repository.EquipmentLineRecord, 0, len(req.Equipment))
    for id, qty := range req.Equipment {
        price, known := catalog[id]
        if qty <= 0 || !known {
            continue // pruned: zero quantities and unknown ids never persist
        }
        lines = append(lines, repository.EquipmentLineRecord{
            ReservationID: rec.ID,
            EquipmentID:   id,
            Quantity:      uint32(qty),
            PricePerDay:   price,
        })
    }
    if err := h.ReservationRepo.CreateEquipmentBulkTx(ctx, tx, lines); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation equipment"})
    }

    // Instant bookings are already confirmed, so the host payout accrues
    // in the same transaction.
    if status == model.StatusConfirmed {
        if err := h.PayoutRepo.CreateTx(ctx, tx, studio.HostID, rec.ID, payout); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to accrue payout"})
        }
    }

    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    if status == model.StatusConfirmed {
        // Publish after commit; delivery failures are logged by the
        // publisher and never fail the booking.
        _ = queue_publisher.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
            ReservationID: rec.ID,
            Reference:     rec.Reference,
            StudioID:      studio.ID,
            StudioName:    studio.Name,
            RenterID:      renterID,
            HostID:        studio.HostID,
            StartAt:       start.Format(time.RFC3339),
            EndAt:         end.Format(time.RFC3339),
            TotalAmount:   breakdown.Total,
            HostPayout:    payout,
            ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
        })
    }

    resp := toReservationResp(rec, studio.Name, time.Now().UTC(), false)
    resp.Breakdown = breakdown
    return c.JSON(http.StatusCreated, resp)
}

// ListReservations handles GET /v1/reservations.  It returns the current
// renter's reservations newest first, each with its derived effective
// status.
func (h *RenterHandler) ListReservations(c echo.Context) error {
    renterID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    details, err := h.ReservationRepo.ListByRenter(c.Request().Context(), renterID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    now := time.Now().UTC()
    out := make([]reservationResp, 0, len(details))
    for i := range details {
        out = append(out, toReservationResp(&details[i].ReservationRecord, details[i].StudioName, now, false))
    }
    return c.JSON(http.StatusOK, out)
}

// GetReservation handles GET /v1/reservations/:id.  Both parties to the
// booking may read it; anyone else receives 403.  The response includes
// the exact equipment split rebuilt from the persisted line items.
func (h *RenterHandler) GetReservation(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    ctx := c.Request().Context()
    rec, err := h.ReservationRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrReservationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if rec.RenterID != userID && rec.HostID != userID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    lines, err := h.ReservationRepo.ListEquipmentLines(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    var equipmentTotal float64
    type lineResp struct {
        EquipmentID uint64  `json:"equipment_id"`
        Quantity    uint32  `json:"quantity"`
        PricePerDay float64 `json:"price_per_day"`
    }
    lineOut := make([]lineResp, 0, len(lines))
    for _, l := range lines {
        equipmentTotal += l.PricePerDay * float64(l.Quantity)
        lineOut = append(lineOut, lineResp{EquipmentID: l.EquipmentID, Quantity: l.Quantity, PricePerDay: l.PricePerDay})
    }
    resp := toReservationResp(rec, "", time.Now().UTC(), rec.HostID == userID)
    resp.Breakdown.EquipmentTotal = equipmentTotal
    resp.Breakdown.StudioTotal = rec.Subtotal - equipmentTotal
    return c.JSON(http.StatusOK, echo.Map{
        "reservation": resp,
        "equipment":   lineOut,
    })
}

type cancelReq struct {
    Reason string `json:"reason"`
}

// CancelReservation handles POST /v1/reservations/:id/cancel.  Either
// party may cancel any reservation that is not already cancelled; the
// optional reason is stored as free text.  Cancelling a confirmed booking
// releases its accrued host payout.
func (h *RenterHandler) CancelReservation(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req cancelReq
    _ = c.Bind(&req)
    reason := strings.TrimSpace(req.Reason)

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
    if rec.RenterID != userID && rec.HostID != userID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    m := model.Reservation{Status: rec.Status, StartAt: rec.StartAt}
    if !m.CanCancel() {
        return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is already cancelled"})
    }

    var reasonPtr *string
    if reason != "" {
        reasonPtr = &reason
    }
    err = h.ReservationRepo.UpdateStatusTx(ctx, tx, id, model.StatusCancelled, &userID, reasonPtr,
        model.StatusPending, model.StatusConfirmed, model.StatusCompleted)
    if err != nil {
        if err == repository.ErrConflict {
            return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is already cancelled"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
    }
    if err := h.PayoutRepo.CancelByReservationTx(ctx, tx, id); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to release payout"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.StatusCancelled})
}

type rescheduleReq struct {
    Date string `json:"date"` // new calendar day, "2006-01-02"
    Slot string `json:"slot"` // new start-of-hour slot
}

// RescheduleReservation handles POST /v1/reservations/:id/reschedule.  The
// new day must not be before the current date and the slot must come from
// the fixed slot list.  The original duration is preserved: the new end is
// the new start plus the reservation's total hours.  The move is rejected
// with 409 when the new window overlaps another non-cancelled reservation
// for the same studio.
func (h *RenterHandler) RescheduleReservation(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req rescheduleReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    day, err := time.Parse("2006-01-02", req.Date)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
    }
    today := time.Now().UTC().Truncate(24 * time.Hour)
    if day.Before(today) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must not be in the past"})
    }
    hour, ok := parseSlot(req.Slot)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot"})
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
    if rec.RenterID != userID && rec.HostID != userID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    if rec.Status == model.StatusCancelled {
        return c.JSON(http.StatusConflict, echo.Map{"error": "cancelled reservations cannot be rescheduled"})
    }

    start := slotStart(day, hour)
    end := start.Add(time.Duration(rec.TotalHours) * time.Hour)

    overlapping, err := h.ReservationRepo.FindOverlappingTx(ctx, tx, rec.StudioID, id, start, end)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
    }
    if len(overlapping) > 0 {
        return c.JSON(http.StatusConflict, echo.Map{"error": "studio is already booked for this window"})
    }
    if err := h.ReservationRepo.RescheduleTx(ctx, tx, id, start, end); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reschedule reservation"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.JSON(http.StatusOK, echo.Map{
        "id":       id,
        "start_at": start.Format(time.RFC3339),
        "end_at":   end.Format(time.RFC3339),
    })
}
