package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/studio-rental-marketplace/internal/repository"
)

// newTestContext builds an echo context carrying an authenticated user, the
// way the JWT middleware would.  Requests never reach a repository in these
// tests; they exercise the validation that runs first.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", uint64(7))
    return c, rec
}

func TestDeclineRequiresReason(t *testing.T) {
    h := NewHostReservationHandler(repository.NewReservationRepo(nil), repository.NewPayoutRepo(nil))

    for _, body := range []string{`{}`, `{"reason":""}`, `{"reason":"   "}`} {
        c, rec := newTestContext(t, http.MethodPost, "/v1/host/reservations/5/decline", body)
        c.SetParamNames("id")
        c.SetParamValues("5")
        if err := h.DeclineReservation(c); err != nil {
            t.Fatalf("handler error: %v", err)
        }
        if rec.Code != http.StatusBadRequest {
            t.Errorf("body %s: status = %d, want 400", body, rec.Code)
        }
    }
}

func TestDeclineRejectsBadID(t *testing.T) {
    h := NewHostReservationHandler(repository.NewReservationRepo(nil), repository.NewPayoutRepo(nil))
    c, rec := newTestContext(t, http.MethodPost, "/v1/host/reservations/abc/decline", `{"reason":"double booked"}`)
    c.SetParamNames("id")
    c.SetParamValues("abc")
    if err := h.DeclineReservation(c); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Errorf("status = %d, want 400", rec.Code)
    }
}

func TestCreateReservationValidation(t *testing.T) {
    h := NewRenterHandler(repository.NewStudioRepo(nil), repository.NewEquipmentRepo(nil),
        repository.NewReservationRepo(nil), repository.NewPayoutRepo(nil), 0.10, 0.15)

    cases := []struct {
        name string
        body string
    }{
        {"missing studio", `{"date":"2026-09-10","slot":"14:00","duration_hours":2}`},
        {"bad date", `{"studio_id":1,"date":"10/09/2026","slot":"14:00","duration_hours":2}`},
        {"slot off grid", `{"studio_id":1,"date":"2026-09-10","slot":"14:30","duration_hours":2}`},
        {"slot before opening", `{"studio_id":1,"date":"2026-09-10","slot":"07:00","duration_hours":2}`},
        {"zero duration", `{"studio_id":1,"date":"2026-09-10","slot":"14:00","duration_hours":0}`},
        {"negative duration", `{"studio_id":1,"date":"2026-09-10","slot":"14:00","duration_hours":-3}`},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c, rec := newTestContext(t, http.MethodPost, "/v1/reservations", tc.body)
            if err := h.CreateReservation(c); err != nil {
                t.Fatalf("handler error: %v", err)
            }
            if rec.Code != http.StatusBadRequest {
                t.Errorf("status = %d, want 400", rec.Code)
            }
        })
    }
}

func TestRescheduleValidation(t *testing.T) {
    h := NewRenterHandler(repository.NewStudioRepo(nil), repository.NewEquipmentRepo(nil),
        repository.NewReservationRepo(nil), repository.NewPayoutRepo(nil), 0.10, 0.15)

    cases := []struct {
        name string
        body string
    }{
        {"past day", `{"date":"2020-01-01","slot":"14:00"}`},
        {"bad slot", `{"date":"2099-01-01","slot":"23:00"}`},
        {"bad date", `{"date":"tomorrow","slot":"14:00"}`},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c, rec := newTestContext(t, http.MethodPost, "/v1/reservations/9/reschedule", tc.body)
            c.SetParamNames("id")
            c.SetParamValues("9")
            if err := h.RescheduleReservation(c); err != nil {
                t.Fatalf("handler error: %v", err)
            }
            if rec.Code != http.StatusBadRequest {
                t.Errorf("status = %d, want 400", rec.Code)
            }
        })
    }
}
