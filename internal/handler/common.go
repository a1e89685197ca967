package handler // handler defines http handlers

import (
    "errors"       // errors provides sentinel values used in getUserID
    "strconv"      // strconv converts strings to numeric types
    "time"         // time parses slot strings into clock times

    "github.com/labstack/echo/v4" // echo defines request context types
)

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) { // begin getUserID helper
    v := c.Get("user_id") // fetch user_id from context
    switch t := v.(type) { // perform type switch on the value
    case uint64: // when already uint64
        return t, nil // return directly
    case int: // when stored as int
        return uint64(t), nil // convert to uint64
    case int64: // when stored as int64
        return uint64(t), nil // convert to uint64
    case float64: // when stored as float64
        return uint64(t), nil // convert to uint64
    case string: // when stored as string
        if n, err := strconv.ParseUint(t, 10, 64); err == nil { // parse string to uint64
            return n, nil // return parsed number
        }
    } // end type switch
    return 0, errors.New("invalid user_id in context") // return error if value is missing or invalid
}

// bookingSlots is the fixed list of start-of-hour slot strings a session or
// reschedule may begin at.  Clients pick from this list; anything else is
// rejected.
var bookingSlots = []string{
    "08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00",
    "15:00", "16:00", "17:00", "18:00", "19:00", "20:00", "21:00",
}

// parseSlot validates a slot string against bookingSlots and returns its
// hour component.  The boolean result reports whether the slot is allowed.
func parseSlot(slot string) (int, bool) {
    for _, s := range bookingSlots {
        if s == slot {
            t, err := time.Parse("15:04", slot)
            if err != nil {
                return 0, false
            }
            return t.Hour(), true
        }
    }
    return 0, false
}

// slotStart combines a calendar day with a slot hour into a UTC timestamp.
func slotStart(day time.Time, hour int) time.Time {
    return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
}
