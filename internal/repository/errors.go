// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrConflict signals that an operation
// cannot proceed because of conflicting state (e.g. creating a
// reservation whose time window overlaps an existing booking).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot be performed because
// of conflicting state, such as an overlapping reservation for the
// same studio or an illegal status transition. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrStudioNotFound indicates that a studio was not located in the DB.
var ErrStudioNotFound = errors.New("studio not found")

// ErrReservationNotFound indicates that a reservation was not located in the DB.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrEquipmentNotFound indicates that a catalog item was not located in the DB.
var ErrEquipmentNotFound = errors.New("equipment not found")
