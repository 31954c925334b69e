package repository

import (
	"errors"

	"hotelbooking/shared/constant"
	"hotelbooking/shared/failure"

	"github.com/lib/pq"
)

// classify turns constraint violations into client-facing failures.
// Anything else is returned unchanged.
func classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeUniqueViolation:
		return failure.Conflict("resource already exists")
	case constant.PqErrorCodeExclusionViolation:
		return failure.Conflict("room is already booked for the requested dates")
	case constant.PqErrorCodeFkViolation:
		return failure.BadRequestFromString("referenced resource does not exist")
	case constant.PqErrorCodeCheckViolation:
		return failure.BadRequestFromString("value violates constraint " + pqErr.Constraint)
	default:
		return err
	}
}
