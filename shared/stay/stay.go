// Package stay models the half-open [check-in, check-out) date range of a booking.
package stay

import (
	"errors"
	"strings"
	"time"

	"hotelbooking/shared/constant"
)

var (
	ErrIncomplete  = errors.New("check_in and check_out must be given together")
	ErrInvalidDate = errors.New("dates must use the YYYY-MM-DD format")
	ErrEmptyRange  = errors.New("check_out must be after check_in")
	ErrPastCheckIn = errors.New("check_in cannot be in the past")
	ErrTooLong     = errors.New("stays are limited to 365 nights")
)

const (
	day       = 24 * time.Hour
	maxNights = 365
)

// Range is a stay in calendar days. CheckOut is exclusive.
type Range struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Parse reads two YYYY-MM-DD dates. Both empty yields a zero Range and ok=false.
func Parse(checkIn, checkOut string) (r Range, ok bool, err error) {
	checkIn, checkOut = strings.TrimSpace(checkIn), strings.TrimSpace(checkOut)

	if checkIn == constant.Empty && checkOut == constant.Empty {
		return Range{}, false, nil
	}

	if checkIn == constant.Empty || checkOut == constant.Empty {
		return Range{}, false, ErrIncomplete
	}

	in, err := time.Parse(constant.DateOnlyFormat, checkIn)
	if err != nil {
		return Range{}, false, ErrInvalidDate
	}

	out, err := time.Parse(constant.DateOnlyFormat, checkOut)
	if err != nil {
		return Range{}, false, ErrInvalidDate
	}

	r = Range{CheckIn: in, CheckOut: out}

	if err = r.Validate(); err != nil {
		return Range{}, false, err
	}

	return r, true, nil
}

func (r Range) Validate() error {
	if !r.CheckOut.After(r.CheckIn) {
		return ErrEmptyRange
	}

	if r.Nights() > maxNights {
		return ErrTooLong
	}

	return nil
}

// StartsBefore reports whether check-in falls on a day before today.
func (r Range) StartsBefore(today time.Time) bool {
	y, m, d := today.Date()

	return r.CheckIn.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (r Range) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn) / day)
}

// Overlaps uses half-open semantics, so a check-out on the other's check-in day does not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

func (r Range) String() string {
	return r.CheckIn.Format(constant.DateOnlyFormat) + "/" + r.CheckOut.Format(constant.DateOnlyFormat)
}
