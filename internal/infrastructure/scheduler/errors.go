package scheduler

import "errors"

var (
	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")

	// ErrMonthNotClosed is returned when an archive run asks for a month that has not ended
	ErrMonthNotClosed = errors.New("month has not ended yet")
)
