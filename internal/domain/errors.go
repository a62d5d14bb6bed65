package domain

import "errors"

var (
	ErrInvalidDuration     = errors.New("meeting duration must be a positive number of hours")
	ErrInvalidQuantum      = errors.New("break quantum must be a positive multiple of 30 minutes")
	ErrDayAlreadyProcessed = errors.New("day already processed")
	ErrDayNotFed           = errors.New("day has not been fed")
)
