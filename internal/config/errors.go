package config

import "errors"

var (
	ErrInvalidQuantumFormat = errors.New("BREAK_QUANTUM_MINUTES must be a valid integer")
	ErrInvalidParallelism   = errors.New("SCHEDULE_PARALLELISM must be a positive integer")
)
