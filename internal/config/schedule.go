package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/KasumiMercury/primind-break-scheduler/internal/domain"
)

const (
	breakQuantumMinutesEnv = "BREAK_QUANTUM_MINUTES"
	scheduleWeekFileEnv    = "SCHEDULE_WEEK_FILE"
	scheduleParallelismEnv = "SCHEDULE_PARALLELISM"

	defaultBreakQuantumMinutes = domain.DefaultQuantumMinutes
	defaultScheduleParallelism = 7
)

type ScheduleConfig struct {
	QuantumMinutes int
	WeekFile       string // empty means the built-in sample week
	Parallelism    int
}

func LoadScheduleConfig() (*ScheduleConfig, error) {
	quantum := defaultBreakQuantumMinutes
	if raw := os.Getenv(breakQuantumMinutesEnv); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, ErrInvalidQuantumFormat
		}
		quantum = parsed
	}

	parallelism := defaultScheduleParallelism
	if raw := os.Getenv(scheduleParallelismEnv); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidParallelism
		}
		parallelism = parsed
	}

	cfg := &ScheduleConfig{
		QuantumMinutes: quantum,
		WeekFile:       os.Getenv(scheduleWeekFileEnv),
		Parallelism:    parallelism,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *ScheduleConfig) Validate() error {
	if err := domain.ValidateQuantum(c.QuantumMinutes); err != nil {
		return fmt.Errorf("%s=%d: %w", breakQuantumMinutesEnv, c.QuantumMinutes, err)
	}
	if c.Parallelism <= 0 {
		return ErrInvalidParallelism
	}
	return nil
}
