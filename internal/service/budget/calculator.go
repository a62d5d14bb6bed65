package budget

import (
	"github.com/KasumiMercury/primind-break-scheduler/internal/domain"
)

type Calculator struct {
	quantumMinutes int
}

func NewCalculator(quantumMinutes int) *Calculator {
	if quantumMinutes <= 0 {
		quantumMinutes = domain.DefaultQuantumMinutes
	}
	return &Calculator{
		quantumMinutes: quantumMinutes,
	}
}

func (c *Calculator) QuantumMinutes() int {
	return c.quantumMinutes
}

// EffectiveBudget returns the break minutes to spread across the day's gaps.
// A lone meeting never gets a break. With two or more meetings the whole
// slack is used so the last meeting ends at 18:00, truncated down to the
// quantum; the sub-quantum remainder is dropped.
func (c *Calculator) EffectiveBudget(totalMeetingMinutes, meetingCount int) int {
	if meetingCount <= 1 {
		return 0
	}

	slack := domain.DayWindowMinutes - totalMeetingMinutes
	if slack <= 0 {
		return 0
	}

	return slack - slack%c.quantumMinutes
}

// Units converts a budget in minutes to whole quanta.
func (c *Calculator) Units(budgetMinutes int) int {
	if budgetMinutes <= 0 {
		return 0
	}
	return budgetMinutes / c.quantumMinutes
}
