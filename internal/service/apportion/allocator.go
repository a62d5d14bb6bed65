package apportion

import (
	"github.com/KasumiMercury/primind-break-scheduler/internal/domain"
)

// Allocator distributes a day's break budget across the gaps between
// meetings, proportionally to the meeting preceding each gap.
type Allocator struct {
	quantumMinutes int
}

func NewAllocator(quantumMinutes int) *Allocator {
	if quantumMinutes <= 0 {
		quantumMinutes = domain.DefaultQuantumMinutes
	}
	return &Allocator{
		quantumMinutes: quantumMinutes,
	}
}

// Allocate returns break minutes per gap for meetings sorted longest first.
// The result has max(0, len(meetings)-1) entries, each a multiple of the
// quantum, summing to budgetMinutes rounded down to the quantum.
func (a *Allocator) Allocate(meetings []domain.Meeting, budgetMinutes int) []int {
	weights := Weights(meetings)
	if len(weights) == 0 {
		return []int{}
	}

	units := 0
	if budgetMinutes > 0 {
		units = budgetMinutes / a.quantumMinutes
	}

	shares := LargestRemainder(units, weights)

	breaks := make([]int, len(shares))
	for i, s := range shares {
		breaks[i] = s * a.quantumMinutes
	}
	return breaks
}
