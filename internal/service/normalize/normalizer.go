package normalize

import (
	"fmt"
	"sort"

	"github.com/KasumiMercury/primind-break-scheduler/internal/domain"
)

const (
	// MaxMeetingMinutesPerDay is the feasibility ceiling: the whole 09:00-18:00 window.
	MaxMeetingMinutesPerDay = domain.DayWindowMinutes

	maxMeetingHours = MaxMeetingMinutesPerDay / 60
)

// Result is the normalized form of one day's requests.
type Result struct {
	Meetings            []domain.Meeting // longest first, ties in input order
	TotalMeetingMinutes int
	Feasible            bool
}

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize validates the durations, sorts them longest first and applies the
// feasibility gate. An infeasible day is reported through Result.Feasible and
// is not an error; only a non-positive duration is. TotalMeetingMinutes is
// exact for feasible days and saturates shortly past the window otherwise.
func (n *Normalizer) Normalize(durations []domain.MeetingRequest) (*Result, error) {
	meetings := make([]domain.Meeting, 0, len(durations))
	total := 0

	for i, d := range durations {
		if d <= 0 {
			return nil, fmt.Errorf("meeting %d has %d hours: %w", i, d, domain.ErrInvalidDuration)
		}
		meetings = append(meetings, domain.NewMeeting(int(d), i))
		total = addMeetingMinutes(total, d)
	}

	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].Hours > meetings[j].Hours
	})

	return &Result{
		Meetings:            meetings,
		TotalMeetingMinutes: total,
		Feasible:            total <= MaxMeetingMinutesPerDay,
	}, nil
}

// addMeetingMinutes adds d to total without overflowing. Once total is past
// the window it stops growing, and a single meeting longer than the window
// counts as one hour past it.
func addMeetingMinutes(total int, d domain.MeetingRequest) int {
	if total > MaxMeetingMinutesPerDay {
		return total
	}
	if d > maxMeetingHours {
		d = maxMeetingHours + 1
	}
	return total + d.Minutes()
}
