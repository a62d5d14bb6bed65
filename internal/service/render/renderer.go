package render

import (
	"fmt"

	"github.com/KasumiMercury/primind-break-scheduler/internal/domain"
)

type Renderer struct {
	startMinute int
}

func NewRenderer() *Renderer {
	return &Renderer{
		startMinute: domain.DayStartMinute,
	}
}

// Render lays meetings out back to back from 09:00, inserting breakMinutes[i]
// after meetings[i]. Zero-minute gaps produce no block and nothing follows
// the last meeting.
func (r *Renderer) Render(meetings []domain.Meeting, breakMinutes []int) (*domain.DaySchedule, error) {
	if len(meetings) > 0 && len(breakMinutes) != len(meetings)-1 {
		return nil, fmt.Errorf("render: %d meetings need %d gaps, got %d", len(meetings), len(meetings)-1, len(breakMinutes))
	}

	schedule := domain.NewDaySchedule()
	current := r.startMinute

	for i, m := range meetings {
		end := current + m.Minutes()
		schedule.AddBlock(domain.ScheduleBlock{
			Kind:  domain.BlockKindMeeting,
			Start: current,
			End:   end,
			Hours: m.Hours,
		})
		current = end

		if i == len(meetings)-1 {
			break
		}

		gap := breakMinutes[i]
		if gap <= 0 {
			continue
		}
		schedule.AddBlock(domain.ScheduleBlock{
			Kind:  domain.BlockKindBreak,
			Start: current,
			End:   current + gap,
		})
		current += gap
	}

	return schedule, nil
}
