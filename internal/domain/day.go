package domain

import "fmt"

// DayInput is one day of meeting requests in caller order.
type DayInput struct {
	Day       string           `json:"day" yaml:"day"`
	Durations []MeetingRequest `json:"meetings" yaml:"meetings"`
}

func NewDayInput(day string, hours ...int) DayInput {
	durations := make([]MeetingRequest, len(hours))
	for i, h := range hours {
		durations[i] = MeetingRequest(h)
	}
	return DayInput{
		Day:       day,
		Durations: durations,
	}
}

// Week is an ordered collection of independent days.
type Week struct {
	Days []DayInput `json:"days" yaml:"days"`
}

// DayOutcome is the terminal result for one day. Schedule is nil unless the
// day reached DayStateScheduled.
type DayOutcome struct {
	Day                 string
	State               DayState
	Meetings            []Meeting // sorted, longest first
	TotalMeetingMinutes int
	BreakBudgetMinutes  int
	BreakMinutes        []int // one entry per gap
	Schedule            *DaySchedule
}

func NewDayOutcome(day string) *DayOutcome {
	return &DayOutcome{
		Day:   day,
		State: DayStatePending,
	}
}

// Feed records the normalized meetings and moves the day from Pending to Fed.
func (o *DayOutcome) Feed(meetings []Meeting, totalMeetingMinutes int) error {
	if o.State != DayStatePending {
		return fmt.Errorf("%s: feed in state %s: %w", o.Day, o.State, ErrDayAlreadyProcessed)
	}
	o.Meetings = meetings
	o.TotalMeetingMinutes = totalMeetingMinutes
	o.State = DayStateFed
	return nil
}

// Reject marks the day unschedulable.
func (o *DayOutcome) Reject() error {
	if err := o.checkFed(); err != nil {
		return err
	}
	o.State = DayStateRejected
	return nil
}

// Complete attaches the computed breaks and rendered schedule.
func (o *DayOutcome) Complete(budgetMinutes int, breakMinutes []int, schedule *DaySchedule) error {
	if err := o.checkFed(); err != nil {
		return err
	}
	o.BreakBudgetMinutes = budgetMinutes
	o.BreakMinutes = breakMinutes
	o.Schedule = schedule
	o.State = DayStateScheduled
	return nil
}

func (o *DayOutcome) checkFed() error {
	switch {
	case o.State.IsTerminal():
		return fmt.Errorf("%s: state %s: %w", o.Day, o.State, ErrDayAlreadyProcessed)
	case o.State != DayStateFed:
		return fmt.Errorf("%s: state %s: %w", o.Day, o.State, ErrDayNotFed)
	}
	return nil
}

func (o *DayOutcome) MeetingCount() int {
	return len(o.Meetings)
}

// Lines renders the outcome the way it is printed:
//
//	Mon:
//	  09:00 - 12:00  Meeting (3h)
//
// or "Mon: Unschedulable".
func (o *DayOutcome) Lines() []string {
	if o.State.IsRejected() {
		return []string{o.Day + ": Unschedulable"}
	}

	lines := []string{o.Day + ":"}
	if o.Schedule == nil {
		return lines
	}
	for _, block := range o.Schedule.Blocks {
		lines = append(lines, "  "+block.String())
	}
	return lines
}
