package domain

// DayState tracks a day through the scheduling pipeline.
// Pending -> Fed -> (Rejected | Scheduled). Rejected and Scheduled are terminal.
type DayState string

const (
	DayStatePending   DayState = "pending"
	DayStateFed       DayState = "fed"
	DayStateRejected  DayState = "rejected"
	DayStateScheduled DayState = "scheduled"
)

func (s DayState) String() string {
	return string(s)
}

func (s DayState) IsTerminal() bool {
	return s == DayStateRejected || s == DayStateScheduled
}

func (s DayState) IsScheduled() bool {
	return s == DayStateScheduled
}

func (s DayState) IsRejected() bool {
	return s == DayStateRejected
}
