package domain

import "fmt"

const (
	// DayStartMinute is 09:00 expressed as minutes since midnight.
	DayStartMinute = 9 * 60
	// DayEndMinute is 18:00 expressed as minutes since midnight.
	DayEndMinute = 18 * 60
	// DayWindowMinutes is the length of the bookable window.
	DayWindowMinutes = DayEndMinute - DayStartMinute

	// DefaultQuantumMinutes is the alignment granularity for breaks.
	DefaultQuantumMinutes = 30
)

// MeetingRequest is a meeting duration in whole hours as supplied by the caller.
type MeetingRequest int

func (r MeetingRequest) Minutes() int {
	return int(r) * 60
}

// Meeting is a validated meeting request together with its position in the
// caller's input. Rank survives sorting so ties stay traceable.
type Meeting struct {
	Hours int
	Rank  int
}

func NewMeeting(hours, rank int) Meeting {
	return Meeting{
		Hours: hours,
		Rank:  rank,
	}
}

func (m Meeting) Minutes() int {
	return m.Hours * 60
}

type BlockKind string

const (
	BlockKindMeeting BlockKind = "meeting"
	BlockKindBreak   BlockKind = "break"
)

func (k BlockKind) String() string {
	return string(k)
}

// ScheduleBlock is one contiguous interval of a day. Start and End are
// minutes since midnight.
type ScheduleBlock struct {
	Kind     BlockKind
	Position int
	Start    int
	End      int
	Hours    int // set for meeting blocks only
}

func (b ScheduleBlock) Minutes() int {
	return b.End - b.Start
}

func (b ScheduleBlock) IsBreak() bool {
	return b.Kind == BlockKindBreak
}

// String renders the block as "HH:MM - HH:MM  Meeting (3h)" or
// "HH:MM - HH:MM  Break (60m)".
func (b ScheduleBlock) String() string {
	if b.IsBreak() {
		return fmt.Sprintf("%s - %s  Break (%dm)", FormatClock(b.Start), FormatClock(b.End), b.Minutes())
	}
	return fmt.Sprintf("%s - %s  Meeting (%dh)", FormatClock(b.Start), FormatClock(b.End), b.Hours)
}

// DaySchedule is the rendered timeline of a single day.
type DaySchedule struct {
	Blocks []ScheduleBlock
}

func NewDaySchedule() *DaySchedule {
	return &DaySchedule{
		Blocks: make([]ScheduleBlock, 0),
	}
}

func (s *DaySchedule) AddBlock(block ScheduleBlock) {
	block.Position = len(s.Blocks)
	s.Blocks = append(s.Blocks, block)
}

// StartMinute returns the start of the first block, or DayStartMinute for an
// empty schedule.
func (s *DaySchedule) StartMinute() int {
	if len(s.Blocks) == 0 {
		return DayStartMinute
	}
	return s.Blocks[0].Start
}

// EndMinute returns the end of the last block, or DayStartMinute for an
// empty schedule.
func (s *DaySchedule) EndMinute() int {
	if len(s.Blocks) == 0 {
		return DayStartMinute
	}
	return s.Blocks[len(s.Blocks)-1].End
}

func (s *DaySchedule) MeetingMinutes() int {
	total := 0
	for _, b := range s.Blocks {
		if !b.IsBreak() {
			total += b.Minutes()
		}
	}
	return total
}

func (s *DaySchedule) BreakMinutes() int {
	total := 0
	for _, b := range s.Blocks {
		if b.IsBreak() {
			total += b.Minutes()
		}
	}
	return total
}

func (s *DaySchedule) BreakCount() int {
	count := 0
	for _, b := range s.Blocks {
		if b.IsBreak() {
			count++
		}
	}
	return count
}

// FormatClock renders minutes since midnight as zero-padded 24-hour HH:MM.
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// ValidateQuantum checks that a break quantum keeps starts on :00 or :30.
func ValidateQuantum(minutes int) error {
	if minutes <= 0 || minutes%DefaultQuantumMinutes != 0 {
		return ErrInvalidQuantum
	}
	return nil
}
