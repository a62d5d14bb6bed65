package budget

import "testing"

func TestCalculator_EffectiveBudget(t *testing.T) {
	tests := []struct {
		name         string
		quantum      int
		totalMinutes int
		meetingCount int
		want         int
	}{
		{
			name:         "no meetings",
			quantum:      30,
			totalMinutes: 0,
			meetingCount: 0,
			want:         0,
		},
		{
			name:         "single meeting never gets a break",
			quantum:      30,
			totalMinutes: 60,
			meetingCount: 1,
			want:         0,
		},
		{
			name:         "slack fills the day",
			quantum:      30,
			totalMinutes: 420,
			meetingCount: 3,
			want:         120,
		},
		{
			name:         "no slack",
			quantum:      30,
			totalMinutes: 540,
			meetingCount: 4,
			want:         0,
		},
		{
			name:         "over the window yields zero",
			quantum:      30,
			totalMinutes: 600,
			meetingCount: 2,
			want:         0,
		},
		{
			name:         "truncated to an hour quantum",
			quantum:      60,
			totalMinutes: 420,
			meetingCount: 2,
			want:         120,
		},
		{
			name:         "truncated to a 90 minute quantum",
			quantum:      90,
			totalMinutes: 420,
			meetingCount: 2,
			want:         90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(tt.quantum)
			got := calc.EffectiveBudget(tt.totalMinutes, tt.meetingCount)
			if got != tt.want {
				t.Errorf("EffectiveBudget(%d, %d) = %d, want %d", tt.totalMinutes, tt.meetingCount, got, tt.want)
			}
			if got%tt.quantum != 0 {
				t.Errorf("EffectiveBudget(%d, %d) = %d, not a multiple of %d", tt.totalMinutes, tt.meetingCount, got, tt.quantum)
			}
		})
	}
}

func TestCalculator_DefaultQuantum(t *testing.T) {
	calc := NewCalculator(0)
	if calc.QuantumMinutes() != 30 {
		t.Errorf("QuantumMinutes() = %d, want 30", calc.QuantumMinutes())
	}
}

func TestCalculator_Units(t *testing.T) {
	calc := NewCalculator(30)

	tests := []struct {
		budget int
		want   int
	}{
		{budget: 0, want: 0},
		{budget: -30, want: 0},
		{budget: 30, want: 1},
		{budget: 120, want: 4},
	}

	for _, tt := range tests {
		if got := calc.Units(tt.budget); got != tt.want {
			t.Errorf("Units(%d) = %d, want %d", tt.budget, got, tt.want)
		}
	}
}
