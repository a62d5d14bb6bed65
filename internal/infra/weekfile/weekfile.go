package weekfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KasumiMercury/primind-break-scheduler/internal/domain"
)

var (
	ErrEmptyWeek    = errors.New("weekfile: no days defined")
	ErrMissingDay   = errors.New("weekfile: day name is required")
	ErrDuplicateDay = errors.New("weekfile: duplicate day")
)

// SampleWeek is used when no week file is configured.
func SampleWeek() domain.Week {
	return domain.Week{
		Days: []domain.DayInput{
			domain.NewDayInput("Mon", 1, 3, 3),
			domain.NewDayInput("Tue", 2, 3),
			domain.NewDayInput("Wed", 3, 3, 2, 1),
			domain.NewDayInput("Thu", 4, 2, 1, 1),
			domain.NewDayInput("Fri", 4, 3, 1, 1, 1),
		},
	}
}

// Parse decodes a week document:
//
//	days:
//	  - day: Mon
//	    meetings: [1, 3, 3]
//
// Durations are not validated here; that is the scheduler's job.
func Parse(data []byte) (domain.Week, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Week{}, ErrEmptyWeek
	}

	var week domain.Week
	if err := yaml.Unmarshal(data, &week); err != nil {
		return domain.Week{}, fmt.Errorf("weekfile: decode: %w", err)
	}
	if len(week.Days) == 0 {
		return domain.Week{}, ErrEmptyWeek
	}

	seen := make(map[string]bool, len(week.Days))
	for i := range week.Days {
		name := strings.TrimSpace(week.Days[i].Day)
		if name == "" {
			return domain.Week{}, fmt.Errorf("weekfile: day %d: %w", i, ErrMissingDay)
		}
		if seen[name] {
			return domain.Week{}, fmt.Errorf("weekfile: %s: %w", name, ErrDuplicateDay)
		}
		seen[name] = true
		week.Days[i].Day = name
	}

	return week, nil
}

// Load reads the week from path, or returns SampleWeek when path is empty.
func Load(path string) (domain.Week, error) {
	if strings.TrimSpace(path) == "" {
		return SampleWeek(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Week{}, fmt.Errorf("weekfile: read %s: %w", path, err)
	}

	week, err := Parse(data)
	if err != nil {
		return domain.Week{}, fmt.Errorf("%s: %w", path, err)
	}
	return week, nil
}
