package catalog

import "time"

type (
	ScheduleTask struct {
		Title       string   `yaml:"title" json:"title"`
		Category    Category `yaml:"category" json:"category"`
		Priority    Priority `yaml:"priority" json:"priority"`
		Description string   `yaml:"description" json:"description"`
		Deadline    string   `yaml:"deadline,omitempty" json:"deadline,omitempty"`
	}

	MonthlySchedule struct {
		Month  int            `yaml:"month" json:"month"`
		Period Period         `yaml:"period" json:"period"`
		Title  string         `yaml:"title" json:"title"`
		Tasks  []ScheduleTask `yaml:"tasks" json:"tasks"`
	}

	ScheduleSummary struct {
		Critical     int `json:"critical"`
		High         int `json:"high"`
		Medium       int `json:"medium"`
		Low          int `json:"low"`
		WithDeadline int `json:"withDeadline"`
	}
)

func (s MonthlySchedule) Summary() ScheduleSummary {
	var sum ScheduleSummary
	for _, t := range s.Tasks {
		switch t.Priority {
		case PriorityCritical:
			sum.Critical++
		case PriorityHigh:
			sum.High++
		case PriorityMedium:
			sum.Medium++
		case PriorityLow:
			sum.Low++
		}
		if t.Deadline != "" {
			sum.WithDeadline++
		}
	}
	return sum
}

// Schedules returns the monthly schedules ordered by month.
func (c *Catalog) Schedules() []MonthlySchedule {
	schedules := make([]MonthlySchedule, len(c.schedules))
	copy(schedules, c.schedules)
	return schedules
}

func (c *Catalog) ScheduleForMonth(month int) (MonthlySchedule, bool) {
	for _, s := range c.schedules {
		if s.Month == month {
			return s, true
		}
	}
	return MonthlySchedule{}, false
}

// CurrentSchedule returns the schedule of now's month.
func (c *Catalog) CurrentSchedule(now time.Time) (MonthlySchedule, bool) {
	return c.ScheduleForMonth(int(now.Month()))
}
