package types

import (
	"fmt"
	"strings"
)

const (
	PlanMonths        = 12
	PlanTasksPerMonth = 3
	PlanMaxPriorities = 5

	// PlanTotalTasks is the fixed progress denominator.
	PlanTotalTasks = PlanMonths * PlanTasksPerMonth
)

// RoadmapPlan is the canonical generated plan payload. The model is asked
// for exactly this shape and the response is rejected when it deviates.
type RoadmapPlan struct {
	Title         string         `json:"title"`
	Summary       string         `json:"summary"`
	TopPriorities []string       `json:"top_priorities"`
	Months        []RoadmapMonth `json:"months"`
}

type RoadmapMonth struct {
	Month   int      `json:"month"`
	Goal    string   `json:"goal"`
	Tasks   []string `json:"tasks"`
	Caution string   `json:"caution"`
}

// Validate enforces the plan invariants: 12 months numbered 1..12 each
// exactly once, 3 non-empty tasks per month, at most 5 priorities.
func (p *RoadmapPlan) Validate() error {
	if p == nil {
		return fmt.Errorf("plan is nil")
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("plan title is empty")
	}
	if len(p.TopPriorities) > PlanMaxPriorities {
		return fmt.Errorf("plan has %d top priorities, max %d", len(p.TopPriorities), PlanMaxPriorities)
	}
	if len(p.Months) != PlanMonths {
		return fmt.Errorf("plan has %d months, want %d", len(p.Months), PlanMonths)
	}
	seen := make(map[int]bool, PlanMonths)
	for i := range p.Months {
		m := &p.Months[i]
		if m.Month < 1 || m.Month > PlanMonths {
			return fmt.Errorf("month number %d out of range 1..%d", m.Month, PlanMonths)
		}
		if seen[m.Month] {
			return fmt.Errorf("month %d appears more than once", m.Month)
		}
		seen[m.Month] = true
		if len(m.Tasks) != PlanTasksPerMonth {
			return fmt.Errorf("month %d has %d tasks, want %d", m.Month, len(m.Tasks), PlanTasksPerMonth)
		}
		for j, task := range m.Tasks {
			if strings.TrimSpace(task) == "" {
				return fmt.Errorf("month %d task %d is empty", m.Month, j)
			}
		}
	}
	return nil
}
