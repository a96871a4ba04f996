package types

import (
	"fmt"
	"testing"
)

func validPlan() *RoadmapPlan {
	p := &RoadmapPlan{
		Title:         "은퇴 준비 12개월 로드맵",
		Summary:       "요약",
		TopPriorities: []string{"연금 파악", "지출 관리"},
	}
	for m := 1; m <= PlanMonths; m++ {
		p.Months = append(p.Months, RoadmapMonth{
			Month:   m,
			Goal:    fmt.Sprintf("%d월 목표", m),
			Tasks:   []string{"할 일 1", "할 일 2", "할 일 3"},
			Caution: "주의사항",
		})
	}
	return p
}

func TestValidateAcceptsCanonicalPlan(t *testing.T) {
	if err := validPlan().Validate(); err != nil {
		t.Fatalf("Validate()=%v, want nil", err)
	}
}

func TestValidateRejectsMalformedPlans(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *RoadmapPlan)
	}{
		{"eleven_months", func(p *RoadmapPlan) { p.Months = p.Months[:11] }},
		{"duplicate_month", func(p *RoadmapPlan) { p.Months[5].Month = 1 }},
		{"month_out_of_range", func(p *RoadmapPlan) { p.Months[0].Month = 13 }},
		{"two_tasks", func(p *RoadmapPlan) { p.Months[3].Tasks = p.Months[3].Tasks[:2] }},
		{"four_tasks", func(p *RoadmapPlan) { p.Months[3].Tasks = append(p.Months[3].Tasks, "덤") }},
		{"empty_task", func(p *RoadmapPlan) { p.Months[7].Tasks[1] = "  " }},
		{"six_priorities", func(p *RoadmapPlan) {
			p.TopPriorities = []string{"1", "2", "3", "4", "5", "6"}
		}},
		{"empty_title", func(p *RoadmapPlan) { p.Title = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPlan()
			tc.mutate(p)
			if err := p.Validate(); err == nil {
				t.Fatal("Validate()=nil, want error")
			}
		})
	}
}

func TestValidateNilPlan(t *testing.T) {
	var p *RoadmapPlan
	if err := p.Validate(); err == nil {
		t.Fatal("Validate() on nil plan should fail")
	}
}
