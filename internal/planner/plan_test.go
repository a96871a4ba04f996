package planner

import (
	"testing"

	"github.com/yungbote/retirepath-backend/internal/types"
)

func TestBuildPlanAlwaysValid(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]string
	}{
		{"empty answers", map[string]string{}},
		{"all rules firing", map[string]string{
			"pension_ready": "모른다",
			"debt":          "있음(부담됨)",
			"monthly_spend": "400 이상",
			"health":        "부족",
			"job_plan":      "없음",
			"priority":      "부채 정리",
		}},
		{"no rules firing", map[string]string{
			"pension_ready": "대략 안다",
			"debt":          "없음",
			"monthly_spend": "200~300",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := BuildPlan(tt.answers)
			if err := plan.Validate(); err != nil {
				t.Fatalf("BuildPlan produced invalid plan: %v", err)
			}
			if got := len(plan.Months); got != types.PlanMonths {
				t.Fatalf("months = %d, want %d", got, types.PlanMonths)
			}
		})
	}
}

func TestBuildPlanFirstMonthUsesAnswers(t *testing.T) {
	plan := BuildPlan(map[string]string{
		"pension_ready": "모른다",
		"debt":          "있음(부담됨)",
	})
	first := plan.Months[0]
	if first.Tasks[0] != "국민연금 예상연금액 조회 + 캡처 저장" {
		t.Fatalf("first task = %q, want pension lookup", first.Tasks[0])
	}
	if len(first.Tasks) != types.PlanTasksPerMonth {
		t.Fatalf("first month tasks = %d, want %d", len(first.Tasks), types.PlanTasksPerMonth)
	}
}
