package planner

import (
	"reflect"
	"strings"
	"testing"
)

func TestPrioritiesAllRulesFire(t *testing.T) {
	answers := map[string]string{
		"pension_ready": "모른다",
		"debt":          "있음(부담 큼)",
		"monthly_spend": "400 이상",
		"health":        "부족",
		"job_plan":      "없음",
	}

	got := Priorities(answers)
	want := []string{
		"국민연금/퇴직연금 예상 수령액 조회하기",
		"부채(대출) 상환 우선순위/금리 점검하기",
		"월 지출 상한선 설정 + 고정비 다이어트 시작",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Priorities()=%v, want %v", got, want)
	}
	for _, fb := range fallbackPriorities {
		for _, item := range got {
			if item == fb {
				t.Fatalf("fallback item %q must not appear when 5 rules fire", fb)
			}
		}
	}
}

func TestPrioritiesFallbackOnly(t *testing.T) {
	answers := map[string]string{
		"pension_ready": "정확히 안다",
		"debt":          "없음",
		"monthly_spend": "200~300",
		"health":        "충분",
		"job_plan":      "구체적으로 있음",
	}

	got := Priorities(answers)
	if !reflect.DeepEqual(got, fallbackPriorities) {
		t.Fatalf("Priorities()=%v, want fallback %v", got, fallbackPriorities)
	}
}

func TestPrioritiesPartialHitsFilledFromFallback(t *testing.T) {
	answers := map[string]string{"health": "부족"}

	got := Priorities(answers)
	want := []string{
		"보험/건강 보장 공백 점검(실손/중대질병/치매)",
		fallbackPriorities[0],
		fallbackPriorities[1],
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Priorities()=%v, want %v", got, want)
	}
}

func TestCurrentTasksAlwaysIncludesSpendCategorization(t *testing.T) {
	cases := []struct {
		name    string
		answers map[string]string
	}{
		{"empty", map[string]string{}},
		{"pension_unknown", map[string]string{"pension_ready": "모른다"}},
		{"debt_burden", map[string]string{"debt": "있음(부담 큼)", "priority": "부채 정리"}},
		{"unknown_option_values", map[string]string{"priority": "something else"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CurrentTasks(tc.answers)
			if len(got) < 1 || len(got) > 3 {
				t.Fatalf("CurrentTasks() returned %d items, want 1..3", len(got))
			}
			found := false
			for _, task := range got {
				if strings.Contains(task, "최근 30일 지출") {
					found = true
				}
			}
			if !found {
				t.Fatalf("CurrentTasks()=%v missing the spend categorization task", got)
			}
		})
	}
}

func TestCurrentTasksPrioritySwitch(t *testing.T) {
	cases := []struct {
		priority string
		want     string
	}{
		{"보험/건강", "보험 증권/내역 모아서 '중복/공백' 체크"},
		{"부채 정리", "상환 계획 초안(월 상환 가능액) 1장 만들기"},
		{"지출 관리", "고정비 3개만 줄이는 액션(통신/구독/보험료) 설정"},
		{"은퇴 후 일", "가능한 일/재능/경험 10개 적고 상위 3개 선택"},
		{"연금/현금흐름", defaultPriorityTask},
		{"", defaultPriorityTask},
	}

	for _, tc := range cases {
		t.Run(tc.priority, func(t *testing.T) {
			got := CurrentTasks(map[string]string{"priority": tc.priority})
			found := false
			for _, task := range got {
				if task == tc.want {
					found = true
				}
			}
			if !found {
				t.Fatalf("CurrentTasks(priority=%q)=%v, want it to contain %q", tc.priority, got, tc.want)
			}
		})
	}
}

func TestPlannerNeverReturnsDuplicatesOrEmpties(t *testing.T) {
	answerSets := []map[string]string{
		nil,
		{},
		{"pension_ready": "모른다", "debt": "있음(부담 큼)", "monthly_spend": "400 이상", "health": "부족", "job_plan": "없음", "priority": "부채 정리"},
		{"bogus_key": "bogus_value"},
	}

	for _, answers := range answerSets {
		for _, fn := range []func(map[string]string) []string{Priorities, CurrentTasks} {
			got := fn(answers)
			if len(got) < 1 || len(got) > 3 {
				t.Fatalf("got %d items for %v, want 1..3", len(got), answers)
			}
			seen := map[string]bool{}
			for _, item := range got {
				if item == "" {
					t.Fatalf("empty item in %v", got)
				}
				if seen[item] {
					t.Fatalf("duplicate item %q in %v", item, got)
				}
				seen[item] = true
			}
		}
	}
}

func TestSummaryUsesPlaceholderForMissingAnswers(t *testing.T) {
	got := Summary(map[string]string{"retire_year": "1~3년"})
	if !strings.Contains(got, "은퇴 시점: 1~3년") {
		t.Fatalf("Summary()=%q missing retire_year", got)
	}
	if !strings.Contains(got, "월지출: 미입력") {
		t.Fatalf("Summary()=%q missing placeholder for monthly_spend", got)
	}
}
