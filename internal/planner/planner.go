package planner

import (
	"fmt"
	"strings"
)

// Package planner derives the rule-based interim result from a submitted
// answer set. Everything here is pure and total: unknown or missing answers
// fall through to the fallback branches, never to an error.

const maxItems = 3

type rule struct {
	match          func(answers map[string]string) bool
	recommendation string
}

func answerIs(id, option string) func(map[string]string) bool {
	return func(answers map[string]string) bool { return answers[id] == option }
}

func answerContains(id, substr string) func(map[string]string) bool {
	return func(answers map[string]string) bool { return strings.Contains(answers[id], substr) }
}

// priorityRules are evaluated in declaration order; hits are appended first,
// then fallbackPriorities fill the remainder.
var priorityRules = []rule{
	{answerIs("pension_ready", "모른다"), "국민연금/퇴직연금 예상 수령액 조회하기"},
	{answerContains("debt", "부담"), "부채(대출) 상환 우선순위/금리 점검하기"},
	{answerIs("monthly_spend", "400 이상"), "월 지출 상한선 설정 + 고정비 다이어트 시작"},
	{answerIs("health", "부족"), "보험/건강 보장 공백 점검(실손/중대질병/치매)"},
	{answerIs("job_plan", "없음"), "은퇴 후 소득원(파트/자격/프로젝트) 옵션 3개 리스트업"},
}

var fallbackPriorities = []string{
	"현금흐름(수입/지출) 표 만들기",
	"은퇴 시점/목표 생활비를 수치로 정리하기",
	"연금·보험·부채·자산 문서 한 폴더에 모으기",
}

// Priorities returns the top-3 recommendation list for the answer set.
func Priorities(answers map[string]string) []string {
	items := make([]string, 0, len(priorityRules)+len(fallbackPriorities))
	for _, r := range priorityRules {
		if r.match(answers) {
			items = append(items, r.recommendation)
		}
	}
	items = append(items, fallbackPriorities...)
	return dedupeTruncate(items, maxItems)
}

// taskByPriority maps the declared top-priority answer to one extra task.
var taskByPriority = map[string]string{
	"보험/건강": "보험 증권/내역 모아서 '중복/공백' 체크",
	"부채 정리":  "상환 계획 초안(월 상환 가능액) 1장 만들기",
	"지출 관리":  "고정비 3개만 줄이는 액션(통신/구독/보험료) 설정",
	"은퇴 후 일": "가능한 일/재능/경험 10개 적고 상위 3개 선택",
}

const defaultPriorityTask = "연금/퇴직금/자산 현황을 한 장 요약으로 정리"

// CurrentTasks returns up to 3 tasks for the current month. The spend
// categorization task is always present; the rest depend on the answers.
func CurrentTasks(answers map[string]string) []string {
	tasks := make([]string, 0, 4)

	if answers["pension_ready"] == "모른다" {
		tasks = append(tasks, "국민연금 예상연금액 조회 + 캡처 저장")
	}
	tasks = append(tasks, "최근 30일 지출을 5개 카테고리로 분류(식비/주거/교통/통신/기타)")
	if answers["debt"] != "없음" && answers["debt"] != "" {
		tasks = append(tasks, "대출 목록 정리(금리/잔액/상환방식) → 우선순위 표시")
	}

	if t, ok := taskByPriority[answers["priority"]]; ok {
		tasks = append(tasks, t)
	} else {
		tasks = append(tasks, defaultPriorityTask)
	}

	return dedupeTruncate(tasks, maxItems)
}

// Summary builds the one-line recap shown with the interim result.
func Summary(answers map[string]string) string {
	get := func(id string) string {
		if v := strings.TrimSpace(answers[id]); v != "" {
			return v
		}
		return "미입력"
	}
	return fmt.Sprintf("은퇴 시점: %s · 월지출: %s · 연금 파악: %s · 부채: %s · 우선순위: %s",
		get("retire_year"), get("monthly_spend"), get("pension_ready"), get("debt"), get("priority"))
}

func dedupeTruncate(items []string, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
		if len(out) == limit {
			break
		}
	}
	return out
}
