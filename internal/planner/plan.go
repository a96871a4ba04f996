package planner

import (
	"github.com/yungbote/retirepath-backend/internal/types"
)

// monthTemplate is the static body of one month in the rule-based plan.
// Month 1 is replaced with answer-derived tasks; later months keep their
// template tasks.
type monthTemplate struct {
	goal    string
	tasks   [3]string
	caution string
}

var monthTemplates = [types.PlanMonths]monthTemplate{
	{
		goal:    "현재 상태 파악",
		tasks:   [3]string{"", "", ""}, // filled from the answers
		caution: "숫자를 모아보기 전에 상품 가입부터 하지 않기",
	},
	{
		goal: "현금흐름 정리",
		tasks: [3]string{
			"수입/지출 표를 월 단위로 작성하기",
			"고정비 목록을 만들고 줄일 항목 3개 고르기",
			"비상금 목표액(생활비 3개월치) 정하기",
		},
		caution: "지출 기록은 하루 이틀 빠져도 포기하지 않기",
	},
	{
		goal: "연금 수령액 확정",
		tasks: [3]string{
			"국민연금 예상연금액 조회 결과 저장하기",
			"퇴직연금(DB/DC/IRP) 적립금과 수령 방식 확인하기",
			"개인연금 유무와 예상 수령액 정리하기",
		},
		caution: "예상액은 세전 기준이니 실수령과 혼동하지 않기",
	},
	{
		goal: "부채 구조 점검",
		tasks: [3]string{
			"대출 목록(금리/잔액/만기) 한 장으로 정리하기",
			"금리 높은 순서로 상환 우선순위 매기기",
			"대환/금리인하 요구 가능 여부 확인하기",
		},
		caution: "중도상환수수료를 확인하고 움직이기",
	},
	{
		goal: "보험 보장 점검",
		tasks: [3]string{
			"보유 보험 증권을 모두 모아 보장 내용 표로 만들기",
			"중복 보장과 공백(실손/중대질병/치매) 찾기",
			"불필요한 특약 정리로 보험료 줄이기",
		},
		caution: "해지 전에 재가입 가능 여부부터 확인하기",
	},
	{
		goal: "은퇴 생활비 설계",
		tasks: [3]string{
			"은퇴 후 월 목표 생활비를 숫자로 정하기",
			"연금 수령액과 목표 생활비의 격차 계산하기",
			"격차를 메울 방법(저축/일/지출조정) 후보 적기",
		},
		caution: "물가 상승을 감안해 여유있게 잡기",
	},
	{
		goal: "은퇴 후 소득원 탐색",
		tasks: [3]string{
			"할 수 있는 일/재능/경험 10개 적기",
			"상위 3개를 골라 필요한 준비(자격/교육) 조사하기",
			"주변에 비슷한 경로를 간 사람 1명 이상 만나기",
		},
		caution: "초기 비용이 큰 창업 아이템은 신중하게",
	},
	{
		goal: "자산 배치 점검",
		tasks: [3]string{
			"예금/펀드/주식/부동산 자산 현황 한 장 요약하기",
			"은퇴 시점 기준으로 위험자산 비중 점검하기",
			"세제 혜택 계좌(IRP/연금저축) 납입 한도 확인하기",
		},
		caution: "몰아서 한 상품에 넣지 않기",
	},
	{
		goal: "주거 계획 결정",
		tasks: [3]string{
			"은퇴 후 거주지(유지/이사/다운사이징) 방향 정하기",
			"주택연금 등 주거 자산 활용 옵션 조사하기",
			"주거 관련 고정비(관리비/세금) 예상치 정리하기",
		},
		caution: "가족과 충분히 상의한 뒤 결정하기",
	},
	{
		goal: "건강 관리 루틴 만들기",
		tasks: [3]string{
			"건강검진 예약 또는 결과 리뷰하기",
			"주 3회 이상 할 수 있는 운동 하나 정해서 시작하기",
			"장기 요양/간병 대비 제도(노인장기요양보험) 알아보기",
		},
		caution: "무리한 운동 목표로 시작하지 않기",
	},
	{
		goal: "가족과 계획 공유",
		tasks: [3]string{
			"배우자/가족과 은퇴 계획 공유 자리 만들기",
			"부모님 부양/자녀 지원 범위를 숫자로 합의하기",
			"상속/증여 관련 기초 정보 정리하기",
		},
		caution: "민감한 주제일수록 문서로 정리해 이야기하기",
	},
	{
		goal: "1년 회고와 다음 계획",
		tasks: [3]string{
			"12개월 체크리스트 완료율 회고하기",
			"미완료 항목 중 계속할 것 3개 고르기",
			"내년 연간 계획 초안 만들기",
		},
		caution: "완료율보다 방향이 맞는지 먼저 보기",
	},
}

// BuildPlan assembles the full rule-based plan for an answer set. The
// first month carries the answer-derived tasks from CurrentTasks, padded
// from the fallback list when fewer than 3 rules fire.
func BuildPlan(answers map[string]string) *types.RoadmapPlan {
	plan := &types.RoadmapPlan{
		Title:         "은퇴 준비 12개월 실행 로드맵",
		Summary:       Summary(answers),
		TopPriorities: Priorities(answers),
		Months:        make([]types.RoadmapMonth, 0, types.PlanMonths),
	}
	for i, tmpl := range monthTemplates {
		m := types.RoadmapMonth{
			Month:   i + 1,
			Goal:    tmpl.goal,
			Tasks:   tmpl.tasks[:],
			Caution: tmpl.caution,
		}
		if i == 0 {
			m.Tasks = firstMonthTasks(answers)
		}
		plan.Months = append(plan.Months, m)
	}
	return plan
}

func firstMonthTasks(answers map[string]string) []string {
	tasks := CurrentTasks(answers)
	for _, f := range fallbackPriorities {
		if len(tasks) == types.PlanTasksPerMonth {
			break
		}
		tasks = append(tasks, f)
	}
	return dedupeTruncate(tasks, types.PlanTasksPerMonth)
}
