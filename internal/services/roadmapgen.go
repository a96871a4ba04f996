package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/yungbote/retirepath-backend/internal/apierr"
	"github.com/yungbote/retirepath-backend/internal/clients/openai"
	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/planner"
	"github.com/yungbote/retirepath-backend/internal/types"
)

// RoadmapGenerator produces a validated 12-month plan from a set of
// questionnaire answers.
type RoadmapGenerator interface {
	Generate(ctx context.Context, answers map[string]string) (*types.RoadmapPlan, error)
	Model() string
}

type openAIGenerator struct {
	log    *logger.Logger
	client openai.Client
}

func NewOpenAIGenerator(log *logger.Logger, client openai.Client) RoadmapGenerator {
	return &openAIGenerator{
		log:    log.With("service", "RoadmapGenerator"),
		client: client,
	}
}

func (g *openAIGenerator) Model() string { return g.client.Model() }

func (g *openAIGenerator) Generate(ctx context.Context, answers map[string]string) (*types.RoadmapPlan, error) {
	prompt, err := buildRoadmapPrompt(answers)
	if err != nil {
		return nil, apierr.UpstreamConfig(fmt.Errorf("failed to build prompt: %w", err))
	}

	raw, err := g.client.GenerateJSONText(ctx, prompt)
	if err != nil {
		if apiErr := apierr.From(err); apiErr != nil {
			return nil, apiErr
		}
		return nil, apierr.Upstream(err)
	}

	var plan types.RoadmapPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		g.log.Warn("Model returned non-JSON output", "bytes", len(raw))
		return nil, apierr.UpstreamFormat(fmt.Errorf("model returned non-JSON output"), raw)
	}
	// Month order from the model is not guaranteed even when the set
	// 1..12 is complete.
	sort.Slice(plan.Months, func(i, j int) bool {
		return plan.Months[i].Month < plan.Months[j].Month
	})
	if err := plan.Validate(); err != nil {
		return nil, apierr.UpstreamFormat(fmt.Errorf("model output failed schema validation: %w", err), raw)
	}
	return &plan, nil
}

func buildRoadmapPrompt(answers map[string]string) (string, error) {
	encoded, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`
너는 50~60대 직장인을 위한 은퇴 준비 코치야.
사용자의 진단 답변을 바탕으로 "12개월 실행 로드맵"을 만들어줘.

요구사항:
- 반드시 JSON만 출력
- 한국어로 작성
- 12개월(1~12월) 각각에: 목표, 해야할 일 3개(체크리스트), 주의사항 1개
- 마지막에 전체 우선순위 TOP5 (짧은 문장)

출력 JSON 스키마:
{
  "title": "string",
  "summary": "string",
  "top_priorities": ["string", "... 최대 5개"],
  "months": [
    {
      "month": 1,
      "goal": "string",
      "tasks": ["string", "string", "string"],
      "caution": "string"
    }
    ... month 12까지
  ]
}

사용자 답변:
%s
`, string(encoded)), nil
}

// heuristicGenerator builds a plan locally from the rule table. It backs
// deployments without an OpenAI key and is the deterministic fallback
// the assessment preview shares its rules with.
type heuristicGenerator struct {
	log *logger.Logger
}

func NewHeuristicGenerator(log *logger.Logger) RoadmapGenerator {
	return &heuristicGenerator{log: log.With("service", "HeuristicGenerator")}
}

func (g *heuristicGenerator) Model() string { return "heuristic" }

func (g *heuristicGenerator) Generate(ctx context.Context, answers map[string]string) (*types.RoadmapPlan, error) {
	plan := planner.BuildPlan(answers)
	if err := plan.Validate(); err != nil {
		return nil, apierr.Storage(fmt.Errorf("heuristic plan failed validation: %w", err))
	}
	return plan, nil
}
