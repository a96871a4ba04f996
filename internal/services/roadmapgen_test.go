package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/yungbote/retirepath-backend/internal/apierr"
	"github.com/yungbote/retirepath-backend/internal/planner"
)

type fakeOpenAIClient struct {
	output string
	err    error
	prompt string
}

func (f *fakeOpenAIClient) GenerateJSONText(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func (f *fakeOpenAIClient) Model() string { return "fake-model" }

func TestOpenAIGeneratorValidOutput(t *testing.T) {
	client := &fakeOpenAIClient{output: validPlanJSON(t)}
	gen := NewOpenAIGenerator(testLogger(t), client)

	plan, err := gen.Generate(context.Background(), map[string]string{"pension_ready": "모른다"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := plan.Validate(); err != nil {
		t.Fatalf("returned plan invalid: %v", err)
	}
	if client.prompt == "" {
		t.Fatal("no prompt was sent to the client")
	}
}

func TestOpenAIGeneratorNonJSONRetainsRaw(t *testing.T) {
	gen := NewOpenAIGenerator(testLogger(t), &fakeOpenAIClient{output: "not json"})

	_, err := gen.Generate(context.Background(), map[string]string{})
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Code != apierr.CodeUpstreamFormat {
		t.Fatalf("Generate() = %v, want upstream_format", err)
	}
	if apiErr.Status != 502 {
		t.Fatalf("status = %d, want 502", apiErr.Status)
	}
	if apiErr.Raw != "not json" {
		t.Fatalf("raw = %q, want %q", apiErr.Raw, "not json")
	}
}

func TestOpenAIGeneratorRejectsWrongMonthCount(t *testing.T) {
	plan := planner.BuildPlan(map[string]string{})
	plan.Months = plan.Months[:11]
	raw, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal plan: %v", err)
	}
	gen := NewOpenAIGenerator(testLogger(t), &fakeOpenAIClient{output: string(raw)})

	_, err = gen.Generate(context.Background(), map[string]string{})
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Code != apierr.CodeUpstreamFormat {
		t.Fatalf("Generate() = %v, want upstream_format for 11 months", err)
	}
	if apiErr.Raw != string(raw) {
		t.Fatal("raw payload was not retained on schema rejection")
	}
}

func TestOpenAIGeneratorSortsShuffledMonths(t *testing.T) {
	plan := planner.BuildPlan(map[string]string{})
	// Reverse the month order; the set 1..12 stays complete.
	for i, j := 0, len(plan.Months)-1; i < j; i, j = i+1, j-1 {
		plan.Months[i], plan.Months[j] = plan.Months[j], plan.Months[i]
	}
	raw, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal plan: %v", err)
	}
	gen := NewOpenAIGenerator(testLogger(t), &fakeOpenAIClient{output: string(raw)})

	got, err := gen.Generate(context.Background(), map[string]string{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i, m := range got.Months {
		if m.Month != i+1 {
			t.Fatalf("months[%d].Month = %d, want %d", i, m.Month, i+1)
		}
	}
}

func TestOpenAIGeneratorMapsClientFailure(t *testing.T) {
	gen := NewOpenAIGenerator(testLogger(t), &fakeOpenAIClient{err: fmt.Errorf("connection refused")})

	_, err := gen.Generate(context.Background(), map[string]string{})
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Code != apierr.CodeUpstream {
		t.Fatalf("Generate() = %v, want upstream_error", err)
	}
}

func TestOpenAIGeneratorEmbedsAnswersInPrompt(t *testing.T) {
	client := &fakeOpenAIClient{output: validPlanJSON(t)}
	gen := NewOpenAIGenerator(testLogger(t), client)

	if _, err := gen.Generate(context.Background(), map[string]string{"debt": "있음(부담 큼)"}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(client.prompt, `"debt": "있음(부담 큼)"`) {
		t.Fatalf("prompt does not embed the answers: %q", client.prompt)
	}
}
