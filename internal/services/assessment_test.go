package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/retirepath-backend/internal/apierr"
	"github.com/yungbote/retirepath-backend/internal/questions"
)

func TestSubmitValidatesAnswers(t *testing.T) {
	repo := &fakeAssessmentRepo{}
	svc := NewAssessmentService(nil, testLogger(t), questions.Default(), repo)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.Submit(ctx, userID, map[string]string{"pension_ready": "모른다"}); err != nil {
		t.Fatalf("Submit(valid) error = %v", err)
	}

	tests := []struct {
		name    string
		answers map[string]string
	}{
		{"empty", map[string]string{}},
		{"unknown question", map[string]string{"favorite_color": "blue"}},
		{"unknown option", map[string]string{"pension_ready": "glorp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, userID, tt.answers)
			apiErr := apierr.From(err)
			if apiErr == nil || apiErr.Code != apierr.CodeValidation {
				t.Fatalf("Submit(%v) = %v, want validation_error", tt.answers, err)
			}
		})
	}
}

func TestLatestIncludesInterimResult(t *testing.T) {
	repo := &fakeAssessmentRepo{}
	svc := NewAssessmentService(nil, testLogger(t), questions.Default(), repo)
	ctx := context.Background()
	userID := uuid.New()

	submitted, err := svc.Submit(ctx, userID, map[string]string{
		"pension_ready": "모른다",
		"monthly_spend": "400 이상",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	res, err := svc.Latest(ctx, userID)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if res == nil {
		t.Fatal("Latest() = nil, want result")
	}
	if res.AssessmentID != submitted.ID {
		t.Fatalf("assessment id = %s, want %s", res.AssessmentID, submitted.ID)
	}
	if len(res.TopPriorities) != 3 {
		t.Fatalf("top priorities = %d, want 3", len(res.TopPriorities))
	}
	if res.TopPriorities[0] != "국민연금/퇴직연금 예상 수령액 조회하기" {
		t.Fatalf("first priority = %q, want pension rule hit", res.TopPriorities[0])
	}
	if got, want := len(res.CurrentTasks), 3; got != want {
		t.Fatalf("current tasks = %d, want %d", got, want)
	}
	if res.Summary == "" {
		t.Fatal("summary is empty")
	}
}

func TestLatestNilWithoutSubmission(t *testing.T) {
	svc := NewAssessmentService(nil, testLogger(t), questions.Default(), &fakeAssessmentRepo{})

	res, err := svc.Latest(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if res != nil {
		t.Fatalf("Latest() = %+v, want nil", res)
	}
}
