package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/retirepath-backend/internal/apierr"
	"github.com/yungbote/retirepath-backend/internal/types"
)

func newProgressFixture(t *testing.T) (ProgressService, uuid.UUID, uuid.UUID, *fakeTaskCheckRepo) {
	t.Helper()
	userID := uuid.New()
	roadmaps := &fakeRoadmapRepo{rows: []*types.Roadmap{{
		ID:     uuid.New(),
		UserID: userID,
	}}}
	checks := newFakeTaskCheckRepo()
	svc := NewProgressService(testLogger(t), roadmaps, checks)
	return svc, userID, roadmaps.rows[0].ID, checks
}

func TestSetCheckedIdempotent(t *testing.T) {
	svc, userID, roadmapID, _ := newProgressFixture(t)
	ctx := context.Background()

	p1, err := svc.SetChecked(ctx, userID, roadmapID, 3, 1, true)
	if err != nil {
		t.Fatalf("SetChecked() error = %v", err)
	}
	p2, err := svc.SetChecked(ctx, userID, roadmapID, 3, 1, true)
	if err != nil {
		t.Fatalf("repeat SetChecked() error = %v", err)
	}
	if p1.Done != 1 || p2.Done != 1 {
		t.Fatalf("done = %d then %d, want 1 both times", p1.Done, p2.Done)
	}
}

func TestSetCheckedUncheckReducesProgress(t *testing.T) {
	svc, userID, roadmapID, _ := newProgressFixture(t)
	ctx := context.Background()

	for i := 0; i < types.PlanTasksPerMonth; i++ {
		if _, err := svc.SetChecked(ctx, userID, roadmapID, 1, i, true); err != nil {
			t.Fatalf("SetChecked() error = %v", err)
		}
	}
	p, err := svc.SetChecked(ctx, userID, roadmapID, 1, 0, false)
	if err != nil {
		t.Fatalf("SetChecked(false) error = %v", err)
	}
	if p.Done != 2 {
		t.Fatalf("done = %d, want 2", p.Done)
	}
	if p.Total != types.PlanTotalTasks {
		t.Fatalf("total = %d, want %d", p.Total, types.PlanTotalTasks)
	}
}

func TestSetCheckedRangeValidation(t *testing.T) {
	svc, userID, roadmapID, checks := newProgressFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		month int
		task  int
	}{
		{"month zero", 0, 0},
		{"month thirteen", 13, 0},
		{"task negative", 1, -1},
		{"task three", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetChecked(ctx, userID, roadmapID, tt.month, tt.task, true)
			apiErr := apierr.From(err)
			if apiErr == nil || apiErr.Code != apierr.CodeValidation {
				t.Fatalf("SetChecked(%d, %d) = %v, want validation_error", tt.month, tt.task, err)
			}
		})
	}
	if len(checks.rows) != 0 {
		t.Fatalf("stored checks = %d, want 0", len(checks.rows))
	}
}

func TestSetCheckedRejectsForeignRoadmap(t *testing.T) {
	svc, _, roadmapID, _ := newProgressFixture(t)

	_, err := svc.SetChecked(context.Background(), uuid.New(), roadmapID, 1, 0, true)
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Code != apierr.CodeValidation {
		t.Fatalf("SetChecked() = %v, want validation_error for foreign roadmap", err)
	}
}
