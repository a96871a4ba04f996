package services

import (
	"testing"

	"github.com/yungbote/retirepath-backend/internal/apierr"
	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestAuthorize(t *testing.T) {
	es := NewEntitlementService(testLogger(t), nil)

	tests := []struct {
		name        string
		action      GenerationAction
		tier        string
		hasExisting bool
		wantStatus  int
		wantReason  string
	}{
		{"free first create allowed", ActionGenerate, types.TierFree, false, 0, ""},
		{"pro first create allowed", ActionGenerate, types.TierPro, false, 0, ""},
		{"free create with existing denied", ActionGenerate, types.TierFree, true, 409, "already generated"},
		{"pro create with existing denied", ActionGenerate, types.TierPro, true, 409, "already generated"},
		{"free regenerate denied", ActionRegenerate, types.TierFree, false, 402, "paid feature"},
		{"free regenerate with existing denied", ActionRegenerate, types.TierFree, true, 402, "paid feature"},
		{"pro regenerate allowed", ActionRegenerate, types.TierPro, true, 0, ""},
		{"pro regenerate without existing allowed", ActionRegenerate, types.TierPro, false, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := es.Authorize(tt.action, tt.tier, tt.hasExisting)
			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("Authorize() = %v, want allow", err)
				}
				return
			}
			apiErr := apierr.From(err)
			if apiErr == nil {
				t.Fatalf("Authorize() = %v, want apierr", err)
			}
			if apiErr.Status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
			if apiErr.Code != apierr.CodeEntitlementDenied {
				t.Fatalf("code = %q, want %q", apiErr.Code, apierr.CodeEntitlementDenied)
			}
			if apiErr.Err.Error() != tt.wantReason {
				t.Fatalf("reason = %q, want %q", apiErr.Err.Error(), tt.wantReason)
			}
		})
	}
}
