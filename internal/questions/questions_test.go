package questions

import (
	"testing"
)

func TestDefaultCatalogHasTenQuestions(t *testing.T) {
	c := Default()
	if c.Len() != 10 {
		t.Fatalf("catalog has %d questions, want 10", c.Len())
	}
	for _, q := range c.All() {
		if q.ID == "" || q.Label == "" {
			t.Fatalf("question %+v missing id or label", q)
		}
		if len(q.Options) < 2 {
			t.Fatalf("question %q has %d options, want >= 2", q.ID, len(q.Options))
		}
	}
}

func TestValidateAnswers(t *testing.T) {
	c := Default()

	cases := []struct {
		name    string
		answers map[string]string
		wantErr bool
	}{
		{
			name: "valid_full",
			answers: map[string]string{
				"retire_year":    "1~3년",
				"age_group":      "55~59",
				"monthly_spend":  "400 이상",
				"pension_ready":  "모른다",
				"debt":           "있음(부담 큼)",
				"house":          "자가",
				"health":         "부족",
				"job_plan":       "없음",
				"family_support": "가끔",
				"priority":       "부채 정리",
			},
		},
		{
			name:    "valid_partial",
			answers: map[string]string{"health": "보통"},
		},
		{
			name:    "empty",
			answers: map[string]string{},
			wantErr: true,
		},
		{
			name:    "unknown_question",
			answers: map[string]string{"shoe_size": "270"},
			wantErr: true,
		},
		{
			name:    "unknown_option",
			answers: map[string]string{"health": "아주 좋음"},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := c.ValidateAnswers(tc.answers)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateAnswers()=%v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/questions.yaml"); err == nil {
		t.Fatal("Load() with missing file should fail")
	}
}
