package ai

import "testing"

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		expect  string
		wantErr bool
	}{
		{
			name:   "bare object",
			input:  `{"a": 1}`,
			expect: `{"a": 1}`,
		},
		{
			name:   "fence with language tag",
			input:  "```json\n{\"a\": 1}\n```",
			expect: `{"a": 1}`,
		},
		{
			name:   "fence without language tag",
			input:  "```\n[1, 2, 3]\n```",
			expect: `[1, 2, 3]`,
		},
		{
			name:   "surrounding whitespace",
			input:  "  \n {\"a\": \"b\"} \n ",
			expect: `{"a": "b"}`,
		},
		{
			name:    "prose reply",
			input:   "Sure! Here is the analysis you asked for.",
			wantErr: true,
		},
		{
			name:    "truncated object",
			input:   `{"a": 1`,
			wantErr: true,
		},
		{
			name:    "empty reply",
			input:   "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload, err := Extract(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got payload %s", payload)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(payload) != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, payload)
			}
		})
	}
}
