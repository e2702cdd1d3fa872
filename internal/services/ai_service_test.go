package services

import "testing"

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare json", in: `{"jobIds": []}`, want: `{"jobIds": []}`},
		{name: "json fence", in: "```json\n{\"jobIds\": [\"a\"]}\n```", want: `{"jobIds": ["a"]}`},
		{name: "plain fence", in: "```\n{\"rating\": 3}\n```", want: `{"rating": 3}`},
		{name: "surrounding whitespace", in: "  \n{\"rating\": null}\n ", want: `{"rating": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMatchedIDs(t *testing.T) {
	ids, err := parseMatchedIDs("```json\n{\"jobIds\": [\"a\", \"b\"]}\n```")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("ids = %v, want [a b]", ids)
	}

	if _, err := parseMatchedIDs("the model rambled instead of answering"); err == nil {
		t.Error("expected error for non-JSON response")
	}
}
