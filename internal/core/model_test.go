package core

import (
	"testing"
)

func TestParseRoutingTarget(t *testing.T) {
	cases := []struct {
		in   string
		want RoutingTarget
	}{
		{"gemini_knight", TargetGeminiKnight},
		{"user", TargetUser},
		{"lumo_architect", TargetLumoArchitect},
		{"unknown", TargetUnknown},
		{"unknown_target", TargetUnknown},
		{"", TargetUnknown},
		{"GEMINI_KNIGHT", TargetUnknown},
	}

	for _, tc := range cases {
		if got := ParseRoutingTarget(tc.in); got != tc.want {
			t.Errorf("ParseRoutingTarget(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
