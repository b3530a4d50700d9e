package telegram

import (
	"testing"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

func TestCallbackData_EncodeDecode(t *testing.T) {
	cd := callbackData{Action: actionQuiz, Params: []string{quizAnswer, "3", "1"}}
	raw := cd.encode()
	if raw != "quiz:ans:3:1" {
		t.Fatalf("encode() = %q", raw)
	}

	got := decodeCallback(raw)
	if got.Action != actionQuiz || got.param(0) != quizAnswer || got.Raw != raw {
		t.Errorf("decodeCallback(%q) = %+v", raw, got)
	}
	if n, ok := got.intParam(1); !ok || n != 3 {
		t.Errorf("intParam(1) = %d, %v; want 3, true", n, ok)
	}
	if got.param(5) != "" {
		t.Errorf("missing param should be empty")
	}
	if _, ok := got.intParam(0); ok {
		t.Errorf("intParam on a non-number should fail")
	}

	if bare := decodeCallback(actionLessons); bare.Action != actionLessons || len(bare.Params) != 0 {
		t.Errorf("decodeCallback(%q) = %+v", actionLessons, bare)
	}
}

func TestQuizStartCallback_RoundTrip(t *testing.T) {
	for _, c := range entities.Categories {
		cfg := entities.SessionConfig{Category: c, Difficulty: entities.DifficultyFilter(entities.DifficultyHard), Count: 50}
		raw := buildQuizStartCallback(cfg)
		if len(raw) > 64 {
			t.Errorf("callback %q exceeds the Telegram limit", raw)
		}

		got, ok := parseSessionConfig(decodeCallback(raw), 1)
		if !ok {
			t.Fatalf("parseSessionConfig(%q) failed", raw)
		}
		if got != cfg {
			t.Errorf("parseSessionConfig(%q) = %+v, want %+v", raw, got, cfg)
		}
	}
}

func TestParseSessionConfig_Rejects(t *testing.T) {
	tests := []string{
		"quiz:start",
		"quiz:start:99:All:10",
		"quiz:start:0:Impossible:10",
		"quiz:start:0:All:0",
		"quiz:start:0:All:x",
	}
	for _, raw := range tests {
		if _, ok := parseSessionConfig(decodeCallback(raw), 1); ok {
			t.Errorf("parseSessionConfig(%q) accepted invalid data", raw)
		}
	}
}

func TestParseCategoryArg(t *testing.T) {
	tests := []struct {
		in   string
		want entities.Category
		ok   bool
	}{
		{"zero", entities.CategoryZero, true},
		{"First", entities.CategoryFirst, true},
		{"second conditional", entities.CategorySecond, true},
		{"3", entities.CategoryThird, true},
		{"mixed  1", entities.CategoryMixed1, true},
		{"Mixed Conditional 2", entities.CategoryMixed2, true},
		{"overall", entities.CategoryOverall, true},
		{"fourth", "", false},
	}
	for _, tt := range tests {
		got, ok := parseCategoryArg(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseCategoryArg(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
