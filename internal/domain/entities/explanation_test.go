package entities_test

import (
	"testing"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

func TestParseExplanation(t *testing.T) {
	text := "Rule: if + past simple, would + verb.\r\n\r\nExample: If I had time, I would help.\n\nThis is about the present."

	got := entities.ParseExplanation(text)
	want := entities.Explanation{
		{Label: "Rule", Body: "if + past simple, would + verb."},
		{Label: "Example", Body: "If I had time, I would help."},
		{Body: "This is about the present."},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d parts, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("part %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if round := entities.ParseExplanation(got.String()); len(round) != len(got) || round[0] != got[0] {
		t.Errorf("String did not round-trip: %q", got.String())
	}
}

func TestParseExplanation_SentenceWithColon(t *testing.T) {
	got := entities.ParseExplanation("Remember this. Note: the order can flip.")
	if len(got) != 1 || got[0].Label != "" {
		t.Errorf("sentence text was split into a label: %+v", got)
	}
	if entities.ParseExplanation("  \n\n ") != nil {
		t.Error("blank text produced parts")
	}
}
