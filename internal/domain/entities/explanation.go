package entities

import "strings"

// ExplanationPart is one labeled segment of a question explanation, e.g. "rationale".
type ExplanationPart struct {
	Label string `json:"label,omitempty"`
	Body  string `json:"body"`
}

// Explanation is the structured rationale shown after answering and in review.
type Explanation []ExplanationPart

// ParseExplanation splits blank-line separated "label: body" segments.
// A segment without a short label prefix is kept as an unlabeled part.
func ParseExplanation(text string) Explanation {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out Explanation
	for _, segment := range strings.Split(text, "\n\n") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		label, body, ok := strings.Cut(segment, ":")
		if !ok || !isLabel(label) {
			out = append(out, ExplanationPart{Body: segment})
			continue
		}

		out = append(out, ExplanationPart{
			Label: strings.TrimSpace(label),
			Body:  strings.TrimSpace(body),
		})
	}

	return out
}

// isLabel reports whether s looks like a segment label rather than sentence text.
func isLabel(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && len(s) <= 24 && !strings.ContainsAny(s, "\n.!?\"")
}

// String renders the explanation back to its blank-line separated text form.
func (e Explanation) String() string {
	parts := make([]string, 0, len(e))
	for _, p := range e {
		if p.Label == "" {
			parts = append(parts, p.Body)
			continue
		}
		parts = append(parts, p.Label+": "+p.Body)
	}
	return strings.Join(parts, "\n\n")
}
