package service

import (
	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

// NearMissDetector flags wrong fill-blank answers that are only a typo away from the canonical one.
// It never changes a verdict; hosts use it to word the feedback.
type NearMissDetector struct {
	threshold float64 // similarity threshold (0.0 - 1.0)
}

// NewNearMissDetector creates a new NearMissDetector.
func NewNearMissDetector() *NearMissDetector {
	return &NearMissDetector{
		threshold: 0.8,
	}
}

// IsNearMiss reports whether a wrong fill-blank answer is close to the correct one.
func (d *NearMissDetector) IsNearMiss(q entities.Question, a entities.Answer) bool {
	if q.Kind != entities.KindFillBlank || !a.IsText() || q.IsCorrect(a) {
		return false
	}

	user := entities.NormalizeText(a.Text)
	correct := entities.NormalizeText(q.CorrectText)
	if user == "" {
		return false
	}

	return d.similarity(user, correct) >= d.threshold
}

// similarity calculates the similarity between two strings using Levenshtein distance.
func (d *NearMissDetector) similarity(s1, s2 string) float64 {
	distance := levenshteinDistance(s1, s2)
	maxLen := max(len([]rune(s1)), len([]rune(s2)))

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshteinDistance calculates the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	rows := len(r1) + 1
	cols := len(r2) + 1

	// Two rows instead of the full matrix.
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i < rows; i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}
