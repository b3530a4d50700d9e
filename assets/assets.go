// Package assets embeds the default lesson and question corpus.
package assets

import "embed"

// FS holds data/questions.json and data/lessons.json.
//
//go:embed data/*.json
var FS embed.FS

const (
	QuestionsPath = "data/questions.json"
	LessonsPath   = "data/lessons.json"
)
