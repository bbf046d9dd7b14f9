package service

import (
	"github.com/cloo-solutions/tutorai/internal/domain"
)

// MaxSourceChars bounds the text echoed back for each cited source.
const MaxSourceChars = 300

// Source is a cited passage returned alongside a chat answer.
type Source struct {
	Page domain.PageID `json:"page"`
	Text string        `json:"text"`
}

// SanitizeSources keeps every result in order, truncating text to
// MaxSourceChars runes.
func SanitizeSources(results []domain.RetrievalResult) []Source {
	sources := make([]Source, 0, len(results))
	for _, r := range results {
		text := r.Chunk.Text
		if runes := []rune(text); len(runes) > MaxSourceChars {
			text = string(runes[:MaxSourceChars])
		}
		sources = append(sources, Source{Page: r.Chunk.SourcePage, Text: text})
	}
	return sources
}
