package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cloo-solutions/tutorai/internal/domain"
)

// DefaultMaxChunkChars is the chunk length limit used when none is configured.
const DefaultMaxChunkChars = 500

// ChunkConfig controls how page text is grouped into chunks.
type ChunkConfig struct {
	MaxChars int
}

// DefaultChunkConfig provides sane defaults for chunking.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{MaxChars: DefaultMaxChunkChars}
}

// A sentence boundary is terminal punctuation followed by whitespace.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// ChunkPages splits every page into sentence-aligned chunks. Chunks keep page
// order and never span pages. A chunk exceeds MaxChars only when it consists
// of a single oversized sentence.
func ChunkPages(pages []domain.Page, cfg ChunkConfig) []domain.Chunk {
	if cfg.MaxChars <= 0 {
		cfg = DefaultChunkConfig()
	}
	chunks := make([]domain.Chunk, 0, len(pages))
	for _, page := range pages {
		for _, text := range chunkText(page.Text, cfg.MaxChars) {
			chunks = append(chunks, domain.Chunk{SourcePage: page.ID, Text: text})
		}
	}
	return chunks
}

func chunkText(text string, maxChars int) []string {
	var (
		chunks []string
		buf    strings.Builder
		bufLen int
	)
	flush := func() {
		if bufLen > 0 {
			chunks = append(chunks, buf.String())
		}
		buf.Reset()
		bufLen = 0
	}

	for _, sentence := range splitSentences(text) {
		n := utf8.RuneCountInString(sentence)
		sep := 0
		if bufLen > 0 {
			sep = 1
		}
		if bufLen+sep+n > maxChars {
			flush()
			sep = 0
		}
		if sep == 1 {
			buf.WriteByte(' ')
		}
		buf.WriteString(sentence)
		bufLen += sep + n
	}
	flush()
	return chunks
}

// splitSentences cuts text after each boundary punctuation mark and drops
// empty pieces.
func splitSentences(text string) []string {
	var sentences []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		add(text[start : loc[0]+1])
		start = loc[1]
	}
	add(text[start:])
	return sentences
}
