package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// PageID identifies a source page. PDF pages use their 1-based number,
// transcripts use synthetic labels such as "YT-3".
type PageID string

// PageNumber returns the PageID for a numbered document page.
func PageNumber(n int) PageID {
	return PageID(strconv.Itoa(n))
}

// MarshalJSON renders numeric page ids as JSON numbers and labels as strings.
func (p PageID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(p)); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(p))
}

// UnmarshalJSON accepts both numbers and strings.
func (p *PageID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PageID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PageID(n.String())
	return nil
}

// Page is one unit of extracted source text. Immutable once created.
type Page struct {
	ID   PageID
	Text string
}

// Chunk is a bounded, sentence-aligned passage from a single page.
type Chunk struct {
	SourcePage PageID
	Text       string
}

// EmbeddedChunk pairs a chunk with its embedding vector.
type EmbeddedChunk struct {
	Chunk  Chunk
	Vector []float32
}

// RetrievalResult is a stored chunk matched against a query.
// Score is the squared Euclidean distance; lower is more relevant.
type RetrievalResult struct {
	Chunk Chunk
	Score float64
}
