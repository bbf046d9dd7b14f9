// Package youtube turns a video URL into transcript pages.
package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cloo-solutions/tutorai/internal/domain"
)

const (
	// DefaultPageThreshold is the buffered length at which a transcript page is closed.
	DefaultPageThreshold = 800
	// PagePrefix labels transcript pages: YT-1, YT-2, ...
	PagePrefix = "YT-"
)

var videoIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/)([^&]+)`)

// SegmentSource returns the caption text segments of a video in timing order.
type SegmentSource interface {
	Segments(ctx context.Context, videoID string) ([]string, error)
}

// Fetcher validates URLs and groups transcript segments into pages.
type Fetcher struct {
	source    SegmentSource
	threshold int
}

func NewFetcher(source SegmentSource, threshold int) *Fetcher {
	if threshold <= 0 {
		threshold = DefaultPageThreshold
	}
	return &Fetcher{source: source, threshold: threshold}
}

// ExtractVideoID pulls the id out of a watch or youtu.be URL.
func ExtractVideoID(url string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return "", domain.InvalidReference(fmt.Sprintf("invalid YouTube URL %q", url))
	}
	return m[1], nil
}

// FetchPages validates url before any network call, then fetches and
// paginates the transcript.
func (f *Fetcher) FetchPages(ctx context.Context, url string) ([]domain.Page, error) {
	id, err := ExtractVideoID(url)
	if err != nil {
		return nil, err
	}
	segments, err := f.source.Segments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript for %s: %w", id, err)
	}
	pages := Paginate(segments, f.threshold)
	if len(pages) == 0 {
		return nil, domain.EmptySource(fmt.Sprintf("video %s has no transcript text", id))
	}
	return pages, nil
}

// Paginate joins segments with single spaces and closes a page once its
// buffer reaches threshold characters. A trailing partial page is kept.
func Paginate(segments []string, threshold int) []domain.Page {
	var (
		pages []domain.Page
		buf   strings.Builder
		size  int
	)
	flush := func() {
		if text := strings.TrimSpace(buf.String()); text != "" {
			pages = append(pages, domain.Page{
				ID:   domain.PageID(fmt.Sprintf("%s%d", PagePrefix, len(pages)+1)),
				Text: text,
			})
		}
		buf.Reset()
		size = 0
	}

	for _, seg := range segments {
		buf.WriteString(seg)
		buf.WriteByte(' ')
		size += utf8.RuneCountInString(seg) + 1
		if size >= threshold {
			flush()
		}
	}
	flush()
	return pages
}
