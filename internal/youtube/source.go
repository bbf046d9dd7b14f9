package youtube

import (
	"context"
	"errors"
	"fmt"

	yt "github.com/kkdai/youtube/v2"
)

// PreferredLanguage is tried first when a video carries several caption tracks.
const PreferredLanguage = "en"

// ErrNoTranscript is returned when a video has no caption tracks.
var ErrNoTranscript = errors.New("no transcript available")

// CaptionSource reads caption tracks through the public YouTube player API.
type CaptionSource struct {
	client *yt.Client
}

func NewCaptionSource() *CaptionSource {
	return &CaptionSource{client: &yt.Client{}}
}

func (s *CaptionSource) Segments(ctx context.Context, videoID string) ([]string, error) {
	video, err := s.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("load video: %w", err)
	}

	languages := captionLanguages(video.CaptionTracks)
	if len(languages) == 0 {
		return nil, ErrNoTranscript
	}

	var lastErr error
	for _, lang := range languages {
		transcript, err := s.client.GetTranscriptCtx(ctx, video, lang)
		if err != nil {
			lastErr = err
			continue
		}
		segments := make([]string, 0, len(transcript))
		for _, seg := range transcript {
			segments = append(segments, seg.Text)
		}
		return segments, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrNoTranscript, lastErr)
}

// captionLanguages orders track languages with the preferred one first.
func captionLanguages(tracks []yt.CaptionTrack) []string {
	seen := make(map[string]bool, len(tracks))
	langs := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if t.LanguageCode == PreferredLanguage && !seen[t.LanguageCode] {
			seen[t.LanguageCode] = true
			langs = append(langs, t.LanguageCode)
		}
	}
	for _, t := range tracks {
		if t.LanguageCode != "" && !seen[t.LanguageCode] {
			seen[t.LanguageCode] = true
			langs = append(langs, t.LanguageCode)
		}
	}
	return langs
}
