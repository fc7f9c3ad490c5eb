package transcript

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"

	log "github.com/tuannvm/ai-toolbox/internal/logging"
	"github.com/tuannvm/ai-toolbox/internal/models"
)

// ErrNoTranscript is returned when a video has no captions in the requested language
var ErrNoTranscript = errors.New("no transcript available")

// Fetcher retrieves the transcript text of a video
type Fetcher interface {
	Fetch(ctx context.Context, videoID, language string) (string, error)
}

// LanguageCode maps the toolbox language names to caption language codes
func LanguageCode(language string) string {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "", "english":
		return "en"
	case "spanish":
		return "es"
	case "french":
		return "fr"
	case "german":
		return "de"
	case "hindi":
		return "hi"
	case "japanese":
		return "ja"
	default:
		return language
	}
}

// YouTubeFetcher reads captions and video metadata from YouTube
type YouTubeFetcher struct {
	httpClient *http.Client
}

// Option configures a YouTubeFetcher
type Option func(*YouTubeFetcher)

// WithHTTPClient overrides the HTTP client used for YouTube calls
func WithHTTPClient(c *http.Client) Option {
	return func(f *YouTubeFetcher) { f.httpClient = c }
}

// NewYouTubeFetcher creates a fetcher against the public YouTube API
func NewYouTubeFetcher(opts ...Option) *YouTubeFetcher {
	f := &YouTubeFetcher{httpClient: &http.Client{Timeout: 30 * time.Second}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// newClient returns a client for one call; youtube.Client changes its own
// state while serving a request and cannot be shared between goroutines.
func (f *YouTubeFetcher) newClient() *youtube.Client {
	return &youtube.Client{HTTPClient: f.httpClient}
}

// Fetch returns the caption segments joined by single spaces
func (f *YouTubeFetcher) Fetch(ctx context.Context, videoID, language string) (string, error) {
	segments, err := f.newClient().GetTranscriptCtx(ctx, &youtube.Video{ID: videoID}, LanguageCode(language))
	if err != nil {
		if isMissingTranscript(err) {
			log.Debugf("No %s transcript for %s: %v", LanguageCode(language), videoID, err)
			return "", ErrNoTranscript
		}
		return "", fmt.Errorf("failed to get transcript: %w", err)
	}

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", ErrNoTranscript
	}
	log.Debugf("Fetched transcript for %s: %d segments", videoID, len(parts))
	return strings.Join(parts, " "), nil
}

// isMissingTranscript reports errors meaning the video has no usable captions
func isMissingTranscript(err error) bool {
	if errors.Is(err, youtube.ErrTranscriptDisabled) {
		return true
	}
	var status youtube.ErrUnexpectedStatusCode
	if errors.As(err, &status) {
		return int(status) == http.StatusBadRequest || int(status) == http.StatusNotFound
	}
	return false
}

// FallbackDetails is returned when video details cannot be fetched
func FallbackDetails() models.VideoDetails {
	return models.VideoDetails{Title: "YouTube Video", Author: "Unknown"}
}

// Details returns title, author and thumbnail of a video.
// Any failure yields FallbackDetails; details are never fatal.
func (f *YouTubeFetcher) Details(ctx context.Context, videoID string) models.VideoDetails {
	video, err := f.newClient().GetVideoContext(ctx, videoID)
	if video == nil || video.Title == "" {
		if err != nil {
			log.Warnf("Failed to fetch video details for %s: %v", videoID, err)
		}
		return FallbackDetails()
	}
	// metadata is filled in even when the video has no playable formats
	if err != nil {
		log.Debugf("Using partial video details for %s: %v", videoID, err)
	}

	details := models.VideoDetails{Title: video.Title, Author: video.Author}
	if n := len(video.Thumbnails); n > 0 {
		details.ThumbnailURL = video.Thumbnails[n-1].URL
	}
	if details.Author == "" {
		details.Author = "Unknown"
	}
	return details
}
