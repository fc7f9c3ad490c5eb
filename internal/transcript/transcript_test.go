package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannvm/ai-toolbox/internal/config"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/v/dQw4w9WgXcQ?version=3", "dQw4w9WgXcQ", true},
		{"https://vimeo.com/12345", "", false},
		{"not a url", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractVideoID(tt.url)
		assert.Equal(t, tt.ok, ok, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}
}

func TestLanguageCode(t *testing.T) {
	assert.Equal(t, "en", LanguageCode("english"))
	assert.Equal(t, "en", LanguageCode(""))
	assert.Equal(t, "es", LanguageCode("Spanish"))
	assert.Equal(t, "pt", LanguageCode("pt"))
}

// innertubeStub answers the YouTube endpoints the client calls
type innertubeStub struct {
	player     string
	transcript string
	status     int
	err        error
}

func (s *innertubeStub) RoundTrip(r *http.Request) (*http.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	body := s.transcript
	if strings.HasSuffix(r.URL.Path, "/player") {
		body = s.player
	}
	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    r,
	}, nil
}

func newStubFetcher(stub *innertubeStub) *YouTubeFetcher {
	return NewYouTubeFetcher(WithHTTPClient(&http.Client{Transport: stub}))
}

// transcriptResponse builds a get_transcript response with one segment per text
func transcriptResponse(t *testing.T, texts ...string) string {
	t.Helper()
	segments := make([]map[string]interface{}, 0, len(texts))
	for i, text := range texts {
		segments = append(segments, map[string]interface{}{
			"transcriptSegmentRenderer": map[string]interface{}{
				"startMs": fmt.Sprintf("%d", i*1000),
				"endMs":   fmt.Sprintf("%d", (i+1)*1000),
				"snippet": map[string]interface{}{
					"elementsAttributedString": map[string]interface{}{"content": text},
				},
			},
		})
	}
	body := map[string]interface{}{
		"actions": []interface{}{
			map[string]interface{}{
				"elementsCommand": map[string]interface{}{
					"transformEntityCommand": map[string]interface{}{
						"arguments": map[string]interface{}{
							"transformTranscriptSegmentListArguments": map[string]interface{}{
								"overwrite": map[string]interface{}{"initialSegments": segments},
							},
						},
					},
				},
			},
		},
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return string(data)
}

const playerResponse = `{
	"playabilityStatus": {"status": "OK"},
	"videoDetails": {
		"videoId": "dQw4w9WgXcQ",
		"title": "Go at scale",
		"author": "Gopher",
		"thumbnail": {"thumbnails": [
			{"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg", "width": 120, "height": 90},
			{"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", "width": 480, "height": 360}
		]}
	},
	"streamingData": {"formats": [{"itag": 18}]}
}`

func TestYouTubeFetcherFetch(t *testing.T) {
	stub := &innertubeStub{transcript: transcriptResponse(t, "Hello & welcome", "to the   show", " ")}

	text, err := newStubFetcher(stub).Fetch(context.Background(), "dQw4w9WgXcQ", "english")
	require.NoError(t, err)
	assert.Equal(t, "Hello & welcome to the   show", text)
}

func TestYouTubeFetcherNoTranscript(t *testing.T) {
	tests := []struct {
		name string
		stub *innertubeStub
	}{
		{"captions disabled", &innertubeStub{transcript: `{}`}},
		{"only blank segments", &innertubeStub{transcript: transcriptResponse(t, " ", "")}},
		{"language not available", &innertubeStub{status: http.StatusBadRequest}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newStubFetcher(tt.stub).Fetch(context.Background(), "dQw4w9WgXcQ", "german")
			assert.ErrorIs(t, err, ErrNoTranscript)
		})
	}
}

func TestYouTubeFetcherFetchFailure(t *testing.T) {
	for _, stub := range []*innertubeStub{
		{err: errors.New("connection reset")},
		{status: http.StatusInternalServerError},
	} {
		_, err := newStubFetcher(stub).Fetch(context.Background(), "dQw4w9WgXcQ", "english")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoTranscript)
	}
}

func TestYouTubeFetcherDetails(t *testing.T) {
	d := newStubFetcher(&innertubeStub{player: playerResponse}).Details(context.Background(), "dQw4w9WgXcQ")
	assert.Equal(t, "Go at scale", d.Title)
	assert.Equal(t, "Gopher", d.Author)
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", d.ThumbnailURL)
}

func TestYouTubeFetcherDetailsWithoutFormats(t *testing.T) {
	player := `{"playabilityStatus":{"status":"OK"},"videoDetails":{"title":"Live soon"}}`

	d := newStubFetcher(&innertubeStub{player: player}).Details(context.Background(), "dQw4w9WgXcQ")
	assert.Equal(t, "Live soon", d.Title)
	assert.Equal(t, "Unknown", d.Author)
}

func TestYouTubeFetcherDetailsFallback(t *testing.T) {
	for _, stub := range []*innertubeStub{
		{status: http.StatusInternalServerError},
		{err: errors.New("no route to host")},
		{player: `{"playabilityStatus":{"status":"LOGIN_REQUIRED","reason":"This video is private"}}`},
	} {
		assert.Equal(t, FallbackDetails(), newStubFetcher(stub).Details(context.Background(), "dQw4w9WgXcQ"))
	}
}

type memCache struct {
	mu      sync.Mutex
	data    map[string]string
	ttl     time.Duration
	failGet bool
}

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return "", false, errors.New("connection refused")
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttl = ttl
	return nil
}

type countingFetcher struct {
	calls int
	text  string
	err   error
}

func (f *countingFetcher) Fetch(context.Context, string, string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestCachedFetcher(t *testing.T) {
	cache := &memCache{data: map[string]string{}}
	next := &countingFetcher{text: "cached words"}
	f := NewCachedFetcher(next, cache, time.Hour)

	for i := 0; i < 3; i++ {
		text, err := f.Fetch(context.Background(), "abc", "english")
		require.NoError(t, err)
		assert.Equal(t, "cached words", text)
	}
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, time.Hour, cache.ttl)
	assert.Contains(t, cache.data, "toolbox:transcript:en:abc")
}

func TestCachedFetcherCacheFailureFallsThrough(t *testing.T) {
	cache := &memCache{data: map[string]string{}, failGet: true}
	next := &countingFetcher{text: "fresh"}
	f := NewCachedFetcher(next, cache, time.Minute)

	text, err := f.Fetch(context.Background(), "abc", "english")
	require.NoError(t, err)
	assert.Equal(t, "fresh", text)

	next.err = ErrNoTranscript
	_, err = f.Fetch(context.Background(), "abc", "english")
	assert.ErrorIs(t, err, ErrNoTranscript)
}

func TestNewSourceWithoutRedis(t *testing.T) {
	cfg := config.FromViper(config.NewDefaultViper())

	src, err := NewSource(context.Background(), cfg)
	require.NoError(t, err)
	defer src.Close()

	_, cached := src.Fetcher.(*CachedFetcher)
	assert.False(t, cached)
	assert.NotNil(t, src.Details)
}

func TestNewSourceRedisUnreachable(t *testing.T) {
	cfg := config.FromViper(config.NewDefaultViper())
	cfg.RedisAddr = "127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewSource(ctx, cfg)
	require.Error(t, err)
}
