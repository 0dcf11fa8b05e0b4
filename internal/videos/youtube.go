// Package videos looks up tutorial videos for a learning-plan week.
// Lookups never fail from the caller's point of view: any error yields an empty list.
package videos

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/skill-gap-advisor/internal/types"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// DefaultTimeout bounds a single search call
const DefaultTimeout = 15 * time.Second

const watchURLPrefix = "https://www.youtube.com/watch?v="

// Searcher finds videos for a query
type Searcher interface {
	// Search returns at most maxResults videos; it returns an empty slice on any failure
	Search(ctx context.Context, query string, maxResults int) []types.Video
}

// YouTubeSearcher searches the YouTube Data API
type YouTubeSearcher struct {
	service *youtube.Service
	timeout time.Duration
	logger  *slog.Logger
}

// NewYouTubeSearcher creates a searcher authenticated with an API key
func NewYouTubeSearcher(ctx context.Context, apiKey string, timeout time.Duration, logger *slog.Logger, opts ...option.ClientOption) (*YouTubeSearcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY not set")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &YouTubeSearcher{service: service, timeout: timeout, logger: logger}, nil
}

// Search implements Searcher
func (s *YouTubeSearcher) Search(ctx context.Context, query string, maxResults int) []types.Video {
	videos := []types.Video{}
	if maxResults <= 0 {
		return videos
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		VideoDuration("medium").
		MaxResults(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		s.logger.Warn("video search failed",
			slog.String("query", query),
			slog.Any("error", err))
		return videos
	}

	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		v := types.Video{URL: watchURLPrefix + item.Id.VideoId}
		if sn := item.Snippet; sn != nil {
			v.Title = sn.Title
			v.Channel = sn.ChannelTitle
			if sn.Thumbnails != nil && sn.Thumbnails.Default != nil {
				v.Thumbnail = sn.Thumbnails.Default.Url
			}
		}
		videos = append(videos, v)
		if len(videos) == maxResults {
			break
		}
	}
	return videos
}

// nopSearcher is used when no credential is configured
type nopSearcher struct{}

func (nopSearcher) Search(context.Context, string, int) []types.Video {
	return []types.Video{}
}

// Nop returns a searcher that always finds nothing
func Nop() Searcher {
	return nopSearcher{}
}

// New returns a YouTube searcher, or a searcher that finds nothing when the
// key is missing or the client cannot be built.
func New(ctx context.Context, apiKey string, timeout time.Duration, logger *slog.Logger, opts ...option.ClientOption) Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	s, err := NewYouTubeSearcher(ctx, apiKey, timeout, logger, opts...)
	if err != nil {
		logger.Warn("video lookup disabled", slog.Any("error", err))
		return Nop()
	}
	return s
}
