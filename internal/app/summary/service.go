// Package summary fetches playlist metadata and aggregate length.
//
// Fetch failures never abort a run: each result degrades to default or
// partial data and reports StatusDegraded together with the cause.
package summary

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/osa030/ytplaylisttime/internal/domain/playlist"
	"github.com/osa030/ytplaylisttime/internal/infra/youtube"
)

// YouTubeClient defines the YouTube operations needed by the service.
type YouTubeClient interface {
	GetPlaylist(ctx context.Context, playlistID string) (*youtube.Playlist, error)
	ListPlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int) (*youtube.ItemsPage, error)
	ListVideos(ctx context.Context, videoIDs []string) ([]youtube.Video, error)
}

// Status tells whether a result was built from complete data.
type Status int

const (
	StatusComplete Status = iota
	StatusDegraded
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Worse returns the more degraded of s and o.
func (s Status) Worse(o Status) Status {
	if o > s {
		return o
	}
	return s
}

// MetadataResult is the outcome of FetchMetadata.
type MetadataResult struct {
	Metadata playlist.Metadata
	Status   Status
	Err      error // First cause of degradation, nil when complete
}

// LengthResult is the outcome of AggregateLength.
type LengthResult struct {
	Total  time.Duration // Sum of all resolved video durations
	Videos int           // Number of durations added to Total
	Pages  int           // Number of playlistItems pages fetched
	Status Status
	Err    error // First cause of degradation, nil when complete
}

// Length returns Total split into days, hours, minutes and seconds.
func (r LengthResult) Length() playlist.Length {
	return playlist.NewLength(r.Total)
}

// Summary combines metadata and length of one playlist.
type Summary struct {
	URL        string
	PlaylistID string
	Metadata   playlist.Metadata
	Length     playlist.Length
	Total      time.Duration
	Videos     int
	Pages      int
	Status     Status
	Errors     []error // Degradation causes from both fetches
}

// Config represents service configuration.
type Config struct {
	PageSize int // playlistItems page size, 1..50
}

// Service fetches playlist summaries.
type Service struct {
	client   YouTubeClient
	pageSize int
}

// NewService creates a new Service.
func NewService(client YouTubeClient, cfg Config) *Service {
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > youtube.MaxPageSize {
		pageSize = youtube.MaxPageSize
	}
	return &Service{
		client:   client,
		pageSize: pageSize,
	}
}

// Summarize runs FetchMetadata and AggregateLength concurrently and waits
// for both. The only error returned is context cancellation.
func (s *Service) Summarize(ctx context.Context, playlistURL string) (*Summary, error) {
	var (
		meta   MetadataResult
		length LengthResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		meta = s.FetchMetadata(gctx, playlistURL)
		return canceled(meta.Err)
	})
	g.Go(func() error {
		length = s.AggregateLength(gctx, playlistURL)
		return canceled(length.Err)
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "summary interrupted")
	}

	id, _ := playlist.ParseID(playlistURL)
	sum := &Summary{
		URL:        playlistURL,
		PlaylistID: id,
		Metadata:   meta.Metadata,
		Length:     length.Length(),
		Total:      length.Total,
		Videos:     length.Videos,
		Pages:      length.Pages,
		Status:     meta.Status.Worse(length.Status),
	}
	for _, err := range []error{meta.Err, length.Err} {
		if err != nil {
			sum.Errors = append(sum.Errors, err)
		}
	}

	zlog.Debug().Msgf("summary finished: id=%s status=%s videos=%d pages=%d", id, sum.Status, sum.Videos, sum.Pages)
	return sum, nil
}

// canceled passes through context errors only.
func canceled(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
