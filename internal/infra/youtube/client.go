// Package youtube provides a client for the YouTube Data API v3.
package youtube

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// MaxPageSize is the largest maxResults value the API accepts.
const MaxPageSize = 50

// ErrPlaylistNotFound is returned when playlists.list yields no items.
var ErrPlaylistNotFound = errors.New("playlist not found")

// Client is a YouTube Data API client.
type Client struct {
	service *ytapi.Service
}

// Config represents YouTube client configuration.
type Config struct {
	APIKey   string
	Endpoint string // Optional base URL override, e.g. for tests
}

// Playlist is the subset of a playlists.list item the tool reads.
// Snippet and ItemCount are nil when the response omitted them.
type Playlist struct {
	ID        string
	Snippet   *PlaylistSnippet
	ItemCount *int64
}

// PlaylistSnippet holds the descriptive playlist fields.
type PlaylistSnippet struct {
	Title        string
	ChannelTitle string
	Description  string
}

// ItemsPage is one page of playlistItems.list.
type ItemsPage struct {
	Items         []PlaylistItem
	NextPageToken string
}

// PlaylistItem references a video in a playlist.
// Missing names the absent nested field when VideoID could not be read.
type PlaylistItem struct {
	ID      string
	VideoID string
	Missing string
}

// Video holds the raw ISO-8601 duration of a video.
// Missing names the absent nested field when Duration could not be read.
type Video struct {
	ID       string
	Duration string
	Missing  string
}

// New creates a new YouTube client authenticated with an API key.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("youtube API key is required")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create youtube service")
	}

	return &Client{service: service}, nil
}

// GetPlaylist retrieves snippet and content details of a playlist.
// Reference: https://developers.google.com/youtube/v3/docs/playlists/list
func (c *Client) GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error) {
	if playlistID == "" {
		return nil, errors.New("playlist ID is required")
	}

	resp, err := c.service.Playlists.List([]string{"snippet", "contentDetails"}).
		Id(playlistID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list playlists")
	}
	if len(resp.Items) == 0 {
		return nil, errors.Wrapf(ErrPlaylistNotFound, "id=%s", playlistID)
	}

	item := resp.Items[0]
	p := &Playlist{ID: item.Id}
	if item.Snippet != nil {
		p.Snippet = &PlaylistSnippet{
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			Description:  item.Snippet.Description,
		}
	}
	if item.ContentDetails != nil {
		count := item.ContentDetails.ItemCount
		p.ItemCount = &count
	}

	return p, nil
}

// ListPlaylistItems retrieves one page of playlist items.
// An empty pageToken requests the first page.
// Reference: https://developers.google.com/youtube/v3/docs/playlistItems/list
func (c *Client) ListPlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int) (*ItemsPage, error) {
	if playlistID == "" {
		return nil, errors.New("playlist ID is required")
	}

	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	call := c.service.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(int64(pageSize))
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list playlist items")
	}

	page := &ItemsPage{
		Items:         make([]PlaylistItem, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		page.Items = append(page.Items, convertPlaylistItem(item))
	}

	return page, nil
}

// ListVideos retrieves content details for up to MaxPageSize videos in one call.
// Reference: https://developers.google.com/youtube/v3/docs/videos/list
func (c *Client) ListVideos(ctx context.Context, videoIDs []string) ([]Video, error) {
	if len(videoIDs) == 0 {
		return []Video{}, nil
	}
	if len(videoIDs) > MaxPageSize {
		return nil, errors.Newf("at most %d video IDs per request, got %d", MaxPageSize, len(videoIDs))
	}

	resp, err := c.service.Videos.List([]string{"contentDetails"}).
		Id(videoIDs...).
		MaxResults(MaxPageSize).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list videos")
	}

	zlog.Debug().Msgf("videos.list returned %d of %d requested: ids=%s",
		len(resp.Items), len(videoIDs), strings.Join(videoIDs, ","))

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		v := Video{ID: item.Id}
		switch {
		case item.ContentDetails == nil:
			v.Missing = "contentDetails"
		case item.ContentDetails.Duration == "":
			v.Missing = "contentDetails.duration"
		default:
			v.Duration = item.ContentDetails.Duration
		}
		videos = append(videos, v)
	}

	return videos, nil
}

// StatusCode returns the HTTP status carried by a Google API error, or 0.
func StatusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// convertPlaylistItem reads snippet.resourceId.videoId from an API item.
func convertPlaylistItem(item *ytapi.PlaylistItem) PlaylistItem {
	pi := PlaylistItem{ID: item.Id}
	switch {
	case item.Snippet == nil:
		pi.Missing = "snippet"
	case item.Snippet.ResourceId == nil:
		pi.Missing = "snippet.resourceId"
	case item.Snippet.ResourceId.VideoId == "":
		pi.Missing = "snippet.resourceId.videoId"
	default:
		pi.VideoID = item.Snippet.ResourceId.VideoId
	}
	return pi
}
