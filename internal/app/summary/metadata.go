package summary

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/ytplaylisttime/internal/domain/playlist"
	"github.com/osa030/ytplaylisttime/internal/infra/youtube"
)

// FetchMetadata retrieves title, channel, description and item count of
// the playlist behind playlistURL with a single API call.
func (s *Service) FetchMetadata(ctx context.Context, playlistURL string) MetadataResult {
	id, err := playlist.ParseID(playlistURL)
	if err != nil {
		zlog.Warn().Err(err).Msgf("Invalid URL provided: %s", playlistURL)
		return MetadataResult{Status: StatusDegraded, Err: err}
	}

	p, err := s.client.GetPlaylist(ctx, id)
	if err != nil {
		if code := youtube.StatusCode(err); code != 0 {
			zlog.Warn().Int("status", code).Msgf("No details found for provided playlist URL: id=%s", id)
		} else {
			zlog.Warn().Err(err).Msgf("No details found for provided playlist URL: id=%s", id)
		}
		return MetadataResult{Status: StatusDegraded, Err: err}
	}

	result := MetadataResult{Status: StatusComplete}
	meta := playlist.Metadata{}

	if p.Snippet != nil {
		meta.ChannelName = p.Snippet.ChannelTitle
		meta.Title = p.Snippet.Title
		meta.Description = p.Snippet.Description
	} else {
		zlog.Warn().Msgf("No snippet found in playlist: id=%s", id)
		result.degrade(errors.Newf("playlist %s has no snippet", id))
	}
	if meta.Description == "" {
		meta.Description = playlist.DefaultDescription
	}

	if p.ItemCount != nil {
		meta.ItemCount = *p.ItemCount
	} else {
		zlog.Warn().Msgf("No contentDetails found in playlist: id=%s", id)
		result.degrade(errors.Newf("playlist %s has no contentDetails", id))
	}

	zlog.Debug().Msgf("fetched playlist metadata: id=%s title=%q items=%d", id, meta.Title, meta.ItemCount)
	result.Metadata = meta
	return result
}

// degrade marks r degraded, keeping the first cause.
func (r *MetadataResult) degrade(err error) {
	r.Status = StatusDegraded
	if r.Err == nil {
		r.Err = err
	}
}
