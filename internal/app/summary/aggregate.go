package summary

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/ytplaylisttime/internal/domain/playlist"
)

// AggregateLength pages through the playlist items, resolves the duration
// of every referenced video and sums them.
// On a failed request or an unusable response the loop stops and the
// total accumulated so far is returned as a degraded result.
func (s *Service) AggregateLength(ctx context.Context, playlistURL string) LengthResult {
	id, err := playlist.ParseID(playlistURL)
	if err != nil {
		zlog.Warn().Err(err).Msgf("Invalid URL provided: %s", playlistURL)
		return LengthResult{Status: StatusDegraded, Err: err}
	}

	result := LengthResult{Status: StatusComplete}
	pageToken := ""

	for {
		if err := ctx.Err(); err != nil {
			result.degrade(err)
			return result
		}

		page, err := s.client.ListPlaylistItems(ctx, id, pageToken, s.pageSize)
		if err != nil {
			zlog.Warn().Err(err).Msgf("Error retrieving playlist data: id=%s page=%d", id, result.Pages+1)
			result.degrade(err)
			return result
		}
		result.Pages++

		if len(page.Items) == 0 {
			if page.NextPageToken != "" {
				zlog.Warn().Msgf("No items found in playlist response: id=%s page=%d", id, result.Pages)
				result.degrade(errors.Newf("page %d of playlist %s has no items", result.Pages, id))
			}
			return result
		}

		videoIDs := make([]string, 0, len(page.Items))
		for _, item := range page.Items {
			if item.VideoID == "" {
				zlog.Warn().Msgf("No %s found in playlist item: id=%s", item.Missing, item.ID)
				result.degrade(errors.Newf("playlist item %s has no %s", item.ID, item.Missing))
				continue
			}
			videoIDs = append(videoIDs, item.VideoID)
		}

		if len(videoIDs) > 0 {
			if ok := s.addVideoDurations(ctx, videoIDs, &result); !ok {
				return result
			}
		}

		if page.NextPageToken == "" {
			zlog.Debug().Msgf("playlist length aggregated: id=%s pages=%d videos=%d total=%s",
				id, result.Pages, result.Videos, result.Total)
			return result
		}
		if page.NextPageToken == pageToken {
			zlog.Warn().Msgf("Repeated page token, stopping: id=%s token=%s", id, pageToken)
			result.degrade(errors.Newf("page token %q repeated", pageToken))
			return result
		}
		pageToken = page.NextPageToken
	}
}

// addVideoDurations resolves one batch of videos and adds their durations
// to result. It returns false when the page loop must stop.
func (s *Service) addVideoDurations(ctx context.Context, videoIDs []string, result *LengthResult) bool {
	videos, err := s.client.ListVideos(ctx, videoIDs)
	if err != nil {
		zlog.Warn().Err(err).Msgf("Error retrieving video data: count=%d", len(videoIDs))
		result.degrade(err)
		return false
	}
	if len(videos) == 0 {
		zlog.Warn().Msgf("No items found in video response: requested=%d", len(videoIDs))
		result.degrade(errors.Newf("videos response for %d IDs has no items", len(videoIDs)))
		return false
	}

	for _, v := range videos {
		if v.Duration == "" {
			zlog.Warn().Msgf("No %s found in video item: id=%s", v.Missing, v.ID)
			result.degrade(errors.Newf("video %s has no %s", v.ID, v.Missing))
			continue
		}

		d, err := playlist.ParseVideoDuration(v.Duration)
		if err != nil {
			zlog.Warn().Err(err).Msgf("Skipping video with bad duration: id=%s", v.ID)
			result.degrade(errors.Wrapf(err, "video %s", v.ID))
			continue
		}

		result.Total += d
		result.Videos++
	}

	return true
}

// degrade marks r degraded, keeping the first cause.
func (r *LengthResult) degrade(err error) {
	r.Status = StatusDegraded
	if r.Err == nil {
		r.Err = err
	}
}
