// Package report renders playlist summaries.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/osa030/ytplaylisttime/internal/app/summary"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Document is the structured form used by the json and yaml formats.
type Document struct {
	PlaylistID   string `json:"playlist_id" yaml:"playlist_id"`
	Title        string `json:"title" yaml:"title"`
	Channel      string `json:"channel" yaml:"channel"`
	Description  string `json:"description" yaml:"description"`
	Videos       int64  `json:"videos" yaml:"videos"`
	Length       string `json:"length" yaml:"length"`
	TotalSeconds int64  `json:"total_seconds" yaml:"total_seconds"`
	Counted      int    `json:"videos_counted" yaml:"videos_counted"`
	Pages        int    `json:"pages" yaml:"pages"`
	Status       string `json:"status" yaml:"status"`
}

// NewDocument converts a summary to its structured form.
func NewDocument(s *summary.Summary) Document {
	return Document{
		PlaylistID:   s.PlaylistID,
		Title:        s.Metadata.Title,
		Channel:      s.Metadata.ChannelName,
		Description:  s.Metadata.Description,
		Videos:       s.Metadata.ItemCount,
		Length:       s.Length.String(),
		TotalSeconds: int64(s.Length.Duration().Seconds()),
		Counted:      s.Videos,
		Pages:        s.Pages,
		Status:       s.Status.String(),
	}
}

// Render writes s to w in the given format.
func Render(w io.Writer, format string, s *summary.Summary) error {
	switch format {
	case FormatText, "":
		return renderText(w, s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewDocument(s)); err != nil {
			return errors.Wrap(err, "failed to encode json")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		if err := enc.Encode(NewDocument(s)); err != nil {
			return errors.Wrap(err, "failed to encode yaml")
		}
		return nil
	default:
		return errors.Newf("unknown output format %q", format)
	}
}

// renderText prints the five labeled summary lines.
func renderText(w io.Writer, s *summary.Summary) error {
	lines := []struct {
		label string
		value any
	}{
		{"Title", s.Metadata.Title},
		{"Channel", s.Metadata.ChannelName},
		{"Description", s.Metadata.Description},
		{"Number of videos", s.Metadata.ItemCount},
		{"Playlist length", s.Length},
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s: %v\n", l.label, l.value); err != nil {
			return errors.Wrap(err, "failed to write report")
		}
	}
	return nil
}
