// Package playlist provides the YouTube playlist domain types.
package playlist

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// URLPrefix is the only accepted playlist URL prefix.
const URLPrefix = "https://youtube.com/playlist"

// DefaultDescription is used when a playlist has no description.
const DefaultDescription = "No description yet."

// ErrInvalidURL is returned when no playlist ID can be extracted from a URL.
var ErrInvalidURL = errors.New("invalid playlist URL")

// Metadata represents the descriptive fields of a playlist.
// The zero value is the all-default record.
type Metadata struct {
	ChannelName string // Channel title
	Title       string // Playlist title
	Description string // Playlist description
	ItemCount   int64  // Number of videos reported by YouTube
}

// ParseID extracts the playlist ID from a YouTube playlist URL.
// The ID is the text between "list=" and the next "&" (or the end of the URL).
func ParseID(rawURL string) (string, error) {
	if !strings.HasPrefix(rawURL, URLPrefix) {
		return "", errors.Wrapf(ErrInvalidURL, "missing %q prefix", URLPrefix)
	}

	// Exactly one list= parameter
	parts := strings.Split(rawURL, "list=")
	if len(parts) != 2 {
		return "", errors.Wrapf(ErrInvalidURL, "expected one list parameter, found %d", len(parts)-1)
	}

	id, _, _ := strings.Cut(parts[1], "&")
	return id, nil
}
