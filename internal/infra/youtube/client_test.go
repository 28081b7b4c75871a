package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiKey returns the key the client sent, as query parameter or header.
func apiKey(r *http.Request) string {
	if k := r.URL.Query().Get("key"); k != "" {
		return k
	}
	return r.Header.Get("X-Goog-Api-Key")
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(context.Background(), Config{
		APIKey:   "test_key",
		Endpoint: server.URL + "/",
	})
	require.NoError(t, err)
	return client
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}

func TestGetPlaylist(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/playlists", r.URL.Path)
		assert.Equal(t, "PL123", r.URL.Query().Get("id"))
		assert.Equal(t, "snippet,contentDetails", strings.Join(r.URL.Query()["part"], ","))
		assert.Equal(t, "test_key", apiKey(r))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [{
				"id": "PL123",
				"snippet": {
					"title": "Go Tutorials",
					"channelTitle": "Gopher TV",
					"description": "All about Go"
				},
				"contentDetails": {"itemCount": 42}
			}]
		}`)
	})

	p, err := client.GetPlaylist(context.Background(), "PL123")
	require.NoError(t, err)
	assert.Equal(t, "PL123", p.ID)
	require.NotNil(t, p.Snippet)
	assert.Equal(t, "Go Tutorials", p.Snippet.Title)
	assert.Equal(t, "Gopher TV", p.Snippet.ChannelTitle)
	assert.Equal(t, "All about Go", p.Snippet.Description)
	require.NotNil(t, p.ItemCount)
	assert.Equal(t, int64(42), *p.ItemCount)
}

func TestGetPlaylist_MissingParts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items": [{"id": "PL123"}]}`)
	})

	p, err := client.GetPlaylist(context.Background(), "PL123")
	require.NoError(t, err)
	assert.Nil(t, p.Snippet)
	assert.Nil(t, p.ItemCount)
}

func TestGetPlaylist_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items": []}`)
	})

	_, err := client.GetPlaylist(context.Background(), "PL404")
	assert.True(t, errors.Is(err, ErrPlaylistNotFound))
}

func TestGetPlaylist_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"code": 403, "message": "quotaExceeded"}}`)
	})

	_, err := client.GetPlaylist(context.Background(), "PL123")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, StatusCode(err))
}

func TestListPlaylistItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/playlistItems", r.URL.Path)
		assert.Equal(t, "PL123", r.URL.Query().Get("playlistId"))
		assert.Equal(t, "snippet", strings.Join(r.URL.Query()["part"], ","))
		assert.Equal(t, "50", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "CAUQAA", r.URL.Query().Get("pageToken"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"nextPageToken": "CAoQAA",
			"items": [
				{"id": "i1", "snippet": {"resourceId": {"kind": "youtube#video", "videoId": "v1"}}},
				{"id": "i2"},
				{"id": "i3", "snippet": {"title": "deleted"}},
				{"id": "i4", "snippet": {"resourceId": {"kind": "youtube#video"}}}
			]
		}`)
	})

	page, err := client.ListPlaylistItems(context.Background(), "PL123", "CAUQAA", 0)
	require.NoError(t, err)
	assert.Equal(t, "CAoQAA", page.NextPageToken)
	assert.Equal(t, []PlaylistItem{
		{ID: "i1", VideoID: "v1"},
		{ID: "i2", Missing: "snippet"},
		{ID: "i3", Missing: "snippet.resourceId"},
		{ID: "i4", Missing: "snippet.resourceId.videoId"},
	}, page.Items)
}

func TestListPlaylistItems_FirstPageHasNoToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasToken := r.URL.Query()["pageToken"]
		assert.False(t, hasToken)
		assert.Equal(t, "10", r.URL.Query().Get("maxResults"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items": []}`)
	})

	page, err := client.ListPlaylistItems(context.Background(), "PL123", "", 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextPageToken)
}

func TestListVideos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/videos", r.URL.Path)
		assert.Equal(t, "contentDetails", strings.Join(r.URL.Query()["part"], ","))
		// Repeated id parameters or one comma-joined value are both valid encodings
		ids := strings.Join(r.URL.Query()["id"], ",")
		assert.Equal(t, "v1,v2,v3", ids)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [
				{"id": "v1", "contentDetails": {"duration": "PT4M13S"}},
				{"id": "v2"},
				{"id": "v3", "contentDetails": {"dimension": "2d"}}
			]
		}`)
	})

	videos, err := client.ListVideos(context.Background(), []string{"v1", "v2", "v3"})
	require.NoError(t, err)
	assert.Equal(t, []Video{
		{ID: "v1", Duration: "PT4M13S"},
		{ID: "v2", Missing: "contentDetails"},
		{ID: "v3", Missing: "contentDetails.duration"},
	}, videos)
}

func TestListVideos_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty batch")
	})

	videos, err := client.ListVideos(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestListVideos_TooMany(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an oversized batch")
	})

	ids := make([]string, MaxPageSize+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("v%d", i)
	}
	_, err := client.ListVideos(context.Background(), ids)
	assert.Error(t, err)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 0, StatusCode(nil))
	assert.Equal(t, 0, StatusCode(errors.New("boom")))
}
