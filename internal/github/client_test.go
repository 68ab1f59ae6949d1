package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZebulonRouseFrantzich/relfetch/internal/release"
)

const releaseJSON = `{
  "tag_name": "v1.2.0",
  "assets": [
    {"id": 1, "name": "tool-1.2.0-linux-amd64.tar.gz", "size": 11, "browser_download_url": "https://example.com/tool-1.2.0-linux-amd64.tar.gz"},
    {"id": 2, "name": "checksums.txt", "size": 64, "browser_download_url": "https://example.com/checksums.txt"}
  ]
}`

var testRepo = release.Repository{Owner: "acme", Repo: "tool"}

func newTestClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(token, WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

func TestFetchRelease_Latest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/tool/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		fmt.Fprint(w, releaseJSON)
	})

	rel, err := newTestClient(t, mux, "secret").FetchRelease(context.Background(), testRepo, nil)
	require.NoError(t, err)

	assert.Equal(t, "v1.2.0", rel.Tag.Value)
	require.Len(t, rel.Assets, 2)
	assert.Equal(t, release.Asset{
		Name:        "tool-1.2.0-linux-amd64.tar.gz",
		DownloadURL: "https://example.com/tool-1.2.0-linux-amd64.tar.gz",
		ID:          1,
		Size:        11,
	}, rel.Assets[0])
	assert.Equal(t, []string{"tool-1.2.0-linux-amd64.tar.gz", "checksums.txt"}, rel.AssetNames())
}

func TestFetchRelease_ByTag(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/tool/releases/tags/v1.2.0", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, releaseJSON)
	})

	rel, err := newTestClient(t, mux, "").FetchRelease(context.Background(), testRepo, &release.Tag{Value: "v1.2.0"})
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", rel.Tag.Value)
}

func TestFetchRelease_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})
	client := newTestClient(t, mux, "")

	_, err := client.FetchRelease(context.Background(), testRepo, &release.Tag{Value: "v9.9.9"})
	require.ErrorIs(t, err, ErrReleaseNotFound)
	assert.Contains(t, err.Error(), "release v9.9.9 of acme/tool")

	_, err = client.FetchRelease(context.Background(), testRepo, nil)
	require.ErrorIs(t, err, ErrReleaseNotFound)
	assert.Contains(t, err.Error(), "latest release of acme/tool")
}

func TestFetchRelease_ServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message": "boom"}`)
	})

	_, err := newTestClient(t, mux, "").FetchRelease(context.Background(), testRepo, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrReleaseNotFound)
	assert.Contains(t, err.Error(), "500")
}

func TestDownloadAsset(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/tool/releases/assets/1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/octet-stream", r.Header.Get("Accept"))
		fmt.Fprint(w, "hello world")
	})

	asset := release.Asset{Name: "tool.tar.gz", ID: 1, Size: 11}
	stream, body, err := newTestClient(t, mux, "").DownloadAsset(context.Background(), testRepo, asset)
	require.NoError(t, err)
	defer body.Close()

	assert.Equal(t, "tool.tar.gz", stream.Name)
	assert.Equal(t, int64(11), stream.Length)

	content, err := io.ReadAll(stream.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))
}

func TestDownloadAsset_FollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/tool/releases/assets/1", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/storage/tool.tar.gz", http.StatusFound)
	})
	mux.HandleFunc("/storage/tool.tar.gz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "from storage")
	})

	stream, body, err := newTestClient(t, mux, "").DownloadAsset(context.Background(), testRepo, release.Asset{Name: "tool.tar.gz", ID: 1})
	require.NoError(t, err)
	defer body.Close()

	content, err := io.ReadAll(stream.Body)
	require.NoError(t, err)
	assert.Equal(t, "from storage", string(content))
}

func TestDownloadAsset_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})

	_, _, err := newTestClient(t, mux, "").DownloadAsset(context.Background(), testRepo, release.Asset{Name: "gone.zip", ID: 7})
	require.ErrorIs(t, err, release.ErrAssetNotFound)
	assert.Contains(t, err.Error(), "asset gone.zip")
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient("", WithBaseURL("://bad"))
	assert.ErrorContains(t, err, "parse base URL")
}
