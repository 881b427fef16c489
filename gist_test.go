package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeGistAPI serves /gists/{id} from files and /raw/{name} from raw.
func newFakeGistAPI(t *testing.T, files map[string]GistFile, raw map[string]string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/gists/abc123":
			out := make(map[string]GistFile, len(files))
			for name, f := range files {
				if f.Truncated {
					f.RawURL = srv.URL + "/raw/" + name
				}
				out[name] = f
			}
			json.NewEncoder(w).Encode(map[string]any{"files": out})
		case strings.HasPrefix(r.URL.Path, "/raw/"):
			content, ok := raw[strings.TrimPrefix(r.URL.Path, "/raw/")]
			if !ok {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte(content))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchBoardFilePicksFirstBoard(t *testing.T) {
	srv := newFakeGistAPI(t, map[string]GistFile{
		"README.md":  {Filename: "README.md", Content: "# notes"},
		"zeta.yaml":  {Filename: "zeta.yaml", Content: "layout: Z"},
		"alpha.yaml": {Filename: "alpha.yaml", Content: "layout: A"},
	}, nil)
	client := newGistClientWith(srv.Client(), srv.URL)

	f, err := client.FetchBoardFile(context.Background(), "abc123", "")
	require.NoError(t, err)
	assert.Equal(t, "alpha.yaml", f.Filename)
	assert.Equal(t, "layout: A", f.Content)
}

func TestFetchBoardFileByName(t *testing.T) {
	srv := newFakeGistAPI(t, map[string]GistFile{
		"a.yaml": {Filename: "a.yaml", Content: "layout: A"},
		"b.hcl":  {Filename: "b.hcl", Content: `layout = "B"`},
	}, nil)
	client := newGistClientWith(srv.Client(), srv.URL)

	f, err := client.FetchBoardFile(context.Background(), "abc123", "b.hcl")
	require.NoError(t, err)
	assert.Equal(t, `layout = "B"`, f.Content)

	_, err = client.FetchBoardFile(context.Background(), "abc123", "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no file named "missing.yaml"`)
}

func TestFetchBoardFileTruncated(t *testing.T) {
	srv := newFakeGistAPI(t, map[string]GistFile{
		"big.yaml": {Filename: "big.yaml", Content: "layout: A", Truncated: true},
	}, map[string]string{"big.yaml": "layout: ABCDEF"})
	client := newGistClientWith(srv.Client(), srv.URL)

	f, err := client.FetchBoardFile(context.Background(), "abc123", "")
	require.NoError(t, err)
	assert.False(t, f.Truncated)
	assert.Equal(t, "layout: ABCDEF", f.Content)
}

func TestFetchBoardFileTruncatedSizeLimit(t *testing.T) {
	atLimit := "layout: A\n" + strings.Repeat("#", maxGistFileSize-len("layout: A\n"))
	overLimit := atLimit + strings.Repeat("#", 30)

	srv := newFakeGistAPI(t, map[string]GistFile{
		"fits.yaml": {Filename: "fits.yaml", Truncated: true},
		"huge.yaml": {Filename: "huge.yaml", Truncated: true},
	}, map[string]string{"fits.yaml": atLimit, "huge.yaml": overLimit})
	client := newGistClientWith(srv.Client(), srv.URL)

	f, err := client.FetchBoardFile(context.Background(), "abc123", "fits.yaml")
	require.NoError(t, err)
	assert.Len(t, f.Content, maxGistFileSize)

	_, err = client.FetchBoardFile(context.Background(), "abc123", "huge.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGistFileTooLarge)
}

func TestFetchBoardFileErrors(t *testing.T) {
	srv := newFakeGistAPI(t, map[string]GistFile{
		"notes.txt": {Filename: "notes.txt", Content: "hi"},
	}, nil)
	client := newGistClientWith(srv.Client(), srv.URL)

	_, err := client.FetchBoardFile(context.Background(), "unknown", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, err = client.FetchBoardFile(context.Background(), "abc123", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no board file")

	_, err = client.FetchBoardFile(context.Background(), "", "")
	require.Error(t, err)
}

func TestLoadBoardFromGist(t *testing.T) {
	srv := newFakeGistAPI(t, map[string]GistFile{
		"board.hcl": {Filename: "board.hcl", Content: "layout = \"XY\"\nmapping = { \"X\" = \"ex\" }\n"},
	}, nil)
	loader := NewBoardLoader(discardLogger(), nil, newGistClientWith(srv.Client(), srv.URL))

	board, err := loader.Load(context.Background(), "gist:abc123/board.hcl")
	require.NoError(t, err)
	assert.Equal(t, "XY", board.Layout)
	assert.Equal(t, "ex", board.Mapping["X"])
}
