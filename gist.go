package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/auth"
)

const (
	githubAPIURL = "https://api.github.com"
	gistPrefix   = "gist:"

	// maxGistFileSize caps raw downloads of truncated gist files.
	maxGistFileSize = 1 << 20

	gistTimeout = 10 * time.Second
)

// ErrGistFileTooLarge is returned when a truncated gist file is larger than
// the download limit.
var ErrGistFileTooLarge = errors.New("gist file too large")

// GistClient fetches board files from GitHub gists.
type GistClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewGistClient creates a client from go-gh's HTTP client, which picks up
// GH_TOKEN / GITHUB_TOKEN or the gh CLI login. Without any credentials it
// falls back to anonymous requests, which is enough for public gists.
func NewGistClient() (*GistClient, error) {
	if token, _ := auth.TokenForHost("github.com"); token == "" {
		return &GistClient{
			httpClient: &http.Client{Timeout: gistTimeout},
			baseURL:    githubAPIURL,
		}, nil
	}

	httpClient, err := ghAPI.NewHTTPClient(ghAPI.ClientOptions{
		Host:    "github.com",
		Timeout: gistTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w\nRun 'gh auth login' or set GITHUB_TOKEN environment variable", err)
	}
	return &GistClient{httpClient: httpClient, baseURL: githubAPIURL}, nil
}

// newGistClientWith is used by tests to point the client at a fake API.
func newGistClientWith(httpClient *http.Client, baseURL string) *GistClient {
	return &GistClient{httpClient: httpClient, baseURL: baseURL}
}

// GistFile is one file of a gist.
type GistFile struct {
	Filename  string `json:"filename"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
	RawURL    string `json:"raw_url"`
}

// FetchBoardFile fetches gist id and returns the named file, or the first
// file (by name) with a board extension when name is empty.
func (c *GistClient) FetchBoardFile(ctx context.Context, id, name string) (*GistFile, error) {
	if id == "" {
		return nil, fmt.Errorf("gist source needs an id, e.g. gist:<id>")
	}

	url := fmt.Sprintf("%s/gists/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gist %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API error fetching gist %s: %s", id, resp.Status)
	}

	var gist struct {
		Files map[string]GistFile `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&gist); err != nil {
		return nil, fmt.Errorf("failed to decode gist %s: %w", id, err)
	}

	file, err := pickGistFile(gist.Files, name)
	if err != nil {
		return nil, fmt.Errorf("gist %s: %w", id, err)
	}
	if file.Truncated {
		if err := c.fetchRaw(ctx, &file); err != nil {
			return nil, err
		}
	}
	return &file, nil
}

func pickGistFile(files map[string]GistFile, name string) (GistFile, error) {
	if name != "" {
		f, ok := files[name]
		if !ok {
			return GistFile{}, fmt.Errorf("no file named %q", name)
		}
		if f.Filename == "" {
			f.Filename = name
		}
		return f, nil
	}

	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		if supportedBoardFile(n) {
			f := files[n]
			if f.Filename == "" {
				f.Filename = n
			}
			return f, nil
		}
	}
	return GistFile{}, fmt.Errorf("no board file (.yaml, .yml or .hcl) among %d files", len(files))
}

// fetchRaw replaces truncated content with the full file from raw_url.
func (c *GistClient) fetchRaw(ctx context.Context, f *GistFile) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.RawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", f.Filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch %s: %s", f.Filename, resp.Status)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxGistFileSize+1))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Filename, err)
	}
	if len(b) > maxGistFileSize {
		return fmt.Errorf("%w: %s exceeds %d bytes", ErrGistFileTooLarge, f.Filename, maxGistFileSize)
	}
	f.Content = string(b)
	f.Truncated = false
	return nil
}
