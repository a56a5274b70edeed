// Package github implements the diff fetcher against the GitHub REST API.
// The client surfaces fetch failures as the error kinds the core exposes
// to callers and never retries on its own.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/avandres/prreview/internal/types"
)

const (
	defaultBaseURL = "https://api.github.com"
	perPage        = 100
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// prFile is the wire shape of one entry of GET /pulls/{n}/files.
type prFile struct {
	Filename  string `json:"filename"`
	Patch     string `json:"patch"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchPullRequestFiles returns the changed files of a pull request in
// the order the API lists them, following pagination until exhausted.
func (c *Client) FetchPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]types.ChangedFile, error) {
	var files []types.ChangedFile

	for page := 1; ; page++ {
		batch, err := c.fetchFilesPage(ctx, owner, repo, number, page)
		if err != nil {
			return nil, err
		}

		for _, f := range batch {
			files = append(files, types.ChangedFile{
				Path:      f.Filename,
				DiffText:  f.Patch,
				Additions: f.Additions,
				Deletions: f.Deletions,
			})
		}

		if len(batch) < perPage {
			return files, nil
		}
	}
}

func (c *Client) fetchFilesPage(ctx context.Context, owner, repo string, number, page int) ([]prFile, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/files?per_page=%d&page=%d",
		c.baseURL, owner, repo, number, perPage, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", types.ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s/%s#%s", types.ErrNotFound, owner, repo, strconv.Itoa(number))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: github responded %d", types.ErrAuth, resp.StatusCode)
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: github responded %d: %s", types.ErrUpstream, resp.StatusCode, truncate(body, 200))
	}

	var batch []prFile
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", types.ErrUpstream, err)
	}
	return batch, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
