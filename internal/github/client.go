// Package github fetches repository metadata and file contents from the
// public GitHub surface using anonymous HTTPS GETs. Raw-content URLs are
// tried before the contents API, and optional passthrough proxies are tried
// last; no authentication and no retries.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Metadata is the subset of repository info nodebox uses.
type Metadata struct {
	Name          string
	Owner         string
	Description   string
	DefaultBranch string
	Stars         int
}

// Fetcher is the fetch surface the importer depends on.
type Fetcher interface {
	Metadata(ctx context.Context, repo Repo) (*Metadata, error)
	FetchFile(ctx context.Context, repo Repo, branch, path string) ([]byte, error)
}

// Client implements Fetcher over plain HTTP. Base URLs are injectable so
// tests can point at a local server.
type Client struct {
	http    *http.Client
	apiBase string
	rawBase string
	proxies []string
}

// NewClient creates a Client. Empty bases default to the public GitHub
// endpoints; proxies is an ordered list of passthrough URL prefixes tried
// only after direct fetches fail.
func NewClient(apiBase, rawBase string, proxies []string) *Client {
	if apiBase == "" {
		apiBase = "https://api.github.com"
	}
	if rawBase == "" {
		rawBase = "https://raw.githubusercontent.com"
	}
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		apiBase: strings.TrimSuffix(apiBase, "/"),
		rawBase: strings.TrimSuffix(rawBase, "/"),
		proxies: proxies,
	}
}

// Metadata fetches repository info from the repos endpoint.
func (c *Client) Metadata(ctx context.Context, repo Repo) (*Metadata, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/repos/%s/%s", c.apiBase, repo.Owner, repo.Name))
	if err != nil {
		return nil, err
	}

	var raw struct {
		Name          string `json:"name"`
		Description   string `json:"description"`
		DefaultBranch string `json:"default_branch"`
		Stars         int    `json:"stargazers_count"`
		Owner         struct {
			Login string `json:"login"`
		} `json:"owner"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse repo metadata: %w", err)
	}
	return &Metadata{
		Name:          raw.Name,
		Owner:         raw.Owner.Login,
		Description:   raw.Description,
		DefaultBranch: raw.DefaultBranch,
		Stars:         raw.Stars,
	}, nil
}

// fetchStrategy is one way of obtaining a file's bytes. Strategies are
// evaluated lazily in order; the first success wins.
type fetchStrategy struct {
	name   string
	url    string
	decode func([]byte) ([]byte, error)
}

// FetchFile retrieves one repository file, falling back through raw-content
// URLs on the given branch and master, the contents API, and any configured
// proxies. It returns the first successful result.
func (c *Client) FetchFile(ctx context.Context, repo Repo, branch, path string) ([]byte, error) {
	if branch == "" {
		branch = "main"
	}
	path = strings.TrimPrefix(path, "/")

	rawURL := fmt.Sprintf("%s/%s/%s/%s/%s", c.rawBase, repo.Owner, repo.Name, branch, path)
	strategies := []fetchStrategy{
		{name: "raw " + branch, url: rawURL},
	}
	if branch != "master" {
		strategies = append(strategies, fetchStrategy{
			name: "raw master",
			url:  fmt.Sprintf("%s/%s/%s/master/%s", c.rawBase, repo.Owner, repo.Name, path),
		})
	}
	strategies = append(strategies, fetchStrategy{
		name:   "contents api",
		url:    fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.apiBase, repo.Owner, repo.Name, path),
		decode: decodeContentsPayload,
	})
	for _, proxy := range c.proxies {
		strategies = append(strategies, fetchStrategy{
			name: "proxy " + proxy,
			url:  proxy + rawURL,
		})
	}

	var lastErr error
	for _, st := range strategies {
		body, err := c.get(ctx, st.url)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", st.name, err)
			continue
		}
		if st.decode != nil {
			body, err = st.decode(body)
			if err != nil {
				lastErr = fmt.Errorf("%s: %w", st.name, err)
				continue
			}
		}
		return body, nil
	}
	return nil, fmt.Errorf("fetch %s: %w", path, lastErr)
}

// decodeContentsPayload extracts the base64-encoded content field from a
// contents API response.
func decodeContentsPayload(body []byte) ([]byte, error) {
	var payload struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse contents payload: %w", err)
	}
	if payload.Encoding != "base64" {
		return nil, fmt.Errorf("unexpected content encoding %q", payload.Encoding)
	}
	// GitHub wraps base64 content in newlines.
	cleaned := strings.ReplaceAll(payload.Content, "\n", "")
	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json, */*")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
