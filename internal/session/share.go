package session

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nodeboxhq/nodebox/internal/github"
)

// ShareLink is a deep link carrying a repository URL and an optional
// post-load command via the repo and cmd query parameters.
type ShareLink struct {
	RepoURL string
	Cmd     string
}

// Encode serializes the link against a base page URL.
func (l ShareLink) Encode(base string) string {
	q := url.Values{}
	q.Set("repo", l.RepoURL)
	if l.Cmd != "" {
		q.Set("cmd", l.Cmd)
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + q.Encode()
}

// ParseShareLink extracts repo and cmd parameters from a deep link and
// validates the repository URL. The cmd parameter is optional.
func ParseShareLink(raw string) (ShareLink, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return ShareLink{}, fmt.Errorf("parse share link: %w", err)
	}
	q := u.Query()
	repoURL := q.Get("repo")
	if repoURL == "" {
		return ShareLink{}, fmt.Errorf("share link has no repo parameter")
	}
	if _, err := github.ParseRepoURL(repoURL); err != nil {
		return ShareLink{}, err
	}
	return ShareLink{RepoURL: repoURL, Cmd: q.Get("cmd")}, nil
}
