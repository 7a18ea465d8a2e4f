package github

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidURL marks input that cannot be parsed into owner/repo. It is the
// only import failure surfaced to the user; everything after parsing
// degrades instead.
var ErrInvalidURL = errors.New("not a recognized GitHub repository URL")

// Repo identifies a GitHub repository.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string { return r.Owner + "/" + r.Name }

// ParseRepoURL extracts owner/repo from the known GitHub URL shapes:
// https://github.com/owner/repo (with or without .git or a trailing path),
// the scheme-less github.com/owner/repo, and SSH-style
// git@github.com:owner/repo.git. Anything else fails with ErrInvalidURL.
func ParseRepoURL(raw string) (Repo, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Repo{}, fmt.Errorf("%w: empty input", ErrInvalidURL)
	}

	// SSH: git@github.com:owner/repo.git
	if rest, ok := strings.CutPrefix(s, "git@github.com:"); ok {
		return splitOwnerRepo(raw, rest)
	}

	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	rest, ok := strings.CutPrefix(s, "github.com/")
	if !ok {
		return Repo{}, fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	return splitOwnerRepo(raw, rest)
}

func splitOwnerRepo(raw, path string) (Repo, error) {
	path = strings.TrimSuffix(path, "/")
	segments := strings.Split(path, "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return Repo{}, fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	name := strings.TrimSuffix(segments[1], ".git")
	if name == "" {
		return Repo{}, fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	return Repo{Owner: segments[0], Name: name}, nil
}
