package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRepoURL_HTTPS(t *testing.T) {
	r, err := ParseRepoURL("https://github.com/acme/widgets")
	assert.NoError(t, err)
	assert.Equal(t, Repo{Owner: "acme", Name: "widgets"}, r)
}

func TestParseRepoURL_HTTPSWithGitSuffix(t *testing.T) {
	r, err := ParseRepoURL("https://github.com/acme/widgets.git")
	assert.NoError(t, err)
	assert.Equal(t, "acme/widgets", r.String())
}

func TestParseRepoURL_TrailingPath(t *testing.T) {
	r, err := ParseRepoURL("https://github.com/acme/widgets/tree/main/src")
	assert.NoError(t, err)
	assert.Equal(t, "acme/widgets", r.String())
}

func TestParseRepoURL_SSH(t *testing.T) {
	r, err := ParseRepoURL("git@github.com:acme/widgets.git")
	assert.NoError(t, err)
	assert.Equal(t, Repo{Owner: "acme", Name: "widgets"}, r)
}

func TestParseRepoURL_NoScheme(t *testing.T) {
	r, err := ParseRepoURL("github.com/acme/widgets")
	assert.NoError(t, err)
	assert.Equal(t, "acme/widgets", r.String())
}

func TestParseRepoURL_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"https://example.com/a/b",
		"https://github.com/only-owner",
		"not a url at all",
		"git@gitlab.com:a/b.git",
	} {
		_, err := ParseRepoURL(in)
		assert.ErrorIs(t, err, ErrInvalidURL, in)
	}
}
