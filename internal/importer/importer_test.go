package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodeboxhq/nodebox/internal/github"
	"github.com/nodeboxhq/nodebox/internal/scaffold"
	"github.com/nodeboxhq/nodebox/internal/workspace"
)

// mockFetcher implements github.Fetcher with canned responses.
type mockFetcher struct {
	mu    sync.Mutex
	meta  *github.Metadata
	files map[string]string // path -> content; missing paths fail

	metadataCalls int
	fetchCalls    int
}

func (m *mockFetcher) Metadata(_ context.Context, _ github.Repo) (*github.Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadataCalls++
	if m.meta == nil {
		return nil, errors.New("network unreachable")
	}
	return m.meta, nil
}

func (m *mockFetcher) FetchFile(_ context.Context, _ github.Repo, _ string, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	content, ok := m.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(content), nil
}

func newTestImporter(t *testing.T, f github.Fetcher) *Importer {
	t.Helper()
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	return New(f, ws)
}

func TestImport_InvalidURLIsTerminal(t *testing.T) {
	f := &mockFetcher{}
	im := newTestImporter(t, f)

	_, err := im.Import(context.Background(), "https://example.com/a/b")
	assert.ErrorIs(t, err, github.ErrInvalidURL)
	assert.Zero(t, f.metadataCalls, "no network calls on parse failure")
	assert.Zero(t, f.fetchCalls)
}

func TestImport_AllNetworkFailuresStillMaterialize(t *testing.T) {
	f := &mockFetcher{} // everything fails
	im := newTestImporter(t, f)

	res, err := im.Import(context.Background(), "https://github.com/acme/widgets")
	require.NoError(t, err)

	assert.Equal(t, "widgets", res.Name)
	assert.Equal(t, scaffold.TypeNode, res.Type)
	assert.Empty(t, res.FetchedPaths)

	assert.Contains(t, res.Files["package.json"], `"name": "widgets"`)
	assert.Contains(t, res.Files["README.md"], "acme/widgets")
	assert.Contains(t, res.Files, "index.js")

	// And the files landed on disk.
	data, err := os.ReadFile(filepath.Join(res.Dir, "index.js"))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestImport_DetectsAstroAndFillsFrameworkFiles(t *testing.T) {
	f := &mockFetcher{
		meta: &github.Metadata{Name: "site", Owner: "acme", DefaultBranch: "main"},
		files: map[string]string{
			"package.json": `{"name":"site","dependencies":{"astro":"^4.0.0"}}`,
		},
	}
	im := newTestImporter(t, f)

	res, err := im.Import(context.Background(), "https://github.com/acme/site")
	require.NoError(t, err)

	assert.Equal(t, scaffold.TypeAstro, res.Type)
	assert.Contains(t, res.Files, "src/pages/index.astro")
	assert.Contains(t, res.Files, "astro.config.mjs")
}

func TestImport_FetchedFilesWinOverSynthesized(t *testing.T) {
	f := &mockFetcher{
		meta: &github.Metadata{Name: "app", Owner: "acme", DefaultBranch: "main"},
		files: map[string]string{
			"package.json": `{"name":"app","dependencies":{"express":"^4.18.0"}}`,
			"README.md":    "# the real readme",
			"index.js":     "console.log('real entry');",
		},
	}
	im := newTestImporter(t, f)

	res, err := im.Import(context.Background(), "https://github.com/acme/app")
	require.NoError(t, err)

	assert.Equal(t, scaffold.TypeExpress, res.Type)
	assert.Equal(t, "# the real readme", res.Files["README.md"])
	assert.Equal(t, "console.log('real entry');", res.Files["index.js"])
	assert.ElementsMatch(t, []string{"README.md", "index.js", "package.json"}, append(res.FetchedPaths, "package.json"))
}

func TestImport_ManifestMergeKeepsRemoteName(t *testing.T) {
	f := &mockFetcher{
		meta: &github.Metadata{Name: "renamed", Owner: "acme", DefaultBranch: "main"},
		files: map[string]string{
			"package.json": `{"name":"upstream-name","version":"3.2.1"}`,
		},
	}
	im := newTestImporter(t, f)

	res, err := im.Import(context.Background(), "https://github.com/acme/renamed")
	require.NoError(t, err)

	assert.Contains(t, res.Files["package.json"], `"name": "upstream-name"`)
	assert.Contains(t, res.Files["package.json"], `"version": "3.2.1"`)
}

func TestImport_DistinctReposLandInDistinctDirs(t *testing.T) {
	f := &mockFetcher{}
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	im := New(f, ws)

	var wg sync.WaitGroup
	for _, url := range []string{"https://github.com/a/alpha", "https://github.com/b/beta"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := im.Import(context.Background(), url)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.True(t, ws.Exists("alpha"))
	assert.True(t, ws.Exists("beta"))
}

func TestImport_SupersededOperationDiscarded(t *testing.T) {
	f := &mockFetcher{}
	im := newTestImporter(t, f)

	// Simulate an older in-flight operation for the same destination being
	// overtaken: register its token, then let a fresh import win.
	stale := im.begin("widgets")

	res, err := im.Import(context.Background(), "https://github.com/acme/widgets")
	require.NoError(t, err)
	assert.False(t, res.Superseded)

	assert.False(t, im.finish("widgets", stale), "stale op must not materialize")
}

func TestImport_DottedRepoNameStaysInWorkspace(t *testing.T) {
	base := t.TempDir()
	ws, err := workspace.New(filepath.Join(base, "projects"))
	require.NoError(t, err)
	im := New(&mockFetcher{}, ws)

	res, err := im.Import(context.Background(), "https://github.com/owner/..")
	require.NoError(t, err)

	assert.Equal(t, "owner", res.Name)
	rel, err := filepath.Rel(ws.Root(), res.Dir)
	require.NoError(t, err)
	assert.Equal(t, "owner", rel, "destination must be a direct workspace subdirectory")

	_, err = os.Stat(filepath.Join(res.Dir, "package.json"))
	assert.NoError(t, err)

	// The workspace's parent must stay untouched.
	_, err = os.Stat(filepath.Join(base, "package.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestDetectType_PriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		m    *scaffold.Manifest
		want scaffold.ProjectType
	}{
		{"nil manifest", nil, scaffold.TypeNode},
		{"empty manifest", &scaffold.Manifest{}, scaffold.TypeNode},
		{
			"astro beats react",
			&scaffold.Manifest{Dependencies: map[string]string{"astro": "^4.0.0", "react": "^18.0.0"}},
			scaffold.TypeAstro,
		},
		{
			"next beats react",
			&scaffold.Manifest{Dependencies: map[string]string{"next": "^14.0.0", "react": "^18.0.0"}},
			scaffold.TypeNext,
		},
		{
			"react beats vite",
			&scaffold.Manifest{
				Dependencies:    map[string]string{"react": "^18.0.0"},
				DevDependencies: map[string]string{"vite": "^5.0.0"},
			},
			scaffold.TypeReact,
		},
		{
			"angular scoped package",
			&scaffold.Manifest{Dependencies: map[string]string{"@angular/core": "^17.0.0"}},
			scaffold.TypeAngular,
		},
		{
			"devDependencies count too",
			&scaffold.Manifest{DevDependencies: map[string]string{"vite": "^5.0.0"}},
			scaffold.TypeVite,
		},
		{
			"script signature",
			&scaffold.Manifest{Scripts: map[string]string{"dev": "astro dev"}},
			scaffold.TypeAstro,
		},
		{
			"plain express",
			&scaffold.Manifest{Dependencies: map[string]string{"express": "^4.18.0"}},
			scaffold.TypeExpress,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectType(tt.m))
		})
	}
}
