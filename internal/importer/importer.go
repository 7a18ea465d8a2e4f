// Package importer turns a GitHub URL into a runnable project scaffold.
// Only URL parsing can fail an import; every network miss afterwards is
// replaced by a synthesized fallback so the user always gets something
// runnable, even against rate-limited or unreachable GitHub.
package importer

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/nodeboxhq/nodebox/internal/github"
	"github.com/nodeboxhq/nodebox/internal/scaffold"
	"github.com/nodeboxhq/nodebox/internal/workspace"
)

// fetchConcurrency bounds the step-5 candidate file fan-out.
const fetchConcurrency = 4

// Result describes one completed import.
type Result struct {
	OpID     string
	Repo     github.Repo
	Name     string
	Dir      string
	Type     scaffold.ProjectType
	Metadata *github.Metadata
	Files    map[string]string

	// FetchedPaths lists files that actually came from the remote repo,
	// in lexical order. Everything else in Files was synthesized.
	FetchedPaths []string

	// Superseded is true when a newer import for the same destination
	// started before this one materialized; its writes were discarded.
	Superseded bool
}

// Importer resolves GitHub URLs to materialized projects.
type Importer struct {
	fetcher github.Fetcher
	ws      *workspace.Workspace

	mu      sync.Mutex
	current map[string]string // destination name -> latest operation ID
	entropy *rand.Rand
}

// New creates an Importer writing into the given workspace.
func New(fetcher github.Fetcher, ws *workspace.Workspace) *Importer {
	return &Importer{
		fetcher: fetcher,
		ws:      ws,
		current: make(map[string]string),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Import runs the full import pipeline for one URL. The returned error is
// non-nil only for unparseable URLs (github.ErrInvalidURL) or a local
// filesystem write failure; network degradation is absorbed.
func (im *Importer) Import(ctx context.Context, rawURL string) (*Result, error) {
	repo, err := github.ParseRepoURL(rawURL)
	if err != nil {
		return nil, err
	}

	name := scaffold.Slugify(repo.Name)
	if name == "" {
		// Repo names like "." slugify to nothing; fall back to the owner
		// so the destination stays a real workspace subdirectory.
		name = scaffold.Slugify(repo.Owner)
	}
	if name == "" {
		name = "my-project"
	}
	opID := im.begin(name)

	meta := im.fetchMetadata(ctx, repo)
	manifest := im.fetchManifest(ctx, repo, meta.DefaultBranch)
	projType := DetectType(manifest)
	fetched := im.fetchCandidates(ctx, repo, meta.DefaultBranch, projType)

	files := im.assemble(repo, name, projType, meta, manifest, fetched)

	res := &Result{
		OpID:         opID,
		Repo:         repo,
		Name:         name,
		Dir:          im.ws.ProjectDir(name),
		Type:         projType,
		Metadata:     meta,
		Files:        files,
		FetchedPaths: sortedKeys(fetched),
	}

	// The token check and the write are not atomic: an import for the same
	// destination that begins right after finish() interleaves its writes
	// with ours, and each overlapping path ends up with whichever write
	// landed last. We accept that window rather than hold the lock across
	// filesystem I/O.
	if !im.finish(name, opID) {
		res.Superseded = true
		return res, nil
	}
	if err := im.ws.WriteProject(name, files); err != nil {
		return nil, fmt.Errorf("materialize %s: %w", name, err)
	}
	return res, nil
}

// begin registers a new operation for a destination and returns its token.
// Any in-flight operation for the same destination becomes superseded.
func (im *Importer) begin(name string) string {
	im.mu.Lock()
	defer im.mu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), im.entropy).String()
	im.current[name] = id
	return id
}

// finish reports whether the operation is still the latest one for its
// destination; superseded operations must not materialize.
func (im *Importer) finish(name, opID string) bool {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.current[name] == opID
}

// fetchMetadata tries the repository-info endpoint, substituting a minimal
// synthesized record on any failure. Metadata is cosmetic, never blocking.
func (im *Importer) fetchMetadata(ctx context.Context, repo github.Repo) *github.Metadata {
	meta, err := im.fetcher.Metadata(ctx, repo)
	if err != nil || meta == nil {
		return &github.Metadata{
			Name:          repo.Name,
			Owner:         repo.Owner,
			DefaultBranch: "main",
		}
	}
	if meta.DefaultBranch == "" {
		meta.DefaultBranch = "main"
	}
	return meta
}

// fetchManifest retrieves package.json via the raw/contents fallback chain.
// A nil return means the templater will run on pure defaults.
func (im *Importer) fetchManifest(ctx context.Context, repo github.Repo, branch string) *scaffold.Manifest {
	data, err := im.fetcher.FetchFile(ctx, repo, branch, "package.json")
	if err != nil {
		return nil
	}
	manifest, err := scaffold.ParseManifest(data)
	if err != nil {
		return nil
	}
	return manifest
}

// fetchCandidates fetches the fixed candidate file list concurrently. Each
// file is independent; failures are skipped without aborting the import.
func (im *Importer) fetchCandidates(ctx context.Context, repo github.Repo, branch string, t scaffold.ProjectType) map[string]string {
	paths := candidatePaths(t)

	var mu sync.Mutex
	fetched := make(map[string]string)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for _, path := range paths {
		g.Go(func() error {
			data, err := im.fetcher.FetchFile(ctx, repo, branch, path)
			if err != nil {
				return nil // skipped silently
			}
			mu.Lock()
			fetched[path] = string(data)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return fetched
}

// candidatePaths is the fixed fetch list for a detected type: common project
// files plus the type's entry points and framework config.
func candidatePaths(t scaffold.ProjectType) []string {
	paths := []string{"README.md", "LICENSE", ".gitignore"}
	paths = append(paths, t.EntryPointPaths()...)
	paths = append(paths, t.ConfigPaths()...)
	return paths
}

// assemble builds the final file set: a generated scaffold for the detected
// type (carrying the three-way-merged manifest) overlaid with whatever was
// actually fetched. The merged package.json always wins over the raw remote
// bytes, and a missing README is synthesized from metadata.
func (im *Importer) assemble(repo github.Repo, name string, t scaffold.ProjectType, meta *github.Metadata, manifest *scaffold.Manifest, fetched map[string]string) map[string]string {
	files := scaffold.Generate(scaffold.Options{
		Name:           name,
		Type:           t,
		Description:    meta.Description,
		RemoteManifest: manifest,
	})
	for path, content := range fetched {
		if path == "package.json" {
			continue
		}
		files[path] = content
	}
	if _, ok := fetched["README.md"]; !ok {
		files["README.md"] = synthesizeReadme(repo, meta)
	}
	return files
}

func synthesizeReadme(repo github.Repo, meta *github.Metadata) string {
	desc := meta.Description
	if desc == "" {
		desc = "Imported with nodebox."
	}
	return fmt.Sprintf("# %s\n\n%s\n\nImported from [%s](https://github.com/%s).\n",
		meta.Name, desc, repo.String(), repo.String())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
