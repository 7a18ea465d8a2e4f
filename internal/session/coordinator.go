// Package session wires the scaffolder, importer, runner, and classifier
// together behind one explicitly-owned context object. All cross-component
// state (workspace, store, fetcher) lives here; nothing is package-global.
package session

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/nodeboxhq/nodebox/internal/classify"
	"github.com/nodeboxhq/nodebox/internal/github"
	"github.com/nodeboxhq/nodebox/internal/importer"
	"github.com/nodeboxhq/nodebox/internal/models"
	"github.com/nodeboxhq/nodebox/internal/preview"
	"github.com/nodeboxhq/nodebox/internal/runner"
	"github.com/nodeboxhq/nodebox/internal/scaffold"
	"github.com/nodeboxhq/nodebox/internal/store"
	"github.com/nodeboxhq/nodebox/internal/workspace"
)

// Coordinator owns the session-wide resources and exposes the user-facing
// operations: create, import, run.
type Coordinator struct {
	store    store.Store
	ws       *workspace.Workspace
	importer *importer.Importer
}

// New creates a Coordinator over an open store, a workspace, and a fetcher.
func New(s store.Store, ws *workspace.Workspace, fetcher github.Fetcher) *Coordinator {
	return &Coordinator{
		store:    s,
		ws:       ws,
		importer: importer.New(fetcher, ws),
	}
}

// Workspace returns the session workspace.
func (c *Coordinator) Workspace() *workspace.Workspace { return c.ws }

// CreateProject scaffolds a new project of the given type, writes it to the
// workspace, and registers it.
func (c *Coordinator) CreateProject(ctx context.Context, name, typeHint, description string) (*models.Project, error) {
	projType := scaffold.ParseType(typeHint)
	slug := scaffold.Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("project name %q reduces to an empty slug", name)
	}
	if c.ws.Exists(slug) {
		return nil, fmt.Errorf("project %s already exists in workspace", slug)
	}

	files := scaffold.Generate(scaffold.Options{Name: slug, Type: projType, Description: description})
	if err := c.ws.WriteProject(slug, files); err != nil {
		return nil, err
	}

	p := &models.Project{
		Name:     slug,
		Path:     c.ws.ProjectDir(slug),
		Type:     string(projType),
		Port:     projType.DefaultPort(),
		StartCmd: projType.StartCommand(),
	}
	if err := c.store.CreateProject(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ImportRepository imports a GitHub URL, registers (or refreshes) the
// resulting project, and records it as the last-loaded repository.
func (c *Coordinator) ImportRepository(ctx context.Context, rawURL string) (*importer.Result, *models.Project, error) {
	res, err := c.importer.Import(ctx, rawURL)
	if err != nil {
		return nil, nil, err
	}
	if res.Superseded {
		return res, nil, nil
	}

	p, err := c.upsertProject(ctx, res, rawURL)
	if err != nil {
		return res, nil, err
	}

	// Resume convenience only; a failed write degrades to no saved state.
	_ = c.store.SetState(ctx, store.KeyLastRepoURL, rawURL)
	_ = c.store.SetState(ctx, store.KeyLastRepoName, res.Name)

	return res, p, nil
}

func (c *Coordinator) upsertProject(ctx context.Context, res *importer.Result, rawURL string) (*models.Project, error) {
	p, err := c.store.GetProjectByName(ctx, res.Name)
	if err != nil {
		p = &models.Project{
			Name:     res.Name,
			Path:     res.Dir,
			Type:     string(res.Type),
			Port:     res.Type.DefaultPort(),
			RepoURL:  rawURL,
			StartCmd: res.Type.StartCommand(),
		}
		if err := c.store.CreateProject(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	p.Path = res.Dir
	p.Type = string(res.Type)
	p.Port = res.Type.DefaultPort()
	p.RepoURL = rawURL
	p.StartCmd = res.Type.StartCommand()
	if err := c.store.UpdateProject(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RunStatus is the accumulated classifier outcome of one run.
type RunStatus struct {
	Port    int
	Ready   bool
	Errored bool
}

// RunHandle tracks a live run's status; it is written from the
// output-streaming goroutines and read via Snapshot.
type RunHandle struct {
	mu     sync.Mutex
	status RunStatus
}

// Snapshot returns a consistent copy of the current status.
func (h *RunHandle) Snapshot() RunStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// LineFunc receives each output line with its classification.
type LineFunc func(line string, sig classify.Signal)

// Run executes a shell command in the project directory, classifying output
// as it streams, and waits for it to exit. The first detected port is
// persisted as the preview URL.
func (c *Coordinator) Run(ctx context.Context, p *models.Project, command string, onLine LineFunc) (RunStatus, error) {
	sess, handle, err := c.Start(ctx, p, command, onLine)
	if err != nil {
		return RunStatus{}, err
	}
	runErr := sess.Wait()
	return handle.Snapshot(), runErr
}

// Start launches a long-running command without waiting for it, for callers
// that stream alongside (run --preview). The returned handle updates as
// output arrives.
func (c *Coordinator) Start(ctx context.Context, p *models.Project, command string, onLine LineFunc) (*runner.Session, *RunHandle, error) {
	handle := &RunHandle{}

	sess, err := runner.Start(ctx, p.Path, command, func(line string) {
		sig := classify.Classify(line)

		handle.mu.Lock()
		if sig.Ready {
			handle.status.Ready = true
		}
		if sig.Error {
			handle.status.Errored = true
		}
		firstPort := sig.HasPort() && handle.status.Port == 0
		if firstPort {
			handle.status.Port = sig.Port
		}
		handle.mu.Unlock()

		if firstPort {
			_ = c.store.SetState(ctx, store.KeyPreviewURL, preview.LocalURL(sig.Port))
		}
		if onLine != nil {
			onLine(line, sig)
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return sess, handle, nil
}

// SavePreviewState persists the preview surface settings.
func (c *Coordinator) SavePreviewState(ctx context.Context, st models.PreviewState) error {
	if st.URL != "" {
		if err := preview.ValidateURL(st.URL); err != nil {
			return fmt.Errorf("preview URL rejected: %w", err)
		}
		if err := c.store.SetState(ctx, store.KeyPreviewURL, st.URL); err != nil {
			return err
		}
	}
	if err := c.store.SetState(ctx, store.KeyPreviewAutoRefresh, strconv.FormatBool(st.AutoRefresh)); err != nil {
		return err
	}
	return c.store.SetState(ctx, store.KeyPreviewConsoleOpen, strconv.FormatBool(st.ConsoleOpen))
}

// LoadPreviewState restores persisted preview settings. Missing or stale
// entries degrade to the zero state.
func (c *Coordinator) LoadPreviewState(ctx context.Context) models.PreviewState {
	st := models.PreviewState{}
	if v, ok, _ := c.store.GetState(ctx, store.KeyPreviewURL); ok {
		if preview.ValidateURL(v) == nil {
			st.URL = v
		}
	}
	if v, ok, _ := c.store.GetState(ctx, store.KeyPreviewAutoRefresh); ok {
		st.AutoRefresh, _ = strconv.ParseBool(v)
	}
	if v, ok, _ := c.store.GetState(ctx, store.KeyPreviewConsoleOpen); ok {
		st.ConsoleOpen, _ = strconv.ParseBool(v)
	}
	return st
}

// LastRepo returns the most recently imported repository, if fresh.
func (c *Coordinator) LastRepo(ctx context.Context) (models.LastRepo, bool) {
	url, ok, _ := c.store.GetState(ctx, store.KeyLastRepoURL)
	if !ok {
		return models.LastRepo{}, false
	}
	name, _, _ := c.store.GetState(ctx, store.KeyLastRepoName)
	return models.LastRepo{URL: url, Name: name}, true
}
