package store

import (
	"context"

	"github.com/nodeboxhq/nodebox/internal/models"
)

// Keys for persisted session state, namespaced by a fixed prefix.
const (
	KeyLastRepoURL        = "nodebox:last_repo_url"
	KeyLastRepoName       = "nodebox:last_repo_name"
	KeyPreviewURL         = "nodebox:preview_url"
	KeyPreviewAutoRefresh = "nodebox:preview_auto_refresh"
	KeyPreviewConsoleOpen = "nodebox:preview_console_open"
)

// Store defines the persistence interface for nodebox: the project registry
// plus small namespaced key-value session state.
type Store interface {
	// Projects
	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	GetProjectByName(ctx context.Context, name string) (*models.Project, error)
	ListProjects(ctx context.Context) ([]*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id string) error

	// Session state. Entries older than the staleness window read as absent.
	SetState(ctx context.Context, key, value string) error
	GetState(ctx context.Context, key string) (string, bool, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
