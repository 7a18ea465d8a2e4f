package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodeboxhq/nodebox/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nodebox.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestProjectCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &models.Project{
		Name:     "widgets",
		Path:     "/tmp/widgets",
		Type:     "express",
		Port:     3000,
		RepoURL:  "https://github.com/acme/widgets",
		StartCmd: "npm start",
	}
	require.NoError(t, s.CreateProject(ctx, p))
	assert.NotEmpty(t, p.ID)

	got, err := s.GetProjectByName(ctx, "widgets")
	require.NoError(t, err)
	assert.Equal(t, "express", got.Type)
	assert.Equal(t, 3000, got.Port)

	got.Port = 3001
	require.NoError(t, s.UpdateProject(ctx, got))

	byID, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3001, byID.Port)

	list, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteProject(ctx, p.ID))
	_, err = s.GetProject(ctx, p.ID)
	assert.Error(t, err)
}

func TestCreateProject_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateProject(ctx, &models.Project{Name: "dup", Path: "/a"}))
	err := s.CreateProject(ctx, &models.Project{Name: "dup", Path: "/b"})
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Migrate(context.Background()))
}

func TestSessionState_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetState(ctx, KeyPreviewURL, "http://localhost:4321"))

	v, ok, err := s.GetState(ctx, KeyPreviewURL)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:4321", v)

	// Overwrite wins.
	require.NoError(t, s.SetState(ctx, KeyPreviewURL, "http://localhost:3000"))
	v, ok, err = s.GetState(ctx, KeyPreviewURL)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:3000", v)
}

func TestSessionState_Missing(t *testing.T) {
	s := newTestStore(t)
	_, ok, err := s.GetState(context.Background(), "nodebox:absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionState_StaleEntriesReadAsAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetState(ctx, KeyLastRepoURL, "https://github.com/acme/widgets"))

	// Shift the clock past the staleness window.
	s.now = func() time.Time { return time.Now().Add(StateMaxAge + time.Hour) }

	_, ok, err := s.GetState(ctx, KeyLastRepoURL)
	require.NoError(t, err)
	assert.False(t, ok)
}
