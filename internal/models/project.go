package models

import "time"

// Project represents a scaffolded or imported Node.js project in the workspace.
type Project struct {
	ID        string
	Name      string
	Path      string
	Type      string
	Port      int
	RepoURL   string
	StartCmd  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
