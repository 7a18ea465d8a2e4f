package models

// PreviewState holds the preview surface settings persisted between sessions.
type PreviewState struct {
	URL         string
	AutoRefresh bool
	ConsoleOpen bool
}

// LastRepo records the most recently imported repository for session resume.
type LastRepo struct {
	URL  string
	Name string
}
