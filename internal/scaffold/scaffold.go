// Package scaffold generates deterministic project file sets for the
// supported project types. It performs no network or filesystem access;
// materializing the files is the caller's job.
package scaffold

import (
	"regexp"
	"sort"
	"strings"
)

// Options describes one scaffold request.
type Options struct {
	Name        string
	Type        ProjectType
	Description string

	// RemoteManifest is a manifest fetched from a remote source, layered
	// between template defaults and Overrides. May be nil.
	RemoteManifest *Manifest

	// Overrides are explicit caller-supplied manifest fields; they win over
	// both template defaults and the remote manifest. May be nil.
	Overrides *Manifest
}

var (
	invalidSlugChars = regexp.MustCompile(`[^a-zA-Z0-9.\-]+`)
	repeatUnderscore = regexp.MustCompile(`_+`)
)

// Slugify normalizes a free-text project name: characters outside
// alphanumeric, '.' and '-' become underscores, runs collapse, and leading
// and trailing underscores and dots are trimmed. Dot trimming keeps names
// like "." and ".." from resolving to directories a caller never intended.
// Slugifying a slug is a no-op.
func Slugify(name string) string {
	s := invalidSlugChars.ReplaceAllString(name, "_")
	s = repeatUnderscore.ReplaceAllString(s, "_")
	return strings.Trim(s, "_.")
}

// Generate produces the file set for one scaffold request, keyed by relative
// path. The result always includes a package.json built by the three-way
// manifest merge; same options yield byte-identical content.
func Generate(opts Options) map[string]string {
	t := normalize(opts.Type)
	info := typeInfos[t]
	slug := Slugify(opts.Name)
	if slug == "" {
		slug = "my-project"
	}

	base := &Manifest{
		Name:            slug,
		Version:         "1.0.0",
		Description:     opts.Description,
		Main:            "index.js",
		Scripts:         info.scripts,
		Dependencies:    info.dependencies,
		DevDependencies: info.devDependencies,
	}
	manifest := MergeManifests(base, opts.RemoteManifest, opts.Overrides)

	files := map[string]string{
		"package.json": manifest.Render(),
		"README.md":    readmeContent(slug, firstNonEmpty(opts.Description, manifest.Description)),
		".gitignore":   gitignoreContent,
	}
	for path, content := range typeFiles(t, slug, t.DefaultPort()) {
		files[path] = content
	}
	return files
}

// SortedPaths returns the file paths of a scaffold in lexical order, for
// deterministic iteration.
func SortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
