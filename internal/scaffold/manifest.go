package scaffold

import (
	"encoding/json"
	"fmt"
)

// Manifest is a typed package.json. Only the fields nodebox reads or writes
// are modeled; unknown fields from remote manifests are dropped.
type Manifest struct {
	Name            string            `json:"name,omitempty"`
	Version         string            `json:"version,omitempty"`
	Description     string            `json:"description,omitempty"`
	Main            string            `json:"main,omitempty"`
	License         string            `json:"license,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// ParseManifest decodes package.json bytes. Dependency values that are not
// plain strings are skipped rather than failing the whole parse.
func ParseManifest(data []byte) (*Manifest, error) {
	var raw struct {
		Name            string                     `json:"name"`
		Version         string                     `json:"version"`
		Description     string                     `json:"description"`
		Main            string                     `json:"main"`
		License         string                     `json:"license"`
		Scripts         map[string]json.RawMessage `json:"scripts"`
		Dependencies    map[string]json.RawMessage `json:"dependencies"`
		DevDependencies map[string]json.RawMessage `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &Manifest{
		Name:            raw.Name,
		Version:         raw.Version,
		Description:     raw.Description,
		Main:            raw.Main,
		License:         raw.License,
		Scripts:         stringValues(raw.Scripts),
		Dependencies:    stringValues(raw.Dependencies),
		DevDependencies: stringValues(raw.DevDependencies),
	}, nil
}

func stringValues(raw map[string]json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Render serializes the manifest as indented JSON with a trailing newline.
// Map keys marshal sorted, so output is byte-identical for equal input.
func (m *Manifest) Render() string {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		// Manifest contains only strings and string maps; this cannot fail.
		return "{}\n"
	}
	return string(data) + "\n"
}

// MergeManifests layers base template defaults, a remote-sourced manifest,
// and explicit caller overrides, in that precedence order (later wins).
// Scripts/dependencies/devDependencies merge per key; scalar fields take the
// most specific non-empty value, so remote data beats generated defaults.
func MergeManifests(base, remote, override *Manifest) *Manifest {
	layers := []*Manifest{base, remote, override}
	out := &Manifest{}
	for _, l := range layers {
		if l == nil {
			continue
		}
		if l.Name != "" {
			out.Name = l.Name
		}
		if l.Version != "" {
			out.Version = l.Version
		}
		if l.Description != "" {
			out.Description = l.Description
		}
		if l.Main != "" {
			out.Main = l.Main
		}
		if l.License != "" {
			out.License = l.License
		}
		out.Scripts = mergeStringMaps(out.Scripts, l.Scripts)
		out.Dependencies = mergeStringMaps(out.Dependencies, l.Dependencies)
		out.DevDependencies = mergeStringMaps(out.DevDependencies, l.DevDependencies)
	}
	return out
}

func mergeStringMaps(base, overlay map[string]string) map[string]string {
	if len(overlay) == 0 {
		return base
	}
	out := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}
