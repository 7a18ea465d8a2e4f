package importer

import (
	"strings"

	"github.com/nodeboxhq/nodebox/internal/scaffold"
)

// detectionOrder is the framework priority list: the first signature found
// wins, so meta-frameworks beat the libraries they build on (astro/next
// before react, everything before vite).
var detectionOrder = []struct {
	signature string
	projType  scaffold.ProjectType
}{
	{"astro", scaffold.TypeAstro},
	{"next", scaffold.TypeNext},
	{"react", scaffold.TypeReact},
	{"vue", scaffold.TypeVue},
	{"@angular", scaffold.TypeAngular},
	{"svelte", scaffold.TypeSvelte},
	{"express", scaffold.TypeExpress},
	{"fastify", scaffold.TypeFastify},
	{"koa", scaffold.TypeKoa},
	{"vite", scaffold.TypeVite},
}

// DetectType inspects a manifest's dependencies, devDependencies, and script
// bodies for known framework signatures. A nil or signature-free manifest is
// generic node.
func DetectType(m *scaffold.Manifest) scaffold.ProjectType {
	if m == nil {
		return scaffold.TypeNode
	}
	for _, d := range detectionOrder {
		if hasDependency(m, d.signature) || scriptMentions(m, d.signature) {
			return d.projType
		}
	}
	return scaffold.TypeNode
}

func hasDependency(m *scaffold.Manifest, signature string) bool {
	for dep := range m.Dependencies {
		if dep == signature || strings.HasPrefix(dep, signature+"/") || strings.HasPrefix(dep, signature+"-") {
			return true
		}
	}
	for dep := range m.DevDependencies {
		if dep == signature || strings.HasPrefix(dep, signature+"/") || strings.HasPrefix(dep, signature+"-") {
			return true
		}
	}
	return false
}

func scriptMentions(m *scaffold.Manifest, signature string) bool {
	for _, body := range m.Scripts {
		for _, word := range strings.Fields(body) {
			if word == signature {
				return true
			}
		}
	}
	return false
}
