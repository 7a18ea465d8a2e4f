package scaffold

// ProjectType tags a supported project flavor. Each type maps to a default
// dev-server port, a set of scaffold templates, and quick-start commands.
type ProjectType string

const (
	TypeNode    ProjectType = "node"
	TypeExpress ProjectType = "express"
	TypeFastify ProjectType = "fastify"
	TypeKoa     ProjectType = "koa"
	TypeVite    ProjectType = "vite"
	TypeReact   ProjectType = "react"
	TypeVue     ProjectType = "vue"
	TypeSvelte  ProjectType = "svelte"
	TypeAngular ProjectType = "angular"
	TypeNext    ProjectType = "next"
	TypeAstro   ProjectType = "astro"
)

// typeInfo holds the fixed, build-time attributes of a project type.
type typeInfo struct {
	port            int
	scripts         map[string]string
	dependencies    map[string]string
	devDependencies map[string]string
	quickStart      []string
}

var typeInfos = map[ProjectType]typeInfo{
	TypeNode: {
		port:       3000,
		scripts:    map[string]string{"start": "node index.js"},
		quickStart: []string{"npm start"},
	},
	TypeExpress: {
		port:         3000,
		scripts:      map[string]string{"start": "node index.js", "dev": "node index.js"},
		dependencies: map[string]string{"express": "^4.18.2"},
		quickStart:   []string{"npm install", "npm start"},
	},
	TypeFastify: {
		port:         3000,
		scripts:      map[string]string{"start": "node index.js"},
		dependencies: map[string]string{"fastify": "^4.26.0"},
		quickStart:   []string{"npm install", "npm start"},
	},
	TypeKoa: {
		port:         3000,
		scripts:      map[string]string{"start": "node index.js"},
		dependencies: map[string]string{"koa": "^2.15.0"},
		quickStart:   []string{"npm install", "npm start"},
	},
	TypeVite: {
		port:            5173,
		scripts:         map[string]string{"dev": "vite", "build": "vite build", "preview": "vite preview"},
		devDependencies: map[string]string{"vite": "^5.0.0"},
		quickStart:      []string{"npm install", "npm run dev"},
	},
	TypeReact: {
		port:            5173,
		scripts:         map[string]string{"dev": "vite", "build": "vite build", "preview": "vite preview"},
		dependencies:    map[string]string{"react": "^18.2.0", "react-dom": "^18.2.0"},
		devDependencies: map[string]string{"@vitejs/plugin-react": "^4.2.0", "vite": "^5.0.0"},
		quickStart:      []string{"npm install", "npm run dev"},
	},
	TypeVue: {
		port:            5173,
		scripts:         map[string]string{"dev": "vite", "build": "vite build", "preview": "vite preview"},
		dependencies:    map[string]string{"vue": "^3.4.0"},
		devDependencies: map[string]string{"@vitejs/plugin-vue": "^5.0.0", "vite": "^5.0.0"},
		quickStart:      []string{"npm install", "npm run dev"},
	},
	TypeSvelte: {
		port:            5173,
		scripts:         map[string]string{"dev": "vite", "build": "vite build", "preview": "vite preview"},
		dependencies:    map[string]string{"svelte": "^4.2.0"},
		devDependencies: map[string]string{"@sveltejs/vite-plugin-svelte": "^3.0.0", "vite": "^5.0.0"},
		quickStart:      []string{"npm install", "npm run dev"},
	},
	TypeAngular: {
		port:            4200,
		scripts:         map[string]string{"start": "ng serve", "build": "ng build"},
		dependencies:    map[string]string{"@angular/core": "^17.0.0"},
		devDependencies: map[string]string{"@angular/cli": "^17.0.0"},
		quickStart:      []string{"npm install", "npm start"},
	},
	TypeNext: {
		port:         3000,
		scripts:      map[string]string{"dev": "next dev", "build": "next build", "start": "next start"},
		dependencies: map[string]string{"next": "^14.0.0", "react": "^18.2.0", "react-dom": "^18.2.0"},
		quickStart:   []string{"npm install", "npm run dev"},
	},
	TypeAstro: {
		port:         4321,
		scripts:      map[string]string{"dev": "astro dev", "build": "astro build", "preview": "astro preview"},
		dependencies: map[string]string{"astro": "^4.0.0"},
		quickStart:   []string{"npm install", "npm run dev"},
	},
}

// ParseType maps a free-form type hint to a ProjectType. Unknown hints fall
// back to the plain node type so scaffolding never blocks on a bad hint.
func ParseType(s string) ProjectType {
	t := ProjectType(s)
	if _, ok := typeInfos[t]; ok {
		return t
	}
	return TypeNode
}

// AllTypes returns the supported type tags in display order.
func AllTypes() []ProjectType {
	return []ProjectType{
		TypeNode, TypeExpress, TypeFastify, TypeKoa,
		TypeVite, TypeReact, TypeVue, TypeSvelte,
		TypeAngular, TypeNext, TypeAstro,
	}
}

// DefaultPort returns the dev-server port this type binds by default.
func (t ProjectType) DefaultPort() int {
	return typeInfos[normalize(t)].port
}

// QuickStart returns the shell commands that install and start the project.
func (t ProjectType) QuickStart() []string {
	return typeInfos[normalize(t)].quickStart
}

// NeedsInstall reports whether the type's quick-start begins with a
// dependency install.
func (t ProjectType) NeedsInstall() bool {
	qs := t.QuickStart()
	return len(qs) > 0 && qs[0] == "npm install"
}

// StartCommand returns the command that launches the dev server.
func (t ProjectType) StartCommand() string {
	qs := t.QuickStart()
	if len(qs) == 0 {
		return "npm start"
	}
	return qs[len(qs)-1]
}

func normalize(t ProjectType) ProjectType {
	if _, ok := typeInfos[t]; ok {
		return t
	}
	return TypeNode
}
