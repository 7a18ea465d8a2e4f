package scaffold

import "fmt"

// Template bodies for scaffolded files. Every content function is a pure
// function of (name, port) so generated scaffolds are byte-identical for
// equal input.

const gitignoreContent = `node_modules/
dist/
.env
*.log
`

func readmeContent(name, description string) string {
	if description == "" {
		description = "A Node.js project created with nodebox."
	}
	return fmt.Sprintf("# %s\n\n%s\n\n## Getting started\n\n```sh\nnpm install\nnpm start\n```\n", name, description)
}

func nodeIndexJS(name string, port int) string {
	return fmt.Sprintf(`const http = require('http');

const port = process.env.PORT || %d;

const server = http.createServer((req, res) => {
  res.writeHead(200, { 'Content-Type': 'text/html' });
  res.end('<h1>%s</h1><p>Server is running.</p>');
});

server.listen(port, () => {
  console.log('Server running at http://localhost:' + port + '/');
});
`, port, name)
}

func expressIndexJS(name string, port int) string {
	return fmt.Sprintf(`const express = require('express');

const app = express();
const port = process.env.PORT || %d;

app.get('/', (req, res) => {
  res.send('<h1>%s</h1><p>Express server is running.</p>');
});

app.listen(port, () => {
  console.log('Server running at http://localhost:' + port + '/');
});
`, port, name)
}

func fastifyIndexJS(name string, port int) string {
	return fmt.Sprintf(`const fastify = require('fastify')({ logger: true });

fastify.get('/', async () => {
  return { app: '%s', status: 'running' };
});

fastify.listen({ port: process.env.PORT || %d }, (err, address) => {
  if (err) throw err;
  console.log('Server running at ' + address);
});
`, name, port)
}

func koaIndexJS(name string, port int) string {
	return fmt.Sprintf(`const Koa = require('koa');

const app = new Koa();
const port = process.env.PORT || %d;

app.use(async (ctx) => {
  ctx.body = '<h1>%s</h1><p>Koa server is running.</p>';
});

app.listen(port, () => {
  console.log('Server running at http://localhost:' + port + '/');
});
`, port, name)
}

func viteIndexHTML(name, entry string) string {
	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>%s</title>
  </head>
  <body>
    <div id="app"></div>
    <script type="module" src="%s"></script>
  </body>
</html>
`, name, entry)
}

func viteMainJS(name string) string {
	return fmt.Sprintf(`document.querySelector('#app').innerHTML = `+"`"+`
  <h1>%s</h1>
  <p>Vite dev server is running.</p>
`+"`"+`;
`, name)
}

func reactMainJSX() string {
	return `import React from 'react';
import ReactDOM from 'react-dom/client';
import App from './App.jsx';

ReactDOM.createRoot(document.getElementById('app')).render(
  <React.StrictMode>
    <App />
  </React.StrictMode>
);
`
}

func reactAppJSX(name string) string {
	return fmt.Sprintf(`export default function App() {
  return (
    <main>
      <h1>%s</h1>
      <p>React dev server is running.</p>
    </main>
  );
}
`, name)
}

const viteReactConfig = `import { defineConfig } from 'vite';
import react from '@vitejs/plugin-react';

export default defineConfig({
  plugins: [react()],
});
`

func vueMainJS() string {
	return `import { createApp } from 'vue';
import App from './App.vue';

createApp(App).mount('#app');
`
}

func vueAppVue(name string) string {
	return fmt.Sprintf(`<template>
  <main>
    <h1>%s</h1>
    <p>Vue dev server is running.</p>
  </main>
</template>
`, name)
}

const viteVueConfig = `import { defineConfig } from 'vite';
import vue from '@vitejs/plugin-vue';

export default defineConfig({
  plugins: [vue()],
});
`

func svelteMainJS() string {
	return `import App from './App.svelte';

const app = new App({ target: document.getElementById('app') });

export default app;
`
}

func svelteAppSvelte(name string) string {
	return fmt.Sprintf(`<main>
  <h1>%s</h1>
  <p>Svelte dev server is running.</p>
</main>
`, name)
}

const viteSvelteConfig = `import { defineConfig } from 'vite';
import { svelte } from '@sveltejs/vite-plugin-svelte';

export default defineConfig({
  plugins: [svelte()],
});
`

func angularMainTS(name string) string {
	return fmt.Sprintf(`import { bootstrapApplication } from '@angular/platform-browser';
import { Component } from '@angular/core';

@Component({
  selector: 'app-root',
  standalone: true,
  template: '<h1>%s</h1><p>Angular dev server is running.</p>',
})
export class AppComponent {}

bootstrapApplication(AppComponent);
`, name)
}

func nextIndexJS(name string) string {
	return fmt.Sprintf(`export default function Home() {
  return (
    <main>
      <h1>%s</h1>
      <p>Next.js dev server is running.</p>
    </main>
  );
}
`, name)
}

const nextConfig = `/** @type {import('next').NextConfig} */
const nextConfig = {};

module.exports = nextConfig;
`

func astroIndexPage(name string) string {
	return fmt.Sprintf(`---
const title = '%s';
---

<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>{title}</title>
  </head>
  <body>
    <h1>{title}</h1>
    <p>Astro dev server is running.</p>
  </body>
</html>
`, name)
}

const astroConfig = `import { defineConfig } from 'astro/config';

export default defineConfig({});
`

// typeFiles returns the non-manifest scaffold files for a type, keyed by
// relative path.
func typeFiles(t ProjectType, name string, port int) map[string]string {
	switch t {
	case TypeExpress:
		return map[string]string{"index.js": expressIndexJS(name, port)}
	case TypeFastify:
		return map[string]string{"index.js": fastifyIndexJS(name, port)}
	case TypeKoa:
		return map[string]string{"index.js": koaIndexJS(name, port)}
	case TypeVite:
		return map[string]string{
			"index.html": viteIndexHTML(name, "/main.js"),
			"main.js":    viteMainJS(name),
		}
	case TypeReact:
		return map[string]string{
			"index.html":     viteIndexHTML(name, "/src/main.jsx"),
			"src/main.jsx":   reactMainJSX(),
			"src/App.jsx":    reactAppJSX(name),
			"vite.config.js": viteReactConfig,
		}
	case TypeVue:
		return map[string]string{
			"index.html":     viteIndexHTML(name, "/src/main.js"),
			"src/main.js":    vueMainJS(),
			"src/App.vue":    vueAppVue(name),
			"vite.config.js": viteVueConfig,
		}
	case TypeSvelte:
		return map[string]string{
			"index.html":     viteIndexHTML(name, "/src/main.js"),
			"src/main.js":    svelteMainJS(),
			"src/App.svelte": svelteAppSvelte(name),
			"vite.config.js": viteSvelteConfig,
		}
	case TypeAngular:
		return map[string]string{"src/main.ts": angularMainTS(name)}
	case TypeNext:
		return map[string]string{
			"pages/index.js": nextIndexJS(name),
			"next.config.js": nextConfig,
		}
	case TypeAstro:
		return map[string]string{
			"src/pages/index.astro": astroIndexPage(name),
			"astro.config.mjs":      astroConfig,
		}
	default:
		return map[string]string{"index.js": nodeIndexJS(name, port)}
	}
}

// EntryPointPaths returns candidate entry-point paths for the type, most
// likely first. Used by the importer to decide whether a fetched repository
// already contains something runnable.
func (t ProjectType) EntryPointPaths() []string {
	switch normalize(t) {
	case TypeVite, TypeReact, TypeVue, TypeSvelte:
		return []string{"index.html", "src/main.jsx", "src/main.js", "src/main.ts"}
	case TypeAngular:
		return []string{"src/main.ts"}
	case TypeNext:
		return []string{"pages/index.js", "pages/index.jsx", "pages/index.tsx", "app/page.js", "app/page.tsx"}
	case TypeAstro:
		return []string{"src/pages/index.astro"}
	default:
		return []string{"index.js", "src/index.js", "server.js", "app.js", "main.js"}
	}
}

// ConfigPaths returns framework config paths worth fetching for the type.
func (t ProjectType) ConfigPaths() []string {
	switch normalize(t) {
	case TypeVite, TypeReact, TypeVue, TypeSvelte:
		return []string{"vite.config.js", "vite.config.ts"}
	case TypeAngular:
		return []string{"angular.json"}
	case TypeNext:
		return []string{"next.config.js", "next.config.mjs"}
	case TypeAstro:
		return []string{"astro.config.mjs", "astro.config.ts"}
	default:
		return nil
	}
}
