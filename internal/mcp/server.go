// Package mcp exposes nodebox operations as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nodeboxhq/nodebox/internal/classify"
	"github.com/nodeboxhq/nodebox/internal/scaffold"
	"github.com/nodeboxhq/nodebox/internal/session"
	"github.com/nodeboxhq/nodebox/internal/store"
)

// Server wraps the session coordinator and exposes it as MCP tools.
type Server struct {
	store       store.Store
	coordinator *session.Coordinator
}

// NewServer creates the MCP server wrapper.
func NewServer(s store.Store, c *session.Coordinator) *Server {
	return &Server{store: s, coordinator: c}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("nodebox", "1.0.0", server.WithToolCapabilities(true))

	srv.AddTool(s.listProjectsTool())
	srv.AddTool(s.createProjectTool())
	srv.AddTool(s.importRepoTool())
	srv.AddTool(s.classifyOutputTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// ---------------------------------------------------------------------------
// Tool definitions and handlers
// ---------------------------------------------------------------------------

// nodebox_list_projects
func (s *Server) listProjectsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("nodebox_list_projects",
		mcp.WithDescription("List workspace projects. Returns a JSON array with name, path, type, default port, repo URL, and start command."),
	)
	return tool, s.handleListProjects
}

func (s *Server) handleListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list projects: %v", err)), nil
	}

	type projectOut struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Path     string `json:"path"`
		Type     string `json:"type"`
		Port     int    `json:"port"`
		RepoURL  string `json:"repo_url,omitempty"`
		StartCmd string `json:"start_cmd"`
	}

	out := make([]projectOut, len(projects))
	for i, p := range projects {
		out[i] = projectOut{
			ID:       p.ID,
			Name:     p.Name,
			Path:     p.Path,
			Type:     p.Type,
			Port:     p.Port,
			RepoURL:  p.RepoURL,
			StartCmd: p.StartCmd,
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal projects: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// nodebox_create_project
func (s *Server) createProjectTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("nodebox_create_project",
		mcp.WithDescription("Scaffold a new Node.js project in the workspace. Supported types: node, express, fastify, koa, vite, react, vue, svelte, angular, next, astro. Unknown types fall back to node."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Project name (will be slugified)")),
		mcp.WithString("type", mcp.Description("Project type tag (default: node)")),
		mcp.WithString("description", mcp.Description("Optional project description")),
	)
	return tool, s.handleCreateProject
}

func (s *Server) handleCreateProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}
	typeHint := request.GetString("type", string(scaffold.TypeNode))
	description := request.GetString("description", "")

	p, err := s.coordinator.CreateProject(ctx, name, typeHint, description)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("create project: %v", err)), nil
	}

	data, err := json.Marshal(map[string]any{
		"name":      p.Name,
		"path":      p.Path,
		"type":      p.Type,
		"port":      p.Port,
		"start_cmd": p.StartCmd,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal project: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// nodebox_import_repo
func (s *Server) importRepoTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("nodebox_import_repo",
		mcp.WithDescription("Import a GitHub repository into the workspace. Fetches what it can anonymously and synthesizes the rest; only an unparseable URL fails."),
		mcp.WithString("url", mcp.Required(), mcp.Description("GitHub repository URL")),
	)
	return tool, s.handleImportRepo
}

func (s *Server) handleImportRepo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawURL, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: url"), nil
	}

	res, p, err := s.coordinator.ImportRepository(ctx, rawURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("import: %v", err)), nil
	}
	if res.Superseded {
		return mcp.NewToolResultError("import superseded by a newer operation for the same repository"), nil
	}

	data, err := json.Marshal(map[string]any{
		"name":          p.Name,
		"path":          p.Path,
		"type":          p.Type,
		"port":          p.Port,
		"fetched_files": res.FetchedPaths,
		"total_files":   len(res.Files),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// nodebox_classify_output
func (s *Server) classifyOutputTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("nodebox_classify_output",
		mcp.WithDescription("Classify a chunk of dev-server terminal output. Returns ready/error flags and the detected port (0 if none)."),
		mcp.WithString("chunk", mcp.Required(), mcp.Description("Raw terminal output text")),
	)
	return tool, s.handleClassifyOutput
}

func (s *Server) handleClassifyOutput(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chunk, err := request.RequireString("chunk")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: chunk"), nil
	}

	sig := classify.Classify(chunk)
	data, err := json.Marshal(map[string]any{
		"ready": sig.Ready,
		"error": sig.Error,
		"port":  sig.Port,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal signal: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
