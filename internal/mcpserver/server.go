// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the QuickNote library to LLM clients via stdio transport, so chat
// assistants can ground their answers in the stored study material.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/happy-code-vector/QuickNote/internal/search"
	"github.com/happy-code-vector/QuickNote/internal/store"
)

// Server wraps the MCP server with QuickNote tools.
type Server struct {
	mcp    *server.MCPServer
	store  *store.Store
	engine *search.Engine
}

// New creates a new MCP server with all QuickNote tools registered.
func New(st *store.Store, engine *search.Engine) *Server {
	s := &Server{store: st, engine: engine}

	s.mcp = server.NewMCPServer(
		"QuickNote",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("search_documents",
		mcp.WithDescription("Relevance search across document titles, notes, flashcards, and quizzes."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchDocuments)

	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read a document's full note body, flashcards, and quiz items."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
	), s.readDocument)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List stored documents, optionally narrowed to one folder."),
		mcp.WithString("folder_id", mcp.Description("Optional folder id (empty for all)")),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("list_folders",
		mcp.WithDescription("List folders, optionally narrowed to one profile."),
		mcp.WithString("profile_id", mcp.Description("Optional profile id (empty for all)")),
	), s.listFolders)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.engine.Search(query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("no matching documents"), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.store.GetDocument(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(doc, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folderID := ""
	if f, err := req.RequireString("folder_id"); err == nil {
		folderID = f
	}

	documents, err := s.store.ListDocuments(folderID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var lines []string
	for _, d := range documents {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", d.ID, d.Title, d.SourceKind))
	}
	if len(lines) == 0 {
		return mcp.NewToolResultText("no documents"), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) listFolders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profileID := ""
	if p, err := req.RequireString("profile_id"); err == nil {
		profileID = p
	}

	folders, err := s.store.ListFolders(profileID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var lines []string
	for _, f := range folders {
		lines = append(lines, fmt.Sprintf("%s\t%s", f.ID, f.Name))
	}
	if len(lines) == 0 {
		return mcp.NewToolResultText("no folders"), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}
