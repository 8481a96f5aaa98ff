// Package mcp exposes phrase search over the Model Context Protocol so
// AI assistants can drive the same search/validate boundary as the CLI.
package mcp

import (
	"context"
	"log"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/CallMeChewy/Finder/internal/config"
	"github.com/CallMeChewy/Finder/internal/version"
)

// Server wraps the MCP server with the project configuration the tools run
// against. Per-call phrase/formula arguments override config values.
type Server struct {
	server           *mcp.Server
	cfg              *config.Config
	root             string
	diagnosticLogger *log.Logger
}

// NewServer creates the MCP server and registers the finder tools.
func NewServer(cfg *config.Config, root string) *Server {
	s := &Server{
		cfg:              cfg,
		root:             root,
		diagnosticLogger: log.New(os.Stderr, "[finder-mcp] ", log.LstdFlags),
	}
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "finder-mcp-server",
		Version: version.Version,
	}, nil)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name: "search",
		Description: "Search files with a boolean phrase formula. Bind phrases to variables A-F " +
			"and combine them with AND/OR/NOT/XOR (symbols &, |, !, ~, ^ work too). " +
			"Matches are returned in file order, then line order.",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"formula"},
			Properties: map[string]*jsonschema.Schema{
				"formula": {
					Type:        "string",
					Description: "Boolean formula over variables A-F, e.g. \"A AND NOT B\"",
				},
				"phrases": {
					Type:        "object",
					Description: "Variable bindings, e.g. {\"A\": \"import\", \"B\": \"test\"}",
					Properties:  phraseProperties(),
				},
				"case_sensitive": {
					Type:        "array",
					Description: "Variables whose phrase must match case exactly, e.g. [\"B\"]",
					Items:       &jsonschema.Schema{Type: "string"},
				},
				"mode": {
					Type:        "string",
					Description: "Matching granularity: \"line\" (default) or \"document\"",
				},
				"unique": {
					Type:        "boolean",
					Description: "Suppress repeats of identical matched text across the whole run",
				},
				"include": {
					Type:        "array",
					Description: "Glob patterns to search, e.g. [\"**/*.go\"]",
					Items:       &jsonschema.Schema{Type: "string"},
				},
				"exclude": {
					Type:        "array",
					Description: "Glob patterns to skip",
					Items:       &jsonschema.Schema{Type: "string"},
				},
			},
		},
	}, s.handleSearch)

	s.server.AddTool(&mcp.Tool{
		Name: "validate_formula",
		Description: "Check a formula without searching: reports syntax errors and semantic " +
			"warnings (undefined variables, tautologies, paradoxes).",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"formula"},
			Properties: map[string]*jsonschema.Schema{
				"formula": {
					Type:        "string",
					Description: "Boolean formula over variables A-F",
				},
				"phrases": {
					Type:        "object",
					Description: "Variable bindings used for undefined-variable warnings",
					Properties:  phraseProperties(),
				},
			},
		},
	}, s.handleValidate)

	s.server.AddTool(&mcp.Tool{
		Name:        "examples",
		Description: "List demonstration formulas that teach the formula language by increasing complexity.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, s.handleExamples)
}

func phraseProperties() map[string]*jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, 6)
	for _, letter := range []string{"A", "B", "C", "D", "E", "F"} {
		props[letter] = &jsonschema.Schema{Type: "string"}
	}
	return props
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.diagnosticLogger.Printf("starting MCP server with stdio transport (root: %s)", s.root)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
