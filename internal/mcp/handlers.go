package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/CallMeChewy/Finder/internal/engine"
	"github.com/CallMeChewy/Finder/internal/errors"
	"github.com/CallMeChewy/Finder/internal/extract"
	"github.com/CallMeChewy/Finder/internal/files"
	"github.com/CallMeChewy/Finder/internal/formula"
	"github.com/CallMeChewy/Finder/internal/phrase"
)

// SearchParams are the arguments of the search tool.
type SearchParams struct {
	Formula       string            `json:"formula"`
	Phrases       map[string]string `json:"phrases"`
	CaseSensitive []string          `json:"case_sensitive"`
	Mode          string            `json:"mode"`
	Unique        bool              `json:"unique"`
	Include       []string          `json:"include"`
	Exclude       []string          `json:"exclude"`
}

// ValidateParams are the arguments of the validate_formula tool.
type ValidateParams struct {
	Formula string            `json:"formula"`
	Phrases map[string]string `json:"phrases"`
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params SearchParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("search", fmt.Errorf("invalid parameters: %w", err))
	}

	set, err := s.bindPhrases(params.Phrases, params.CaseSensitive)
	if err != nil {
		return createErrorResponse("search", err)
	}
	formulaText := params.Formula
	if formulaText == "" {
		formulaText = s.cfg.Search.Formula
	}
	node, err := formula.Parse(formulaText)
	if err != nil {
		return createErrorResponse("search", err)
	}

	mode := params.Mode
	if mode == "" {
		mode = s.cfg.Search.Mode
	}
	searchMode, err := extract.ParseMode(mode)
	if err != nil {
		return createErrorResponse("search", err)
	}

	include := params.Include
	if len(include) == 0 {
		include = s.cfg.Files.Include
	}
	exclude := append(append([]string{}, s.cfg.Files.Exclude...), params.Exclude...)

	paths, err := files.Resolve(s.root, include, exclude, s.cfg.Files.MaxFileSize)
	if err != nil {
		return createErrorResponse("search", err)
	}

	result, err := engine.Run(ctx, files.ReadAll(s.root, paths), node, set, engine.Options{
		Mode:       searchMode,
		UniqueOnly: params.Unique,
		Workers:    s.cfg.Performance.Workers,
	})
	if err != nil {
		return createErrorResponse("search", err)
	}

	warnings := make([]string, 0, len(result.Report.Warnings))
	for _, w := range result.Report.Warnings {
		warnings = append(warnings, w.String())
	}
	skipped := make([]string, 0, len(result.Skipped))
	for _, skip := range result.Skipped {
		skipped = append(skipped, skip.String())
	}
	return createJSONResponse(map[string]any{
		"success":        true,
		"formula":        node.String(),
		"matches":        result.Matches,
		"match_count":    len(result.Matches),
		"files_searched": result.FilesSearched,
		"skipped":        skipped,
		"warnings":       warnings,
	})
}

func (s *Server) handleValidate(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params ValidateParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("validate_formula", fmt.Errorf("invalid parameters: %w", err))
	}

	set, err := s.bindPhrases(params.Phrases, nil)
	if err != nil {
		return createErrorResponse("validate_formula", err)
	}
	report := formula.ValidateText(params.Formula, set)

	issues := func(list []errors.Issue) []string {
		out := make([]string, 0, len(list))
		for _, issue := range list {
			out = append(out, issue.String())
		}
		return out
	}
	return createJSONResponse(map[string]any{
		"success":  true,
		"valid":    report.Valid(),
		"errors":   issues(report.Errors),
		"warnings": issues(report.Warnings),
	})
}

func (s *Server) handleExamples(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type exampleOut struct {
		Level   int               `json:"level"`
		Name    string            `json:"name"`
		Formula string            `json:"formula"`
		Phrases map[string]string `json:"phrases"`
		Note    string            `json:"note"`
	}
	out := make([]exampleOut, 0, len(formula.Examples()))
	for _, ex := range formula.Examples() {
		phrases := make(map[string]string, len(ex.Bindings))
		for _, b := range ex.Bindings {
			phrases[b.Variable.String()] = b.Text
		}
		out = append(out, exampleOut{
			Level:   ex.Level,
			Name:    ex.Name,
			Formula: ex.Formula,
			Phrases: phrases,
			Note:    ex.Note,
		})
	}
	return createJSONResponse(map[string]any{"success": true, "examples": out})
}

// bindPhrases merges per-call phrase arguments over the configured bindings.
// A call-supplied empty string unbinds the variable.
func (s *Server) bindPhrases(overrides map[string]string, caseSensitive []string) (phrase.Set, error) {
	bindings := append([]phrase.Binding{}, s.cfg.Phrases...)
	for letter, text := range overrides {
		v, ok := phrase.ParseVariable(letter)
		if !ok {
			return phrase.Set{}, fmt.Errorf("invalid phrase variable %q (use A-F)", letter)
		}
		bindings = append(bindings, phrase.Binding{Variable: v, Text: text})
	}
	if len(caseSensitive) > 0 {
		cs := make(map[phrase.Variable]bool, len(caseSensitive))
		for _, letter := range caseSensitive {
			v, ok := phrase.ParseVariable(letter)
			if !ok {
				return phrase.Set{}, fmt.Errorf("invalid case_sensitive variable %q (use A-F)", letter)
			}
			cs[v] = true
		}
		for i := range bindings {
			if cs[bindings[i].Variable] {
				bindings[i].CaseSensitive = true
			}
		}
	}
	return phrase.NewSet(bindings), nil
}
