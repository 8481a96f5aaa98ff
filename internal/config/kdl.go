package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/CallMeChewy/Finder/internal/phrase"
)

// Load reads a .finder.kdl file. A missing file is not an error; defaults
// apply. Layout:
//
//	phrases {
//	    a "import"
//	    b "Error" true    // optional second argument: case-sensitive
//	}
//	search {
//	    formula "A AND NOT B"
//	    mode "line"
//	    unique true
//	}
//	files {
//	    include "**/*.go" "**/*.md"
//	    exclude "**/vendor/**"
//	    max_file_size "10MB"
//	}
//	performance {
//	    workers 4
//	}
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "phrases":
			for _, cn := range n.Children {
				binding, err := parsePhraseNode(cn)
				if err != nil {
					return nil, err
				}
				cfg.Phrases = append(cfg.Phrases, binding)
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "formula":
					if s, ok := firstStringArg(cn); ok {
						cfg.Search.Formula = s
					}
				case "mode":
					if s, ok := firstStringArg(cn); ok {
						cfg.Search.Mode = s
					}
				case "unique":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.Unique = b
					}
				}
			}
		case "files":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "include":
					if patterns := collectStringArgs(cn); len(patterns) > 0 {
						cfg.Files.Include = patterns
					}
				case "exclude":
					cfg.Files.Exclude = append(cfg.Files.Exclude, collectStringArgs(cn)...)
				case "max_file_size":
					if v, ok := firstIntArg(cn); ok {
						cfg.Files.MaxFileSize = int64(v)
					}
					if s, ok := firstStringArg(cn); ok {
						size, err := parseSize(s)
						if err != nil {
							return nil, fmt.Errorf("max_file_size: %w", err)
						}
						cfg.Files.MaxFileSize = size
					}
				}
			}
		case "performance":
			for _, cn := range n.Children {
				if nodeName(cn) == "workers" {
					if v, ok := firstIntArg(cn); ok {
						cfg.Performance.Workers = v
					}
				}
			}
		}
	}

	return cfg, nil
}

// parsePhraseNode reads a child of the phrases block: the node name is the
// variable letter, the first argument the phrase text, and an optional second
// boolean argument flips the per-variable case-sensitive flag.
func parsePhraseNode(n *document.Node) (phrase.Binding, error) {
	v, ok := phrase.ParseVariable(nodeName(n))
	if !ok {
		return phrase.Binding{}, fmt.Errorf("phrases: %q is not a variable (use a-f)", nodeName(n))
	}
	text, ok := firstStringArg(n)
	if !ok {
		return phrase.Binding{}, fmt.Errorf("phrases: variable %s needs a phrase string", v)
	}
	binding := phrase.Binding{Variable: v, Text: text}
	if len(n.Arguments) > 1 {
		if b, ok := n.Arguments[1].Value.(bool); ok {
			binding.CaseSensitive = b
		}
	}
	return binding, nil
}

// Helpers over the kdl-go document model.

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	// Block format: exclude { "pattern" } puts strings in child node names.
	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func parseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	var multiplier int64 = 1
	var numStr string

	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		numStr = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		numStr = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		numStr = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		numStr = strings.TrimSuffix(s, "B")
	default:
		numStr = s
	}

	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return num * multiplier, nil
}
