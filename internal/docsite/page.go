package docsite

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the declaration a page documents.
type Kind string

const (
	KindArticle  Kind = ""
	KindClass    Kind = "class"
	KindConstant Kind = "constant"
	KindFunction Kind = "function"
)

// frontMatter is the YAML header of a reference page.
type frontMatter struct {
	Kind     Kind   `yaml:"kind"`
	Name     string `yaml:"name"`
	Internal bool   `yaml:"internal"`
	Summary  string `yaml:"summary"`
}

// Page is one Markdown source file.
type Page struct {
	// Path is the absolute path of the source file.
	Path string
	// Rel is the slash-separated path relative to the page's source root.
	Rel string

	Kind     Kind
	Name     string
	Internal bool
	Summary  string
	Body     []byte

	// Skipped pages are counted as found but not documented.
	Skipped bool
}

// IsDeclaration reports whether the page documents a declaration.
func (p *Page) IsDeclaration() bool {
	return p.Kind != KindArticle
}

// Title returns the declared name, or the page's first heading.
func (p *Page) Title() string {
	if p.Name != "" {
		return p.Name
	}
	return ExtractTitle(p.Body, p.Rel)
}

// slot is the position of the page in a phase result: classes, constants,
// functions, internal classes. Articles have no slot.
func (p *Page) slot() int {
	switch p.Kind {
	case KindClass:
		if p.Internal {
			return 3
		}
		return 0
	case KindConstant:
		return 1
	case KindFunction:
		return 2
	default:
		return -1
	}
}

var errNoFrontMatter = errors.New("no front matter")

// loadPage reads and parses the page at path.
func loadPage(path, rel string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	p, err := parsePage(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rel, err)
	}
	p.Path = path
	p.Rel = rel
	return p, nil
}

// parsePage splits data into front matter and body. A page without front
// matter is an article.
func parsePage(data []byte) (*Page, error) {
	fm, body, err := splitFrontMatter(data)
	if errors.Is(err, errNoFrontMatter) {
		return &Page{Body: data}, nil
	}
	if err != nil {
		return nil, err
	}

	var meta frontMatter
	if err := yaml.Unmarshal(fm, &meta); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	switch meta.Kind {
	case KindArticle, KindClass, KindConstant, KindFunction:
	default:
		return nil, fmt.Errorf("unknown page kind %q", meta.Kind)
	}
	if meta.Internal && meta.Kind != KindClass {
		return nil, fmt.Errorf("only classes can be internal, got %s", meta.Kind)
	}

	return &Page{
		Kind:     meta.Kind,
		Name:     meta.Name,
		Internal: meta.Internal,
		Summary:  meta.Summary,
		Body:     body,
	}, nil
}

// splitFrontMatter separates YAML front matter from the Markdown body.
// Expects format: ---\nyaml\n---\nbody
func splitFrontMatter(data []byte) ([]byte, []byte, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	first, rest, _ := bytes.Cut(data, []byte("\n"))
	if strings.TrimSpace(string(first)) != "---" {
		return nil, nil, errNoFrontMatter
	}

	var fm [][]byte
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = bytes.Cut(rest, []byte("\n"))
		if strings.TrimSpace(string(line)) == "---" {
			return bytes.Join(fm, []byte("\n")), rest, nil
		}
		fm = append(fm, line)
	}
	return nil, nil, errors.New("missing closing front matter delimiter")
}
