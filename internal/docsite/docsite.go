// Package docsite generates an HTML API reference from Markdown pages.
//
// Each page documents one declaration, described by YAML front matter:
//
//	---
//	kind: class
//	name: Parser
//	summary: Parses source files.
//	---
//
// Pages without a kind are articles. They are rendered but never counted.
package docsite

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/tessro/apidoc/internal/logging"
	"github.com/tessro/apidoc/internal/runner"
	"github.com/yuin/goldmark"
	"golang.org/x/sync/errgroup"
)

// Options configures a Generator.
type Options struct {
	Sources        []string
	Exclude        []string
	Destination    string
	TemplateConfig string
	SkipDocPath    []string
	SkipDocPrefix  []string
	Title          string
	BaseURL        string
}

// Generator turns Markdown reference pages into an HTML site. It implements
// runner.Generator.
type Generator struct {
	opts      Options
	md        goldmark.Markdown
	templates *TemplateSet
	pages     []*Page
}

var _ runner.Generator = (*Generator)(nil)

// PageData holds data passed to the page template.
type PageData struct {
	Title     string
	SiteTitle string
	Root      string
	Kind      Kind
	Internal  bool
	Summary   string
	TOC       []TOCEntry
	Content   template.HTML
}

// IndexData holds data passed to the index template.
type IndexData struct {
	SiteTitle string
	Root      string
	Intro     template.HTML
	Sections  []IndexSection
}

// IndexSection lists the documented declarations of one kind.
type IndexSection struct {
	Label   string
	Entries []IndexEntry
}

// IndexEntry links one declaration page.
type IndexEntry struct {
	Name    string
	URL     string
	Summary string
}

// New creates a generator and loads its template set.
func New(opts Options) (*Generator, error) {
	set, err := LoadTemplateSet(opts.TemplateConfig)
	if err != nil {
		return nil, fmt.Errorf("Cannot load template config %s: %w", opts.TemplateConfig, err)
	}
	return &Generator{
		opts:      opts,
		md:        newMarkdown(),
		templates: set,
	}, nil
}

// Parse loads every page below the sources and counts the declarations found
// and documented.
func (g *Generator) Parse(ctx context.Context) (runner.PhaseResult, error) {
	var result runner.PhaseResult

	files, err := g.scan()
	if err != nil {
		return result, fmt.Errorf("Cannot scan sources: %w", err)
	}

	pages := make([]*Page, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, f := range files {
		i, f := i, f
		eg.Go(func() (err error) {
			defer logging.LogPanic("page-loader", func(r any) {
				err = fmt.Errorf("loading %s: panic: %v", f.rel, r)
			})
			if err := ctx.Err(); err != nil {
				return err
			}
			pages[i], err = loadPage(f.path, f.rel)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return result, fmt.Errorf("Cannot parse sources: %w", err)
	}

	for _, p := range pages {
		slot := p.slot()
		if slot < 0 {
			continue
		}
		p.Skipped = g.skipped(p)
		result[slot]++
		if !p.Skipped {
			result[slot+4]++
		}
	}
	g.pages = pages

	slog.Debug("sources parsed", "pages", len(pages))
	return result, nil
}

type sourceFile struct {
	path string
	rel  string
}

// scan lists the Markdown files below every source that no exclude glob
// matches, sorted by relative path.
func (g *Generator) scan() ([]sourceFile, error) {
	var files []sourceFile
	for _, src := range g.opts.Sources {
		info, err := os.Stat(src)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if g.excluded(src) {
				continue
			}
			files = append(files, sourceFile{path: src, rel: filepath.Base(src)})
			continue
		}

		err = filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p != src && g.excluded(p) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(p, ".md") {
				return nil
			}
			rel, err := filepath.Rel(src, p)
			if err != nil {
				return err
			}
			files = append(files, sourceFile{path: p, rel: filepath.ToSlash(rel)})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].rel < files[j].rel })

	for i := 1; i < len(files); i++ {
		if files[i].rel == files[i-1].rel {
			return nil, fmt.Errorf("%s and %s would both be written to %s",
				files[i-1].path, files[i].path, MapPath(files[i].rel))
		}
	}
	return files, nil
}

func (g *Generator) excluded(p string) bool {
	return MatchAny(g.opts.Exclude, p)
}

func (g *Generator) skipped(p *Page) bool {
	if MatchAny(g.opts.SkipDocPath, p.Path) {
		return true
	}
	for _, prefix := range g.opts.SkipDocPrefix {
		if prefix != "" && strings.HasPrefix(p.Name, prefix) {
			return true
		}
	}
	return false
}

// MatchAny reports whether any glob in patterns matches p. A glob is matched
// against the slash-separated path, its base name and every path suffix.
func MatchAny(patterns []string, p string) bool {
	p = filepath.ToSlash(p)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := path.Match(pattern, p); ok {
			return true
		}
		for rest := p; ; {
			i := strings.IndexByte(rest, '/')
			if i < 0 {
				break
			}
			rest = rest[i+1:]
			if ok, _ := path.Match(pattern, rest); ok {
				return true
			}
		}
	}
	return false
}

// WipeOutDestination removes every entry inside the destination directory.
func (g *Generator) WipeOutDestination() bool {
	entries, err := os.ReadDir(g.opts.Destination)
	if err != nil {
		slog.Error("cannot read destination", "path", g.opts.Destination, "error", err)
		return false
	}
	for _, e := range entries {
		p := filepath.Join(g.opts.Destination, e.Name())
		if err := os.RemoveAll(p); err != nil {
			slog.Error("cannot remove destination entry", "path", p, "error", err)
			return false
		}
	}
	return true
}

// Generate renders the parsed pages, the index and the template resources
// into the destination.
func (g *Generator) Generate(ctx context.Context) error {
	if g.pages == nil {
		return errors.New("Cannot generate before sources are parsed")
	}
	if err := os.MkdirAll(g.opts.Destination, 0o755); err != nil {
		return fmt.Errorf("Cannot create destination directory: %w", err)
	}

	var intro template.HTML
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for _, p := range g.pages {
		if p.Skipped {
			continue
		}
		if p.Rel == "index.md" && !p.IsDeclaration() {
			html, err := renderMarkdown(g.md, p.Body)
			if err != nil {
				return fmt.Errorf("Cannot render %s: %w", p.Rel, err)
			}
			intro = template.HTML(html)
			continue
		}
		p := p
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return g.writePage(p)
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("Cannot generate pages: %w", err)
	}

	if err := g.writeIndex(intro); err != nil {
		return fmt.Errorf("Cannot generate index: %w", err)
	}
	if err := g.templates.copyResources(g.opts.Destination); err != nil {
		return fmt.Errorf("Cannot copy template resources: %w", err)
	}
	return nil
}

func (g *Generator) writePage(p *Page) error {
	html, err := renderMarkdown(g.md, p.Body)
	if err != nil {
		return fmt.Errorf("converting %s: %w", p.Rel, err)
	}
	toc, err := ExtractTOC(html)
	if err != nil {
		return fmt.Errorf("%s: %w", p.Rel, err)
	}

	out := MapPath(p.Rel)
	data := PageData{
		Title:     p.Title(),
		SiteTitle: g.opts.Title,
		Root:      g.root(out),
		Kind:      p.Kind,
		Internal:  p.Internal,
		Summary:   p.Summary,
		TOC:       toc,
		Content:   template.HTML(html),
	}
	return g.execute(g.templates.Page, out, data)
}

var sectionLabels = []struct {
	slot  int
	label string
}{
	{0, "Classes"},
	{1, "Constants"},
	{2, "Functions"},
	{3, "Internal classes"},
}

func (g *Generator) writeIndex(intro template.HTML) error {
	entries := make([][]IndexEntry, len(sectionLabels))
	for _, p := range g.pages {
		slot := p.slot()
		if slot < 0 || p.Skipped {
			continue
		}
		entries[slot] = append(entries[slot], IndexEntry{
			Name:    p.Title(),
			URL:     PageURL(p.Rel),
			Summary: p.Summary,
		})
	}

	data := IndexData{
		SiteTitle: g.opts.Title,
		Root:      g.root("index.html"),
		Intro:     intro,
	}
	for _, s := range sectionLabels {
		if len(entries[s.slot]) == 0 {
			continue
		}
		sort.SliceStable(entries[s.slot], func(i, j int) bool {
			return entries[s.slot][i].Name < entries[s.slot][j].Name
		})
		data.Sections = append(data.Sections, IndexSection{Label: s.label, Entries: entries[s.slot]})
	}
	return g.execute(g.templates.Index, "index.html", data)
}

// root returns the prefix that leads from the output file at out to the site
// root: the base URL when one is set, a relative path otherwise.
func (g *Generator) root(out string) string {
	if g.opts.BaseURL != "" {
		return strings.TrimSuffix(g.opts.BaseURL, "/") + "/"
	}
	return rootPrefix(out)
}

func (g *Generator) execute(tmpl *template.Template, out string, data any) error {
	target := filepath.Join(g.opts.Destination, out)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", out, err)
	}
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	if err := tmpl.Execute(f, data); err != nil {
		f.Close()
		return fmt.Errorf("executing template for %s: %w", out, err)
	}
	return f.Close()
}
