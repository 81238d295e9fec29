package docsite

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// newMarkdown configures goldmark with tables, autolinks and heading IDs.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)
}

// renderMarkdown converts body to HTML with internal links rewritten.
func renderMarkdown(md goldmark.Markdown, body []byte) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return "", err
	}
	return RewriteLinks(buf.String()), nil
}

// TOCEntry is a second-level heading of a rendered page.
type TOCEntry struct {
	ID   string
	Text string
}

// ExtractTOC returns the h2 headings of html that carry an id.
func ExtractTOC(html string) ([]TOCEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing rendered page: %w", err)
	}
	var toc []TOCEntry
	doc.Find("h2[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		toc = append(toc, TOCEntry{ID: id, Text: strings.TrimSpace(s.Text())})
	})
	return toc, nil
}

var h1Regex = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// mdLinkRegex matches href attributes that point to .md files.
// Captures: (1) path before .md (2) .md extension (3) optional anchor
var mdLinkRegex = regexp.MustCompile(`href="([^"]*?)(\.md)(#[^"]*)?"`)

// RewriteLinks transforms internal .md links in HTML content to pretty URLs.
// For example: href="./classes/Parser.md#methods" becomes href="./classes/Parser/#methods"
// Links to index.md are handled specially: ./foo/index.md becomes ./foo/
func RewriteLinks(html string) string {
	return mdLinkRegex.ReplaceAllStringFunc(html, func(match string) string {
		sub := mdLinkRegex.FindStringSubmatch(match)
		if len(sub) < 3 {
			return match
		}
		target, anchor := sub[1], ""
		if len(sub) > 3 {
			anchor = sub[3]
		}
		if strings.Contains(target, "://") {
			return match
		}

		switch {
		case strings.HasSuffix(target, "/index"):
			target = strings.TrimSuffix(target, "index")
		case target == "index":
			target = "./"
		default:
			target += "/"
		}
		return fmt.Sprintf(`href="%s%s"`, target, anchor)
	})
}

// ExtractTitle returns the first H1 heading of content, falling back to the
// file name without extension.
func ExtractTitle(content []byte, filePath string) string {
	if m := h1Regex.FindSubmatch(content); len(m) > 1 {
		return strings.TrimSpace(string(m[1]))
	}
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// MapPath converts a page path relative to its source root into an output
// path using pretty URLs.
// Example: classes/Parser.md -> classes/Parser/index.html
// Example: classes/index.md -> classes/index.html
func MapPath(rel string) string {
	rel = strings.TrimSuffix(filepath.ToSlash(rel), ".md")
	if path.Base(rel) == "index" {
		return filepath.FromSlash(rel + ".html")
	}
	return filepath.FromSlash(path.Join(rel, "index.html"))
}

// PageURL returns the site-relative URL of the page at rel.
func PageURL(rel string) string {
	out := filepath.ToSlash(MapPath(rel))
	dir := path.Dir(out)
	if dir == "." {
		return "./"
	}
	return dir + "/"
}

// rootPrefix returns the relative path from the output file at out back to
// the site root.
func rootPrefix(out string) string {
	dir := path.Dir(filepath.ToSlash(out))
	if dir == "." {
		return ""
	}
	return strings.Repeat("../", strings.Count(dir, "/")+1)
}
