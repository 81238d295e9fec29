// Package markup renders the inline console markup used by progress and error
// output.
//
// A span is written as @name@content@c where name is one of header, value,
// count or error, and @c closes the innermost open span. Anything that does not
// form a valid marker is literal text, so rendering never fails.
package markup

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Tag is one of the closed set of span names.
type Tag uint8

const (
	TagHeader Tag = iota + 1
	TagValue
	TagCount
	TagError
)

var tagNames = []struct {
	name string
	tag  Tag
}{
	{"header", TagHeader},
	{"value", TagValue},
	{"count", TagCount},
	{"error", TagError},
}

func (t Tag) String() string {
	for _, n := range tagNames {
		if n.tag == t {
			return n.name
		}
	}
	return ""
}

// closeMarker ends the innermost open span.
const closeMarker = "@c"

// escapedAt stands for a literal "@" that can never start a marker.
const escapedAt = "\x00"

// Escape makes s literal text: Render shows it as is, markers included.
func Escape(s string) string {
	return strings.ReplaceAll(s, "@", escapedAt)
}

// Sprintf formats template like fmt.Sprintf. The substituted values are
// escaped, so only markers written in template itself open or close spans.
func Sprintf(template string, args ...any) string {
	lits := make([]any, len(args))
	for i, a := range args {
		lits[i] = literal{a}
	}
	return fmt.Sprintf(template, lits...)
}

// literal formats its value with the caller's verb and escapes the result.
type literal struct{ v any }

func (l literal) Format(f fmt.State, verb rune) {
	_, _ = io.WriteString(f, Escape(fmt.Sprintf(fmt.FormatString(f, verb), l.v)))
}

// TokenKind identifies a token produced by Tokenize.
type TokenKind uint8

const (
	TokenText TokenKind = iota
	TokenOpen
	TokenClose
)

// Token is a piece of a markup template.
type Token struct {
	Kind TokenKind
	Tag  Tag    // set for TokenOpen
	Text string // set for TokenText
}

// Tokenize splits s into text, open and close tokens. A close marker with no
// open span is text.
func Tokenize(s string) []Token {
	var (
		tokens []Token
		text   strings.Builder
		depth  int
	)
	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenText, Text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(s); {
		if s[i] != '@' {
			next := strings.IndexByte(s[i:], '@')
			if next < 0 {
				next = len(s) - i
			}
			text.WriteString(s[i : i+next])
			i += next
			continue
		}

		if tag, n := matchOpen(s[i:]); tag != 0 {
			flush()
			tokens = append(tokens, Token{Kind: TokenOpen, Tag: tag})
			depth++
			i += n
			continue
		}

		if depth > 0 && strings.HasPrefix(s[i:], closeMarker) {
			flush()
			tokens = append(tokens, Token{Kind: TokenClose})
			depth--
			i += len(closeMarker)
			continue
		}

		text.WriteByte('@')
		i++
	}
	flush()

	return tokens
}

// matchOpen reports the tag opened at the start of s and the marker length.
func matchOpen(s string) (Tag, int) {
	for _, n := range tagNames {
		marker := "@" + n.name + "@"
		if strings.HasPrefix(s, marker) {
			return n.tag, len(marker)
		}
	}
	return 0, 0
}

var (
	// The renderer is pinned to one profile so colored output does not depend
	// on the environment the process runs in.
	renderer = newRenderer()

	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	warningColor   = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red

	styles = map[Tag]lipgloss.Style{
		TagHeader: renderer.NewStyle().Bold(true).Foreground(primaryColor),
		TagValue:  renderer.NewStyle().Foreground(secondaryColor),
		TagCount:  renderer.NewStyle().Bold(true).Foreground(warningColor),
		TagError: renderer.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(errorColor),
	}
)

func newRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)
	return r
}

// Render renders template for the console. With color off every marker is
// stripped and only the literal content remains.
func Render(template string, color bool) string {
	var (
		b     strings.Builder
		stack []Tag
	)
	for _, tok := range Tokenize(template) {
		switch tok.Kind {
		case TokenOpen:
			stack = append(stack, tok.Tag)
		case TokenClose:
			stack = stack[:len(stack)-1]
		case TokenText:
			text := strings.ReplaceAll(tok.Text, escapedAt, "@")
			if !color || len(stack) == 0 {
				b.WriteString(text)
				continue
			}
			writeStyled(&b, styles[stack[len(stack)-1]], text)
		}
	}
	return b.String()
}

// writeStyled styles each line of text on its own so lipgloss does not pad
// the lines of a multi-line span to a common width.
func writeStyled(b *strings.Builder, style lipgloss.Style, text string) {
	style = style.TabWidth(lipgloss.NoTabConversion)
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line != "" {
			b.WriteString(style.Render(line))
		}
	}
}

// ColorSupported reports whether w is a terminal that can display colors.
func ColorSupported(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return lipgloss.NewRenderer(w).ColorProfile() != termenv.Ascii
}
