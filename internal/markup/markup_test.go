package markup

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderStripped(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Wiping out destination directory\n", "Wiping out destination directory\n"},
		{"value span", "Scanning @value@/a@c\n", "Scanning /a\n"},
		{"count spans", "Found @count@3@c classes, @count@0@c constants", "Found 3 classes, 0 constants"},
		{"header span", "@header@apidoc 2.2.0@c - API", "apidoc 2.2.0 - API"},
		{"error span", "\n@error@boom@c\n\n", "\nboom\n\n"},
		{"nested spans", "@header@a @value@b@c c@c", "a b c"},
		{"multi-line span", "Scanning\n @value@/a\n /b@c\n", "Scanning\n /a\n /b\n"},
		{"unknown tag stays literal", "@bogus@text@c", "@bogus@text@c"},
		{"stray close stays literal", "done@c", "done@c"},
		{"email address", "mail me@example.com", "mail me@example.com"},
		{"lone at sign", "@", "@"},
		{"trailing at in span", "@value@x@@c", "x@"},
		{"unclosed span", "@value@open", "open"},
		{"empty span", "a@value@@cb", "ab"},
		{"count is a tag not a close", "@value@x@count@1@c@c", "x1"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.input, false); got != tt.want {
				t.Errorf("Render(%q, false) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderStrippedIsIdempotent(t *testing.T) {
	inputs := []string{
		"Scanning @value@/a@c\n",
		"@bogus@text@c",
		"Done. Total time: @count@3@c seconds",
	}
	for _, in := range inputs {
		first := Render(in, false)
		if second := Render(in, false); first != second {
			t.Errorf("Render(%q) not stable: %q vs %q", in, first, second)
		}
	}
}

func TestRenderColor(t *testing.T) {
	in := "Scanning @value@/a@c and @error@oops@c\n"
	got := Render(in, true)

	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("Render(color) = %q, want ANSI escapes", got)
	}
	if !strings.HasPrefix(got, "Scanning ") {
		t.Errorf("literal prefix not preserved: %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("trailing newline not preserved: %q", got)
	}
	for _, want := range []string{"/a", "oops"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render(color) = %q, missing %q", got, want)
		}
	}
	if again := Render(in, true); again != got {
		t.Errorf("Render(color) not deterministic: %q vs %q", got, again)
	}
}

func TestRenderColorMultiLineKeepsLines(t *testing.T) {
	got := Render("Scanning\n @value@/a\n /bbbbbb@c\n", true)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %q", len(lines), got)
	}
	if lines[0] != "Scanning" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "/a") || strings.Contains(lines[1], "/bbbbbb") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestRenderColorUnknownTagLiteral(t *testing.T) {
	if got := Render("@bogus@x@c", true); got != "@bogus@x@c" {
		t.Errorf("Render(color) = %q, want literal", got)
	}
}

func TestTokenize(t *testing.T) {
	toks := Tokenize("a @count@1@c b")
	want := []Token{
		{Kind: TokenText, Text: "a "},
		{Kind: TokenOpen, Tag: TagCount},
		{Kind: TokenText, Text: "1"},
		{Kind: TokenClose},
		{Kind: TokenText, Text: " b"},
	}
	if len(toks) != len(want) {
		t.Fatalf("Tokenize() = %+v, want %+v", toks, want)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, toks[i], want[i])
		}
	}
}

func TestTagString(t *testing.T) {
	for tag, want := range map[Tag]string{TagHeader: "header", TagValue: "value", TagCount: "count", TagError: "error", 0: ""} {
		if got := tag.String(); got != want {
			t.Errorf("Tag(%d).String() = %q, want %q", tag, got, want)
		}
	}
}

func TestColorSupportedNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	if ColorSupported(&buf) {
		t.Error("ColorSupported(buffer) = true, want false")
	}
}

func TestSprintfKeepsValuesLiteral(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{"close marker in value", "Generating to directory @value@%s@c\n", []any{"/srv/docs@cache"}, "Generating to directory /srv/docs@cache\n"},
		{"open marker in value", "Scanning @value@%s@c\n", []any{"/src/@error@x"}, "Scanning /src/@error@x\n"},
		{"value outside a span", "\n%s\n", []any{"a@c b"}, "\na@c b\n"},
		{"verb flags kept", "@count@%3d@c|%-4s|", []any{7, "ab"}, "  7|ab  |"},
		{"no args", "@header@x@c", nil, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(Sprintf(tt.template, tt.args...), false); got != tt.want {
				t.Errorf("Render(Sprintf(%q)) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestSprintfColorStylesWholeValue(t *testing.T) {
	got := Render(Sprintf("@value@%s@c", "a@cb"), true)
	if !strings.Contains(got, "a@cb") {
		t.Errorf("Render(color) = %q, want the value intact", got)
	}
	if !strings.HasPrefix(got, "\x1b[") {
		t.Errorf("Render(color) = %q, want the value styled", got)
	}
}
