package failure

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"plain error", errors.New("boom"), KindRuntime},
		{"config", Config("source is not set"), KindConfig},
		{"runtime", Runtime("cannot write"), KindRuntime},
		{"wrapped config", fmt.Errorf("resolve: %w", Config("bad")), KindConfig},
		{"marked config", Mark(KindConfig, errors.New("bad flag")), KindConfig},
		{"outermost wins", Wrap(KindRuntime, Config("inner"), "outer"), KindRuntime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsConfig(t *testing.T) {
	if IsConfig(nil) {
		t.Error("IsConfig(nil) = true")
	}
	if !IsConfig(Config("x")) {
		t.Error("IsConfig(Config) = false")
	}
	if IsConfig(errors.New("x")) {
		t.Error("IsConfig(plain) = true")
	}
}

func TestMarkKeepsClassifiedError(t *testing.T) {
	orig := Config("bad")
	if got := Mark(KindRuntime, orig); got != orig {
		t.Errorf("Mark() replaced an already classified error")
	}
	if Mark(KindConfig, nil) != nil {
		t.Error("Mark(nil) != nil")
	}
	if Wrap(KindConfig, nil, "x") != nil {
		t.Error("Wrap(nil) != nil")
	}
}

func TestChain(t *testing.T) {
	root := errors.New("root msg")
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"single", root, []string{"root msg"}},
		{"fmt wrap", fmt.Errorf("wrap msg: %w", root), []string{"wrap msg", "root msg"}},
		{"marked", Mark(KindRuntime, fmt.Errorf("wrap msg: %w", root)), []string{"wrap msg", "root msg"}},
		{"failure wrap", Wrap(KindRuntime, root, "outer"), []string{"outer", "root msg"}},
		{"three levels", fmt.Errorf("a: %w", fmt.Errorf("b: %w", root)), []string{"a", "b", "root msg"}},
		{"wrapper without suffix", fmt.Errorf("reading failed (%w)", root), []string{"reading failed (root msg)", "root msg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Chain(tt.err); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Chain() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOwnMessagePathError(t *testing.T) {
	_, err := os.Open("/definitely/not/here")
	if err == nil {
		t.Skip("path unexpectedly exists")
	}
	if got := OwnMessage(err); got != "open /definitely/not/here" {
		t.Errorf("OwnMessage() = %q", got)
	}
}

func TestErrorText(t *testing.T) {
	root := errors.New("root")
	if got := Wrap(KindRuntime, root, "outer").Error(); got != "outer: root" {
		t.Errorf("Error() = %q", got)
	}
	if got := Mark(KindRuntime, root).Error(); got != "root" {
		t.Errorf("Error() = %q", got)
	}
	if got := Runtime("cannot %s", "write").Error(); got != "cannot write" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(Wrap(KindConfig, root, "x"), root) {
		t.Error("Wrap() does not unwrap to its cause")
	}
}

func TestStack(t *testing.T) {
	err := fmt.Errorf("outer: %w", Runtime("inner"))
	trace := Stack(err)
	if !strings.Contains(trace, "goroutine") {
		t.Errorf("Stack() = %q, want a goroutine trace", trace)
	}
	if !strings.Contains(trace, "TestStack") {
		t.Errorf("Stack() does not include the creating test function:\n%s", trace)
	}

	plain := Stack(errors.New("no trace"))
	if !strings.Contains(plain, "goroutine") {
		t.Errorf("Stack() for plain error = %q, want current stack", plain)
	}
}
