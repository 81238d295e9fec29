// Package update checks whether a newer release has been published.
//
// The check is best effort: every failure, including a timeout, means "no
// newer version" and is never reported to the caller as an error.
package update

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultURL serves the latest released version as plain text.
const DefaultURL = "https://apidoc.dev/version.txt"

// DefaultTimeout bounds the whole check.
const DefaultTimeout = 5 * time.Second

// maxVersionLen caps how much of the response body is read.
const maxVersionLen = 64

// Source returns the latest published version.
type Source interface {
	Latest(ctx context.Context) (string, error)
}

// HTTPSource fetches the latest version from a URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource returns a source reading DefaultURL.
func NewHTTPSource() *HTTPSource {
	return &HTTPSource{URL: DefaultURL}
}

// Latest fetches and trims the version text.
func (s *HTTPSource) Latest(ctx context.Context) (string, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: unexpected status %s", s.URL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVersionLen))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	v := strings.TrimSpace(string(body))
	if v == "" {
		return "", fmt.Errorf("fetch %s: empty version", s.URL)
	}
	return v, nil
}

// Check asks src for the latest version within timeout and reports whether it
// is newer than current. Any failure yields ("", false).
func Check(ctx context.Context, src Source, current string, timeout time.Duration) (string, bool) {
	if src == nil {
		return "", false
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		version string
		err     error
	}
	done := make(chan result, 1)
	go func() {
		v, err := src.Latest(ctx)
		done <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		slog.Debug("update check timed out", "error", ctx.Err())
		return "", false
	case r := <-done:
		if r.err != nil {
			slog.Debug("update check failed", "error", r.err)
			return "", false
		}
		if !Newer(current, r.version) {
			return "", false
		}
		return r.version, true
	}
}

// Newer reports whether latest is a later release than current.
func Newer(current, latest string) bool {
	return Compare(latest, current) > 0
}

// Compare compares two dotted version strings segment by segment, left to
// right, returning -1, 0 or 1.
//
// Numeric segments compare numerically. A leading "v" is ignored and a "-" or
// "+" suffix is split into further segments, so "2.2.0-beta" has the segments
// 2, 2, 0, beta. A non-numeric segment sorts before a numeric one and before an
// absent one; two non-numeric segments compare lexically.
func Compare(a, b string) int {
	as, bs := segments(a), segments(b)
	for i := 0; i < len(as) || i < len(bs); i++ {
		var c int
		switch {
		case i >= len(as):
			c = -compareAbsent(bs[i])
		case i >= len(bs):
			c = compareAbsent(as[i])
		default:
			c = compareSegment(as[i], bs[i])
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

func segments(v string) []string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(strings.TrimPrefix(v, "v"), "V")
	if v == "" {
		return nil
	}
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-' || r == '+'
	})
}

// compareAbsent compares a present segment with a missing one at the same
// position. Numbers sort after absence only when non-zero, so "2.2" == "2.2.0".
func compareAbsent(seg string) int {
	n, ok := numeric(seg)
	if !ok {
		return -1
	}
	if n == 0 {
		return 0
	}
	return 1
}

func compareSegment(a, b string) int {
	an, aNum := numeric(a)
	bn, bNum := numeric(b)
	switch {
	case aNum && bNum:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case aNum:
		return 1
	case bNum:
		return -1
	}
	return strings.Compare(a, b)
}

func numeric(seg string) (uint64, bool) {
	n, err := strconv.ParseUint(seg, 10, 64)
	return n, err == nil
}
