package notify

import (
	"strings"
	"testing"
)

func TestTruncateShortStringsPassThrough(t *testing.T) {
	t.Parallel()

	if got := truncate("hello", 100); got != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncateLongStrings(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 200)
	got := truncate(long, 100)
	if len([]rune(got)) != 103 {
		t.Fatalf("unexpected length %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("ø", 50)
	if got := truncate(input, 100); got != input {
		t.Fatalf("multi-byte text under the limit must pass through, got %q", got)
	}
}
