package cache

import (
	"path"
	"strings"
	"testing"
)

func TestBuildKey(t *testing.T) {
	got := buildKey(42, 10)
	want := "rec:user:42:limit:10"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// Distinct limits get distinct keys
	if buildKey(42, 10) == buildKey(42, 20) {
		t.Error("keys for different limits collide")
	}
	if buildKey(1, 10) == buildKey(11, 0) {
		t.Error("keys for different users collide")
	}
}

func TestInvalidationPatterns(t *testing.T) {
	// The per-user pattern must match every limit variant of that
	// user's keys and nothing else.
	pattern := buildUserPattern(42)
	if pattern != "rec:user:42:limit:*" {
		t.Fatalf("unexpected user pattern %q", pattern)
	}

	for _, limit := range []int{1, 10, 50} {
		matched, err := path.Match(pattern, buildKey(42, limit))
		if err != nil || !matched {
			t.Errorf("pattern %q should match %q", pattern, buildKey(42, limit))
		}
	}

	matched, _ := path.Match(pattern, buildKey(7, 10))
	if matched {
		t.Errorf("pattern %q matched another user's key", pattern)
	}

	// The reload pattern covers every user's keys.
	all := keyPrefix + "*"
	for _, userID := range []int64{1, 42, 9000} {
		if !strings.HasPrefix(buildKey(userID, 10), keyPrefix) {
			t.Errorf("key %q escapes prefix %q", buildKey(userID, 10), keyPrefix)
		}
		matched, err := path.Match(all, buildKey(userID, 10))
		if err != nil || !matched {
			t.Errorf("pattern %q should match %q", all, buildKey(userID, 10))
		}
	}
}
