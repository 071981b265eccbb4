package match

import (
	"strings"
	"testing"
)

func TestEmptyGroupMatchesEverything(t *testing.T) {
	g, errs := NewGroupMatch(nil, nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if ok, reason := g.IsMatch("/any/file.cc"); !ok {
		t.Errorf("empty group rejected value: %s", reason)
	}
}

func TestBlacklistRejects(t *testing.T) {
	g, _ := NewGroupMatch(nil, []string{`third_party`})
	ok, reason := g.IsMatch("/src/third_party/lib/a.cc")
	if ok {
		t.Fatal("blacklisted value passed")
	}
	if !strings.Contains(reason, "blacklist") || !strings.Contains(reason, "third_party") {
		t.Errorf("failure reason does not name the pattern: %q", reason)
	}
	if ok, _ := g.IsMatch("/src/app/a.cc"); !ok {
		t.Error("non-blacklisted value rejected")
	}
}

func TestWhitelistRequiresMatch(t *testing.T) {
	g, _ := NewGroupMatch([]string{`\.cc$`}, nil)
	if ok, _ := g.IsMatch("/src/a.cc"); !ok {
		t.Error("whitelisted value rejected")
	}
	ok, reason := g.IsMatch("/src/a.h")
	if ok {
		t.Fatal("non-whitelisted value passed")
	}
	if !strings.Contains(reason, "whitelist") {
		t.Errorf("failure reason missing whitelist tag: %q", reason)
	}
}

func TestInvalidPatternSkipped(t *testing.T) {
	g, errs := NewGroupMatch([]string{`[`}, nil)
	if len(errs) != 1 {
		t.Fatalf("want one compile error, got %v", errs)
	}
	// The bad pattern is dropped, so everything matches.
	if ok, _ := g.IsMatch("/src/a.cc"); !ok {
		t.Error("matcher unusable after invalid pattern")
	}
}
