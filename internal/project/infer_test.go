package project

import (
	"reflect"
	"testing"
)

func projectWithEntries(entries ...Entry) *Project {
	p := &Project{Entries: entries}
	p.pathToIndex = make(map[string]int, len(entries))
	for i, e := range entries {
		p.pathToIndex[e.Filename] = i
	}
	return p
}

func TestEntryInference(t *testing.T) {
	p := projectWithEntries(
		Entry{Filename: "/a/b/c/d/bar.cc", Args: []string{"arg1"}},
		Entry{Filename: "/a/b/c/baz.cc", Args: []string{"arg2"}},
	)

	cases := []struct {
		query string
		want  []string
	}{
		// Same directory level, with parent directories.
		{"/a/b/c/d/new.cc", []string{"arg1"}},
		// Same directory level, with child directories.
		{"/a/b/c/new.cc", []string{"arg2"}},
		// New directory: closest parent directory wins.
		{"/a/b/c/new/new.cc", []string{"arg2"}},
	}
	for _, tc := range cases {
		entry := p.FindCompilationEntryForFile(tc.query)
		if !entry.IsInferred {
			t.Errorf("%s: entry not marked inferred", tc.query)
		}
		if entry.Filename != tc.query {
			t.Errorf("%s: filename = %q", tc.query, entry.Filename)
		}
		if !reflect.DeepEqual(entry.Args, tc.want) {
			t.Errorf("%s: args = %v, want %v", tc.query, entry.Args, tc.want)
		}
	}
}

func TestEntryInferencePrefersSameFileEndings(t *testing.T) {
	p := projectWithEntries(
		Entry{Filename: "common/simple_browsertest.cc", Args: []string{"arg1"}},
		Entry{Filename: "common/simple_unittest.cc", Args: []string{"arg2"}},
		Entry{Filename: "common/a/simple_unittest.cc", Args: []string{"arg3"}},
	)

	cases := []struct {
		query string
		want  []string
	}{
		{"my_browsertest.cc", []string{"arg1"}},
		{"my_unittest.cc", []string{"arg2"}},
		{"common/my_browsertest.cc", []string{"arg1"}},
		{"common/my_unittest.cc", []string{"arg2"}},
		// Same directory dominates a matching file ending.
		{"common/a/foo.cc", []string{"arg3"}},
	}
	for _, tc := range cases {
		entry := p.FindCompilationEntryForFile(tc.query)
		if !reflect.DeepEqual(entry.Args, tc.want) {
			t.Errorf("%s: args = %v, want %v", tc.query, entry.Args, tc.want)
		}
	}
}

func TestInferenceTieKeepsFirstEntry(t *testing.T) {
	p := projectWithEntries(
		Entry{Filename: "/x/a.cc", Args: []string{"arg1"}},
		Entry{Filename: "/x/b.cc", Args: []string{"arg2"}},
	)

	entry := p.FindCompilationEntryForFile("/x/c.cc")
	if !reflect.DeepEqual(entry.Args, []string{"arg1"}) {
		t.Errorf("tie not broken by insertion order: %v", entry.Args)
	}
}

func TestEmptyProjectInference(t *testing.T) {
	p := projectWithEntries()

	entry := p.FindCompilationEntryForFile("/any/file.cc")
	if !entry.IsInferred {
		t.Error("entry not marked inferred")
	}
	if entry.Filename != "/any/file.cc" {
		t.Errorf("filename = %q", entry.Filename)
	}
	if len(entry.Args) != 0 {
		t.Errorf("args = %v, want empty", entry.Args)
	}
}

func TestExactLookupBeatsInference(t *testing.T) {
	p := projectWithEntries(
		Entry{Filename: "/a/b.cc", Args: []string{"arg1"}},
	)

	entry := p.FindCompilationEntryForFile("/a/b.cc")
	if entry.IsInferred {
		t.Error("exact match must not be inferred")
	}
	if !reflect.DeepEqual(entry.Args, []string{"arg1"}) {
		t.Errorf("args = %v", entry.Args)
	}
}

func TestComputeGuessScore(t *testing.T) {
	// A full prefix match outscores a partial one.
	if ComputeGuessScore("/a/b.cc", "/a/b.cc") <= ComputeGuessScore("/a/b.cc", "/a/c.cc") {
		t.Error("identical paths must score highest")
	}
	// Separators in a mismatched suffix are penalized.
	if ComputeGuessScore("/a/x.cc", "/a/b/c/d/x.cc") >= ComputeGuessScore("/a/x.cc", "/a/y.cc") {
		t.Error("deep mismatched suffix must be penalized")
	}
	// Symmetric in its arguments.
	if ComputeGuessScore("/a/b.cc", "/a/c/d.cc") != ComputeGuessScore("/a/c/d.cc", "/a/b.cc") {
		t.Error("score must be symmetric")
	}
}
