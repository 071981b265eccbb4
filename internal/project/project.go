// Package project loads a build configuration and turns every raw
// build record into a canonical, absolute, de-duplicated argument list
// for a single-file compiler front-end. It also derives the quote and
// angle include-directory indexes and answers flag queries for files
// missing from the database via path-similarity inference.
package project

import (
	"sort"

	"github.com/Sevistuo/cquery/internal/logging"
	"github.com/Sevistuo/cquery/internal/match"
	"github.com/Sevistuo/cquery/internal/paths"
)

// rawEntry is one build-system record before normalization.
type rawEntry struct {
	directory string
	file      string
	args      []string
}

// projectConfig accumulates state for a single load operation. It is
// mutated in place by each normalization call and must not be shared
// across concurrent loads.
type projectConfig struct {
	quoteDirs   map[string]struct{}
	angleDirs   map[string]struct{}
	extraFlags  []string
	projectDir  string
	resourceDir string
	norm        paths.Normalizer
}

func newProjectConfig(opts LoadOptions) *projectConfig {
	return &projectConfig{
		quoteDirs:   make(map[string]struct{}),
		angleDirs:   make(map[string]struct{}),
		extraFlags:  opts.ExtraFlags,
		projectDir:  opts.RootDirectory,
		resourceDir: opts.ResourceDirectory,
		norm:        opts.Normalizer,
	}
}

// Entry is the normalized, per-file compiler invocation record.
// Entries are immutable after load. Args is ready to hand to the
// front-end; Args[0] is the compiler binary.
type Entry struct {
	Filename   string   `json:"filename"`
	Args       []string `json:"args"`
	IsInferred bool     `json:"isInferred,omitempty"`
}

// Project is the loaded compilation database. It is read-only after
// Load returns; concurrent readers (including inference) are safe, but
// callers must not reload into a Project that is being read.
type Project struct {
	Entries []Entry

	// Include search paths for #include "..." and #include <...>
	// respectively. Absolute, separator-terminated, sorted.
	QuoteIncludeDirectories []string
	AngleIncludeDirectories []string

	pathToIndex map[string]int
	logger      *logging.Logger
}

// LoadOptions is the full configuration surface of one load operation.
type LoadOptions struct {
	// ExtraFlags are appended verbatim to every entry.
	ExtraFlags []string

	// CompilationDatabaseDirectory overrides where
	// compile_commands.json is searched for; empty means the project
	// root.
	CompilationDatabaseDirectory string

	// RootDirectory is the project root.
	RootDirectory string

	// ResourceDirectory points at the toolchain's built-in headers.
	ResourceDirectory string

	// Normalizer canonicalizes paths; nil selects the real filesystem
	// implementation.
	Normalizer paths.Normalizer

	// Logger receives load diagnostics; nil selects the default
	// stderr logger.
	Logger *logging.Logger
}

// Load builds a Project from the options. Loading never fails: missing
// or unloadable configuration degrades to fewer (possibly zero)
// entries, with a warning.
func Load(opts LoadOptions) *Project {
	if opts.Normalizer == nil {
		opts.Normalizer = paths.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewDefault()
	}

	cfg := newProjectConfig(opts)
	p := &Project{logger: opts.Logger}
	p.Entries = loadEntries(cfg, opts.CompilationDatabaseDirectory, opts.Logger)

	p.QuoteIncludeDirectories = finalizeIncludeDirs(cfg.quoteDirs)
	p.AngleIncludeDirectories = finalizeIncludeDirs(cfg.angleDirs)
	for _, dir := range p.QuoteIncludeDirectories {
		opts.Logger.Info("quote include directory", logging.Fields{"dir": dir})
	}
	for _, dir := range p.AngleIncludeDirectories {
		opts.Logger.Info("angle include directory", logging.Fields{"dir": dir})
	}

	p.pathToIndex = make(map[string]int, len(p.Entries))
	for i, e := range p.Entries {
		p.pathToIndex[e.Filename] = i
	}
	return p
}

// finalizeIncludeDirs drains a directory set into a sorted slice of
// separator-terminated paths.
func finalizeIncludeDirs(set map[string]struct{}) []string {
	dirs := make([]string, 0, len(set))
	for dir := range set {
		dirs = append(dirs, paths.EnsureTrailingSeparator(dir))
	}
	sort.Strings(dirs)
	return dirs
}

// FindCompilationEntryForFile returns the entry for filename, inferring
// one from the closest-matching known entry when the file is not in the
// database. It never fails; against an empty project the inferred entry
// has no args.
func (p *Project) FindCompilationEntryForFile(filename string) Entry {
	if idx, ok := p.pathToIndex[filename]; ok {
		return p.Entries[idx]
	}
	return p.inferEntry(filename)
}

// ForAllFilteredFiles invokes action for every entry passing the
// whitelist/blacklist filter, in insertion order. Skipped entries are
// optionally logged with the reason. Invalid patterns are reported and
// dropped, never fatal.
func (p *Project) ForAllFilteredFiles(whitelist, blacklist []string, logSkipped bool, action func(i int, entry Entry)) {
	matcher, errs := match.NewGroupMatch(whitelist, blacklist)
	for _, err := range errs {
		p.logger.Warn("ignoring file filter pattern", logging.Fields{"error": err.Error()})
	}
	for i, entry := range p.Entries {
		ok, reason := matcher.IsMatch(entry.Filename)
		if ok {
			action(i, entry)
			continue
		}
		if logSkipped {
			p.logger.Info("skipping filtered file", logging.Fields{
				"index":    i + 1,
				"total":    len(p.Entries),
				"reason":   reason,
				"filename": entry.Filename,
			})
		}
	}
}
