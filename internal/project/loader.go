package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sevistuo/cquery/internal/compdb"
	"github.com/Sevistuo/cquery/internal/logging"
)

// FlagFileName is the flat flag file read from the project root: one
// flag per line, blank lines and #-comments ignored.
const FlagFileName = ".cquery"

// loadEntries runs one of the two loading strategies. A flag file at
// the project root always wins; otherwise the compilation database is
// tried with the directory scan as fallback.
func loadEntries(cfg *projectConfig, dbDir string, logger *logging.Logger) []Entry {
	if _, err := os.Stat(filepath.Join(cfg.projectDir, FlagFileName)); err == nil {
		return loadFromDirectoryListing(cfg, logger)
	}

	if dbDir == "" {
		dbDir = cfg.projectDir
	}
	logger.Info("trying to load compilation database", logging.Fields{"dir": dbDir})
	commands, err := compdb.Load(dbDir)
	if err != nil {
		logger.Info("unable to load compilation database; using directory listing instead",
			logging.Fields{"dir": dbDir, "error": err.Error()})
		return loadFromDirectoryListing(cfg, logger)
	}

	entries := make([]Entry, 0, len(commands))
	for _, cmd := range commands {
		argv, err := cmd.Argv()
		if err != nil {
			logger.Warn("skipping record with unparsable command",
				logging.Fields{"file": cmd.File, "error": err.Error()})
			continue
		}
		absolute := cmd.File
		if !strings.HasPrefix(absolute, "/") {
			absolute = cmd.Directory + "/" + cmd.File
		}
		raw := rawEntry{
			directory: cmd.Directory,
			file:      cfg.norm.Normalize(absolute),
			args:      argv,
		}
		entries = append(entries, normalizeEntry(cfg, raw))
	}
	return entries
}

// loadFromDirectoryListing synthesizes one entry per source file found
// under the project root, all sharing the flags from the flag file.
func loadFromDirectoryListing(cfg *projectConfig, logger *logging.Logger) []Entry {
	var args []string
	flagPath := filepath.Join(cfg.projectDir, FlagFileName)
	data, err := os.ReadFile(flagPath)
	flagFileExists := err == nil
	if flagFileExists {
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			args = append(args, line)
		}
	}
	if len(args) > 0 {
		logger.Info("using flag file arguments",
			logging.Fields{"file": flagPath, "args": strings.Join(args, " ")})
	}
	if !flagFileExists && len(cfg.extraFlags) == 0 {
		logger.Warn("no compiler arguments found; consider adding a compile_commands.json or "+FlagFileName+" file", nil)
	}

	var entries []Entry
	for _, file := range listFiles(cfg.projectDir) {
		if _, ok := sourceFileType(file); !ok {
			continue
		}
		raw := rawEntry{
			directory: cfg.projectDir,
			file:      file,
			args:      append(append([]string{}, args...), file),
		}
		entries = append(entries, normalizeEntry(cfg, raw))
	}
	return entries
}

// listFiles returns every regular file under root, recursively, in
// lexical order. Scan errors degrade to a partial (possibly empty)
// listing.
func listFiles(root string) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files
}
