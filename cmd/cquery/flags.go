package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sevistuo/cquery/internal/logging"
	"github.com/Sevistuo/cquery/internal/paths"
	"github.com/Sevistuo/cquery/internal/project"
	"github.com/Sevistuo/cquery/internal/storage"
)

var flagsCmd = &cobra.Command{
	Use:   "flags <file>",
	Short: "Print the compiler flags that apply to a file",
	Long: `Print the normalized argument vector for a source file, one argument
per line. Files absent from the database get a best-effort inferred
vector from the closest-matching known entry.`,
	Args: cobra.ExactArgs(1),
	Run:  runFlags,
}

func init() {
	rootCmd.AddCommand(flagsCmd)
}

func runFlags(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	p := loadProject(cfg, logger, nil, "")
	filename := paths.Real{}.Normalize(args[0])

	var db *storage.DB
	if cfg.CacheInference {
		var err error
		db, err = storage.Open(rootFlag, logger)
		if err != nil {
			logger.Warn("inference cache unavailable", logging.Fields{"error": err.Error()})
		} else {
			defer db.Close()
		}
	}

	entry := lookupEntry(p, db, filename, logger)
	for _, arg := range entry.Args {
		fmt.Println(arg)
	}
	if entry.IsInferred {
		logger.Info("flags inferred from closest matching entry",
			logging.Fields{"file": filename})
	}
}

// lookupEntry resolves the entry for filename: exact match first, then
// the inference cache when enabled, then a fresh inference (recorded in
// the cache for next time).
func lookupEntry(p *project.Project, db *storage.DB, filename string, logger *logging.Logger) project.Entry {
	entry := p.FindCompilationEntryForFile(filename)
	if !entry.IsInferred || db == nil {
		return entry
	}

	if cached, ok, err := db.CachedInference(filename); err == nil && ok {
		return project.Entry{Filename: filename, Args: cached, IsInferred: true}
	}
	if err := db.PutInference(filename, entry.Args); err != nil {
		logger.Warn("failed to cache inferred flags", logging.Fields{
			"file":  filename,
			"error": err.Error(),
		})
	}
	return entry
}
