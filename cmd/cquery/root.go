package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sevistuo/cquery/internal/config"
	"github.com/Sevistuo/cquery/internal/logging"
	"github.com/Sevistuo/cquery/internal/project"
	"github.com/Sevistuo/cquery/internal/version"
)

var (
	// rootFlag is the CLI --root flag value
	rootFlag string
	// logLevelFlag / logFormatFlag override the configured logging
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "cquery",
	Short: "cquery - compilation database loader and flag normalizer",
	Long: `cquery loads a project's build configuration (compile_commands.json, a
flat flag file, or a raw directory scan) and produces, for every source
file, a canonical absolute argument list ready for a single-file
compiler front-end, plus the derived include-directory indexes.`,
	Version: version.Info(),
}

func init() {
	rootCmd.SetVersionTemplate("cquery version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".",
		"Project root directory")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format (json, human)")
}

// mustLoadConfig reads the project configuration, exiting on a
// malformed config file. A missing file yields defaults.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(rootFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the logger from config with CLI flags taking
// precedence.
func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	format := cfg.Logging.Format
	if logFormatFlag != "" {
		format = logFormatFlag
	}
	return logging.New(os.Stderr, logging.ParseLevel(level), logging.Format(format))
}

// resolveDatabaseDir resolves a database directory relative to the
// project root. Empty stays empty (meaning: the root itself).
func resolveDatabaseDir(root, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// loadProject runs a full load with config plus per-command overrides.
func loadProject(cfg *config.Config, logger *logging.Logger, extraFlags []string, dbDir string) *project.Project {
	flags := append(append([]string{}, cfg.ExtraFlags...), extraFlags...)
	if dbDir == "" {
		dbDir = cfg.CompilationDatabaseDirectory
	}
	return project.Load(project.LoadOptions{
		ExtraFlags:                   flags,
		CompilationDatabaseDirectory: resolveDatabaseDir(rootFlag, dbDir),
		RootDirectory:                rootFlag,
		ResourceDirectory:            cfg.ResourceDirectory,
		Logger:                       logger,
	})
}
