package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sevistuo/cquery/internal/project"
	"github.com/Sevistuo/cquery/internal/storage"
)

var (
	loadExtraFlags []string
	loadDBDir      string
	loadSave       bool
	loadList       bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the project and report what was found",
	Run:   runLoad,
}

func init() {
	loadCmd.Flags().StringArrayVar(&loadExtraFlags, "extra-flag", nil,
		"Extra flag appended to every entry (repeatable)")
	loadCmd.Flags().StringVar(&loadDBDir, "db-dir", "",
		"Directory containing compile_commands.json (default: project root)")
	loadCmd.Flags().BoolVar(&loadSave, "save", false,
		"Persist the loaded project to the project database")
	loadCmd.Flags().BoolVar(&loadList, "list", false,
		"List the files passing the configured index filters")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	p := loadProject(cfg, logger, loadExtraFlags, loadDBDir)

	fmt.Printf("Loaded %d entries\n", len(p.Entries))
	fmt.Printf("Quote include directories: %d\n", len(p.QuoteIncludeDirectories))
	fmt.Printf("Angle include directories: %d\n", len(p.AngleIncludeDirectories))

	if loadList {
		p.ForAllFilteredFiles(cfg.IndexWhitelist, cfg.IndexBlacklist,
			cfg.LogSkippedPathsForIndex, func(i int, entry project.Entry) {
				fmt.Println(entry.Filename)
			})
	}

	if !loadSave {
		return
	}
	db, err := storage.Open(rootFlag, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening project database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.SaveProject(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving project: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved project to %s\n", db.Path())
}
