package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sevistuo/cquery/internal/snapshot"
)

var (
	dumpFormat string
	dumpOut    string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the loaded project",
	Long: `Load the project and write every normalized entry plus the derived
include-directory indexes, either to stdout (json or yaml) or to a
zstd-compressed snapshot file.`,
	Run: runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "json", "Output format (json, yaml)")
	dumpCmd.Flags().StringVar(&dumpOut, "out", "",
		"Write a compressed snapshot to this file instead of stdout")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	p := loadProject(cfg, logger, nil, "")
	s := snapshot.Capture(p, rootFlag)

	if dumpOut != "" {
		if err := snapshot.Write(dumpOut, s); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote snapshot %s (%d entries)\n", dumpOut, len(p.Entries))
		return
	}

	output, err := formatSnapshot(s, dumpFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(output)
}

func formatSnapshot(s *snapshot.Snapshot, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(s)
	case "json":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
