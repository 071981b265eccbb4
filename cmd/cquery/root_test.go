package main

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Sevistuo/cquery/internal/snapshot"
)

func TestResolveDatabaseDir(t *testing.T) {
	tests := []struct {
		name string
		root string
		dir  string
		want string
	}{
		{"empty stays empty", "/proj", "", ""},
		{"absolute kept as-is", "/proj", "/build/out", "/build/out"},
		{"relative joined to root", "/proj", "build", "/proj/build"},
		{"nested relative", "/proj", "out/debug", "/proj/out/debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveDatabaseDir(tt.root, tt.dir)
			if got != tt.want {
				t.Errorf("resolveDatabaseDir(%q, %q) = %q, want %q", tt.root, tt.dir, got, tt.want)
			}
		})
	}
}

func TestFormatSnapshot(t *testing.T) {
	s := &snapshot.Snapshot{
		Manifest: snapshot.Manifest{ID: "test", Root: "/proj", EntryCount: 0},
	}

	jsonOut, err := formatSnapshot(s, "json")
	if err != nil {
		t.Fatalf("formatSnapshot(json) error: %v", err)
	}
	var decoded snapshot.Snapshot
	if err := json.Unmarshal(jsonOut, &decoded); err != nil {
		t.Fatalf("json output does not parse: %v", err)
	}
	if decoded.Manifest.Root != "/proj" {
		t.Errorf("Manifest.Root = %q, want %q", decoded.Manifest.Root, "/proj")
	}

	yamlOut, err := formatSnapshot(s, "yaml")
	if err != nil {
		t.Fatalf("formatSnapshot(yaml) error: %v", err)
	}
	var decodedYAML snapshot.Snapshot
	if err := yaml.Unmarshal(yamlOut, &decodedYAML); err != nil {
		t.Fatalf("yaml output does not parse: %v", err)
	}

	if _, err := formatSnapshot(s, "toml"); err == nil {
		t.Error("formatSnapshot(toml) should fail")
	} else if !strings.Contains(err.Error(), "toml") {
		t.Errorf("error %q should name the bad format", err)
	}
}

func TestCommands_Setup(t *testing.T) {
	if rootCmd.Use != "cquery" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "cquery")
	}

	wantSubcommands := []string{"load", "flags <file>", "dump"}
	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Use] = true
	}
	for _, use := range wantSubcommands {
		if !registered[use] {
			t.Errorf("rootCmd missing subcommand %q", use)
		}
	}

	if loadCmd.Flags().Lookup("extra-flag") == nil {
		t.Error("loadCmd should have --extra-flag flag")
	}
	if loadCmd.Flags().Lookup("save") == nil {
		t.Error("loadCmd should have --save flag")
	}
	if dumpCmd.Flags().Lookup("format") == nil {
		t.Error("dumpCmd should have --format flag")
	}
	if dumpCmd.Flags().Lookup("out") == nil {
		t.Error("dumpCmd should have --out flag")
	}
	if rootCmd.PersistentFlags().Lookup("root") == nil {
		t.Error("rootCmd should have --root persistent flag")
	}
}
