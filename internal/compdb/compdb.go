// Package compdb reads JSON compilation databases
// (compile_commands.json).
package compdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
)

// Filename is the conventional compilation database file name.
const Filename = "compile_commands.json"

// ErrCannotLoad reports that no usable database exists at the given
// directory. It is distinct from a database that loads with zero
// records.
var ErrCannotLoad = errors.New("cannot load compilation database")

// CompileCommand is one record of a compilation database. Either
// Command (a single shell-quoted string) or Arguments (already
// tokenized) is populated.
type CompileCommand struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Command   string   `json:"command,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	Output    string   `json:"output,omitempty"`
}

// Argv returns the tokenized command line for the record. The
// Arguments form is preferred; the Command form is split with shell
// quoting rules.
func (c CompileCommand) Argv() ([]string, error) {
	if len(c.Arguments) > 0 {
		return c.Arguments, nil
	}
	if strings.TrimSpace(c.Command) == "" {
		return nil, nil
	}
	argv, err := shlex.Split(c.Command)
	if err != nil {
		return nil, fmt.Errorf("splitting command %q: %w", c.Command, err)
	}
	return argv, nil
}

// Load reads compile_commands.json from dir. A missing or malformed
// file reports ErrCannotLoad so callers can fall back to another
// loading strategy.
func Load(dir string) ([]CompileCommand, error) {
	path := filepath.Join(dir, Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotLoad, err)
	}
	var commands []CompileCommand
	if err := json.Unmarshal(data, &commands); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCannotLoad, path, err)
	}
	return commands, nil
}
