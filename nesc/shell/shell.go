// Package shell implements NesC: the line-oriented command and
// control-flow language at the heart of the host shell.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/afero"
)

// Shell is the process-lifetime shell state described by the data
// model: user variables (and aliases, keyed by "_alias_<name>"),
// append-only history, and the running flag that ends the REPL.
type Shell struct {
	Vars    map[string]string
	History []string
	Running bool

	Fs     afero.Fs
	Exec   Executor
	Stdout io.Writer
	Stdin  io.Reader
}

// New builds a shell wired to the real filesystem and process
// executor, for production use.
func New(stdout io.Writer, stdin io.Reader) *Shell {
	color.NoColor = false
	return &Shell{
		Vars:    make(map[string]string),
		History: make([]string, 0, 512),
		Running: true,
		Fs:      afero.NewOsFs(),
		Exec:    OSExecutor{},
		Stdout:  stdout,
		Stdin:   stdin,
	}
}

var (
	cwdColor    = color.New(color.FgCyan)
	promptColor = color.New(color.FgYellow)
)

// Prompt renders the interactive prompt: the current working directory
// in color, followed by a colored "nes>".
func (s *Shell) Prompt() string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "?"
	}
	return fmt.Sprintf("%s %s ", cwdColor.Sprint(cwd), promptColor.Sprint("nes>"))
}

// BlockPrompt renders the continuation prompt shown while a multi-line
// if/for block is being assembled.
func BlockPrompt() string {
	return promptColor.Sprint(" ...>") + " "
}

func (s *Shell) ctx() context.Context { return context.Background() }

func (s *Shell) flush() {
	if f, ok := s.Stdout.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}

func fprintf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
