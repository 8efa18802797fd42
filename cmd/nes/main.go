// Command nes is the Host Shell CLI front matter: banner, completions,
// NesT file routing, and bare-line dispatch.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/SandwichEater577/Nes/nesc/shell"
	"github.com/SandwichEater577/Nes/nest/interp"
	"github.com/SandwichEater577/Nes/nest/parser"
	"github.com/SandwichEater577/Nes/repl"
)

var completionTokens = []string{
	"cd", "ls", "ll", "pwd", "tree", "find", "which",
	"cat", "head", "tail", "wc", "touch", "mkdir", "rm", "cp", "mv", "hex", "size",
	"echo", "grep", "whoami", "hostname", "os", "env", "time", "date", "open", "clear", "cls",
	"let", "set", "unset", "export", "alias", "history", "run", "read", "sleep", "exists", "count", "typeof",
	"if", "for", "end", "else", "calc", "help", "enter-full", "exit", "quit",
}

const banner = "nes — the nestea shell\n\n" +
	"  NesC (shell)\n" +
	"  nes <command>         run a shell command\n" +
	"  nes enter-full        interactive shell\n" +
	"  nes run <file.nes>    run a NesC script\n\n" +
	"  NesT (language)\n" +
	"  nes run <file.nest>   run a NesT program\n\n" +
	"  nes help              show all commands\n" +
	"  nes --completions     list commands\n"

func main() {
	args := os.Args[1:]
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if len(args) == 0 {
		fmt.Fprint(out, banner)
		return
	}

	first := args[0]
	if first == "--completions" {
		fmt.Fprintln(out, strings.Join(completionTokens, "\n"))
		return
	}

	if first == "run" && len(args) >= 2 && strings.HasSuffix(args[1], ".nest") {
		runNestFile(args[1])
		return
	}
	if strings.HasSuffix(first, ".nest") {
		runNestFile(first)
		return
	}

	sh := shell.New(out, os.Stdin)

	if first == "enter-full" {
		fmt.Fprint(out, "nes — the nestea shell (NesC + NesT)\n\n")
		out.Flush()
		if err := repl.Run(sh); err != nil {
			fmt.Fprintf(os.Stderr, "nes: %s\n", err)
			os.Exit(1)
		}
		return
	}

	sh.Exec(strings.Join(args, " "))
	out.Flush()
}

func runNestFile(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nest: cannot read '%s': %s\n", path, err)
		os.Exit(1)
	}
	prog, err := parser.Parse(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "nest error: %s\n", err)
		os.Exit(1)
	}
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	it := interp.New(out, os.Stdin)
	if err := it.Run(prog); err != nil {
		out.Flush()
		fmt.Fprintf(os.Stderr, "nest error: %s\n", err)
		os.Exit(1)
	}
}
