// Package repl drives the interactive Host Shell loop: prompt, line
// read, block assembly, and history.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/SandwichEater577/Nes/nesc/shell"
)

// Run drives the interactive REPL against sh until EOF or the shell
// sets Running to false.
func Run(sh *shell.Shell) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sh.Prompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	var blockBuf []string
	blockDepth := 0

	for {
		if blockDepth > 0 {
			rl.SetPrompt(shell.BlockPrompt())
		} else {
			rl.SetPrompt(sh.Prompt())
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		sh.History = append(sh.History, input)

		trimmed := strings.TrimSpace(input)
		startsBlock := strings.HasPrefix(trimmed, "if ") || strings.HasPrefix(trimmed, "for ")
		isEnd := trimmed == "end"

		if blockDepth > 0 || startsBlock {
			if startsBlock {
				blockDepth++
			}
			blockBuf = append(blockBuf, input)
			if isEnd {
				blockDepth--
				if blockDepth == 0 {
					sh.ExecLines(blockBuf)
					blockBuf = nil
				}
			}
		} else {
			sh.Exec(input)
		}

		if !sh.Running {
			return nil
		}
	}
}
