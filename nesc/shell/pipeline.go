package shell

import (
	"context"
	"io"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

// Pipeline spawns each stage in order, chaining stage i's stdout into
// stage i+1's stdin, waits for all of them via errgroup, and lets the
// stages themselves run concurrently in the meantime, matching the
// "spawn in order, wait for all" pipeline contract.
func (OSExecutor) Pipeline(ctx context.Context, stages [][]string, stdin io.Reader, finalStdout io.Writer) error {
	cmds := make([]*exec.Cmd, 0, len(stages))
	var prev io.ReadCloser
	for i, stage := range stages {
		if len(stage) == 0 {
			continue
		}
		cmd := exec.CommandContext(ctx, stage[0], stage[1:]...)
		if prev != nil {
			cmd.Stdin = prev
		} else {
			cmd.Stdin = stdin
		}
		last := i == len(stages)-1
		if last {
			cmd.Stdout = finalStdout
		} else {
			pipe, err := cmd.StdoutPipe()
			if err != nil {
				return err
			}
			prev = pipe
		}
		cmd.Stderr = os.Stderr
		if err := cmd.Start(); err != nil {
			return err
		}
		cmds = append(cmds, cmd)
	}
	var g errgroup.Group
	for _, cmd := range cmds {
		cmd := cmd
		g.Go(cmd.Wait)
	}
	return g.Wait()
}
