package shell

import (
	"os"
	"strings"

	"github.com/SandwichEater577/Nes/nesc/argtok"
	"github.com/SandwichEater577/Nes/nesc/expand"
)

// Exec evaluates one logical line: variable expansion, then &&
// sequencing, then per-segment redirect/pipe/dispatch. Each segment is
// expanded once more just before it runs, so a variable set by an
// earlier segment (`let x = 10 && echo $x`) is seen by later ones. &&
// segments run unconditionally left to right; none of them
// short-circuit on a prior segment's failure.
func (s *Shell) Exec(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return
	}
	if raw == "end" || raw == "else" {
		return
	}
	raw = expand.Vars(raw, s.Vars)

	for _, chain := range strings.Split(raw, "&&") {
		chain = strings.TrimSpace(chain)
		if chain == "" {
			continue
		}
		s.execChain(expand.Vars(chain, s.Vars))
	}
}

func (s *Shell) execChain(chain string) {
	switch {
	case strings.Contains(chain, ">>"):
		pos := strings.Index(chain, ">>")
		s.redirect(chain[:pos], strings.TrimSpace(chain[pos+2:]), true)
	case strings.Contains(chain, ">"):
		pos := strings.Index(chain, ">")
		s.redirect(chain[:pos], strings.TrimSpace(chain[pos+1:]), false)
	case strings.Contains(chain, "|"):
		s.execPipe(chain)
	default:
		s.dispatch(chain)
		s.flush()
	}
}

// redirect captures cmd's output through the process executor only
// (built-ins are never captured) and writes it to file, appending when
// append is true and truncating/overwriting otherwise.
func (s *Shell) redirect(cmd, file string, appendMode bool) {
	capture := s.capture(strings.TrimSpace(cmd))
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := s.Fs.OpenFile(file, flags, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.Write([]byte(capture))
}

func (s *Shell) capture(cmd string) string {
	parts := argtok.Split(cmd)
	if len(parts) == 0 {
		return ""
	}
	return s.Exec.Capture(s.ctx(), parts[0], parts[1:])
}

func (s *Shell) execPipe(chain string) {
	rawStages := strings.Split(chain, "|")
	if len(rawStages) < 2 {
		s.dispatch(chain)
		return
	}
	stages := make([][]string, 0, len(rawStages))
	for _, raw := range rawStages {
		parts := argtok.Split(strings.TrimSpace(raw))
		if len(parts) == 0 {
			continue
		}
		stages = append(stages, parts)
	}
	if len(stages) == 0 {
		return
	}
	if err := s.Exec.Pipeline(s.ctx(), stages, s.Stdin, s.Stdout); err != nil {
		fprintf(s.Stdout, "Error: %s\n", err)
	}
}
