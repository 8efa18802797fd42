package shell

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/SandwichEater577/Nes/nesc/argtok"
	"github.com/SandwichEater577/Nes/nesc/expand"
	"github.com/spf13/afero"
)

// ExecLines runs an ordered sequence of raw lines through the block
// engine: blank lines and comments are skipped, `if`/`for`
// headers open nested blocks scanned for their matching `end`, and
// every other line is handed to the line evaluator.
func (s *Shell) ExecLines(lines []string) {
	pc := 0
	for pc < len(lines) && s.Running {
		raw := strings.TrimSpace(lines[pc])
		if raw == "" || strings.HasPrefix(raw, "#") {
			pc++
			continue
		}

		switch {
		case strings.HasPrefix(raw, "if "):
			elseIdx, endIdx := findBlockEnd(lines, pc)
			if endIdx >= len(lines) {
				fprintf(s.Stdout, "%s\n", colorErr("nes: missing 'end' for 'if'"))
				return
			}
			cond := expand.Vars(raw[3:], s.Vars)
			if s.evalCondition(cond) {
				stop := endIdx
				if elseIdx >= 0 {
					stop = elseIdx
				}
				s.ExecLines(lines[pc+1 : stop])
			} else if elseIdx >= 0 {
				s.ExecLines(lines[elseIdx+1 : endIdx])
			}
			pc = endIdx + 1

		case strings.HasPrefix(raw, "for "):
			_, endIdx := findBlockEnd(lines, pc)
			if endIdx >= len(lines) {
				fprintf(s.Stdout, "%s\n", colorErr("nes: missing 'end' for 'for'"))
				return
			}
			body := lines[pc+1 : endIdx]
			header := expand.Vars(raw, s.Vars)
			s.execFor(header, body)
			pc = endIdx + 1

		default:
			s.Exec(raw)
			pc++
		}
	}
}

// findBlockEnd scans forward from start+1 tracking nesting depth,
// returning the index of a same-depth `else` (-1 if none) and the
// index of the matching `end` (len(lines) if unmatched).
func findBlockEnd(lines []string, start int) (elseIdx, endIdx int) {
	depth := 0
	elseIdx = -1
	for i := start + 1; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(l, "if ") || strings.HasPrefix(l, "for "):
			depth++
		case l == "end":
			if depth == 0 {
				return elseIdx, i
			}
			depth--
		case l == "else" && depth == 0:
			elseIdx = i
		}
	}
	return -1, len(lines)
}

// evalCondition implements the predicate grammar: first match
// wins, left to right over the trimmed condition.
func (s *Shell) evalCondition(cond string) bool {
	cond = strings.TrimSpace(cond)
	if rest, ok := strings.CutPrefix(cond, "exists "); ok {
		exists, _ := afero.Exists(s.Fs, strings.TrimSpace(rest))
		return exists
	}
	if rest, ok := strings.CutPrefix(cond, "not "); ok {
		return !s.evalCondition(rest)
	}
	if pos := strings.Index(cond, " >= "); pos >= 0 {
		return parseFloatNaN(cond[:pos]) >= parseFloatNaN(cond[pos+4:])
	}
	if pos := strings.Index(cond, " <= "); pos >= 0 {
		return parseFloatNaN(cond[:pos]) <= parseFloatNaN(cond[pos+4:])
	}
	if pos := strings.Index(cond, " == "); pos >= 0 {
		return strings.TrimSpace(cond[:pos]) == strings.TrimSpace(cond[pos+4:])
	}
	if pos := strings.Index(cond, " != "); pos >= 0 {
		return strings.TrimSpace(cond[:pos]) != strings.TrimSpace(cond[pos+4:])
	}
	if pos := strings.Index(cond, " > "); pos >= 0 {
		return parseFloatNaN(cond[:pos]) > parseFloatNaN(cond[pos+3:])
	}
	if pos := strings.Index(cond, " < "); pos >= 0 {
		return parseFloatNaN(cond[:pos]) < parseFloatNaN(cond[pos+3:])
	}
	return cond != "" && cond != "false" && cond != "0"
}

func parseFloatNaN(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// execFor parses `for <var> in <source>` and runs body once per item,
// binding vars[<var>] to the item's string form each iteration.
func (s *Shell) execFor(header string, body []string) {
	after := strings.TrimSpace(header[4:])
	pos := strings.Index(after, " in ")
	if pos < 0 {
		return
	}
	varName := strings.TrimSpace(after[:pos])
	rest := strings.TrimSpace(after[pos+4:])

	items := s.iterationSource(rest)
	for _, item := range items {
		if !s.Running {
			break
		}
		s.Vars[varName] = item
		s.ExecLines(body)
	}
}

func (s *Shell) iterationSource(rest string) []string {
	switch {
	case rest == "files" || strings.HasPrefix(rest, "files "):
		dir := "."
		if rest != "files" {
			dir = strings.TrimSpace(rest[len("files "):])
		}
		if dir == "" {
			dir = "."
		}
		entries, err := afero.ReadDir(s.Fs, dir)
		if err != nil {
			return nil
		}
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		sort.Strings(names)
		return names

	case strings.HasPrefix(rest, "range "):
		parts := strings.Fields(rest[len("range "):])
		if len(parts) < 2 {
			return nil
		}
		a, _ := strconv.ParseInt(parts[0], 10, 64)
		b, _ := strconv.ParseInt(parts[1], 10, 64)
		var out []string
		if a <= b {
			for n := a; n <= b; n++ {
				out = append(out, strconv.FormatInt(n, 10))
			}
		} else {
			for n := b; n <= a; n++ {
				out = append(out, strconv.FormatInt(n, 10))
			}
			reverseStrings(out)
		}
		return out

	case strings.HasPrefix(rest, "lines "):
		file := strings.TrimSpace(rest[len("lines "):])
		data, err := afero.ReadFile(s.Fs, file)
		if err != nil {
			return nil
		}
		lines := strings.Split(string(data), "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		return lines

	default:
		return argtok.Split(rest)
	}
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
