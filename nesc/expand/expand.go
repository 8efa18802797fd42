// Package expand implements NesC's `$NAME` variable expansion:
// shell-local variables first, then the process environment, and
// finally the literal `$name` text when neither resolves.
package expand

import (
	"os"
	"strings"
)

// Vars expands every `$NAME` reference in input. vars is the shell's
// own variable table, consulted before the OS environment.
func Vars(input string, vars map[string]string) string {
	var out strings.Builder
	out.Grow(len(input))
	r := []rune(input)
	i := 0
	for i < len(r) {
		if r[i] == '$' && i+1 < len(r) && isIdentRune(r[i+1]) {
			i++
			start := i
			for i < len(r) && isIdentRune(r[i]) {
				i++
			}
			name := string(r[start:i])
			if val, ok := vars[name]; ok {
				out.WriteString(val)
			} else if val, ok := os.LookupEnv(name); ok {
				out.WriteString(val)
			} else {
				out.WriteByte('$')
				out.WriteString(name)
			}
		} else {
			out.WriteRune(r[i])
			i++
		}
	}
	return out.String()
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
