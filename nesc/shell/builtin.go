package shell

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SandwichEater577/Nes/calc"
	"github.com/SandwichEater577/Nes/nesc/argtok"
	"github.com/spf13/afero"
)

// dispatch chooses a built-in by the first token, falls back to an
// alias expansion re-entering Exec once, and otherwise hands the whole
// line to the process executor with inherited streams.
func (s *Shell) dispatch(input string) {
	parts := argtok.Split(input)
	if len(parts) == 0 {
		return
	}
	cmd := parts[0]
	args := parts[1:]
	argStr := strings.Join(args, " ")

	if handler, ok := builtins[cmd]; ok {
		handler(s, args, argStr)
		return
	}

	if expansion, ok := s.Vars["_alias_"+cmd]; ok {
		full := expansion
		if argStr != "" {
			full = expansion + " " + argStr
		}
		s.Exec(full)
		return
	}

	s.flush()
	code, started := s.Exec.RunInherited(s.ctx(), cmd, args, s.Stdin, s.Stdout, os.Stderr)
	if !started {
		fprintf(s.Stdout, "nes: '%s' not recognized\n", cmd)
	} else if code != 0 {
		fprintf(s.Stdout, "%s\n", colorErr(fmt.Sprintf("exit %d", code)))
	}
}

type builtinFn func(s *Shell, args []string, argStr string)

// builtins holds the process/environment handlers; fs-backed handlers
// live in fsbuiltin.go and `help` in help.go, and each file's init
// merges them into this table. `which` is the one handler here that
// also probes the filesystem seam.
var builtins map[string]builtinFn

func init() {
	builtins = map[string]builtinFn{
		"exit":     biExit,
		"quit":     biExit,
		"cd":       biCd,
		"let":      biLet,
		"echo":     biEcho,
		"read":     biRead,
		"sleep":    biSleep,
		"set":      biSet,
		"unset":    biUnset,
		"export":   biExport,
		"history":  biHistory,
		"pwd":      biPwd,
		"whoami":   biWhoami,
		"hostname": biHostname,
		"os":       biOS,
		"env":      biEnv,
		"date":     biDate,
		"time":     biTime,
		"calc":     biCalc,
		"open":     biOpen,
		"clear":    biClear,
		"cls":      biClear,
		"which":    biWhich,
		"alias":    biAlias,
	}
}

func biExit(s *Shell, args []string, argStr string) {
	fprintf(s.Stdout, "%s\n", promptColor.Sprint("Goodbye."))
	s.Running = false
}

func biCd(s *Shell, args []string, argStr string) {
	var dir string
	switch {
	case argStr == "":
		dir = firstEnv("USERPROFILE", "HOME")
		if dir == "" {
			dir = "."
		}
	case argStr == "-":
		dir = s.Vars["OLDPWD"]
		if dir == "" {
			dir = "."
		}
	default:
		dir = argStr
	}
	old, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		fprintf(s.Stdout, "cd: %s\n", err)
		return
	}
	if old != "" {
		s.Vars["OLDPWD"] = old
	}
}

func biLet(s *Shell, args []string, argStr string) {
	eq := strings.Index(argStr, "=")
	if eq < 0 {
		fprintf(s.Stdout, "Usage: let name = value\n")
		return
	}
	name := strings.TrimSpace(argStr[:eq])
	val := strings.TrimSpace(argStr[eq+1:])
	s.Vars[name] = val
}

func biEcho(s *Shell, args []string, argStr string) {
	fprintf(s.Stdout, "%s\n", argStr)
}

func biRead(s *Shell, args []string, argStr string) {
	if argStr == "" {
		fprintf(s.Stdout, "Usage: read <varname>\n")
		return
	}
	s.flush()
	sc := bufio.NewScanner(s.Stdin)
	line := ""
	if sc.Scan() {
		line = sc.Text()
	}
	s.Vars[argStr] = strings.TrimSpace(line)
}

func biSleep(s *Shell, args []string, argStr string) {
	ms, err := strconv.Atoi(strings.TrimSpace(argStr))
	if err != nil || ms <= 0 {
		return
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func biSet(s *Shell, args []string, argStr string) {
	if argStr == "" {
		for _, kv := range os.Environ() {
			fprintf(s.Stdout, "%s\n", kv)
		}
		return
	}
	eq := strings.Index(argStr, "=")
	if eq < 0 {
		return
	}
	k := strings.TrimSpace(argStr[:eq])
	v := strings.TrimSpace(argStr[eq+1:])
	_ = os.Setenv(k, v)
}

func biUnset(s *Shell, args []string, argStr string) {
	delete(s.Vars, argStr)
}

func biExport(s *Shell, args []string, argStr string) {
	eq := strings.Index(argStr, "=")
	if eq < 0 {
		return
	}
	k := strings.TrimSpace(argStr[:eq])
	v := strings.TrimSpace(argStr[eq+1:])
	_ = os.Setenv(k, v)
	s.Vars[k] = v
}

func biHistory(s *Shell, args []string, argStr string) {
	for i, h := range s.History {
		fprintf(s.Stdout, "  %d %s\n", i+1, h)
	}
}

func biPwd(s *Shell, args []string, argStr string) {
	if d, err := os.Getwd(); err == nil {
		fprintf(s.Stdout, "%s\n", d)
	}
}

func biWhoami(s *Shell, args []string, argStr string) {
	fprintf(s.Stdout, "%s\n", firstEnvOr("unknown", "USERNAME", "USER"))
}

func biHostname(s *Shell, args []string, argStr string) {
	fprintf(s.Stdout, "%s\n", firstEnvOr("unknown", "COMPUTERNAME", "HOSTNAME"))
}

func biOS(s *Shell, args []string, argStr string) {
	fprintf(s.Stdout, "%s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func biEnv(s *Shell, args []string, argStr string) {
	envs := os.Environ()
	sort.Strings(envs)
	for _, kv := range envs {
		fprintf(s.Stdout, "%s\n", kv)
	}
}

// fixedOffsetNow applies the same fixed UTC+1 offset the original
// clock helper used, computed in-process rather than from the host's
// timezone database.
func fixedOffsetNow() time.Time {
	return time.Now().UTC().Add(time.Hour)
}

func biDate(s *Shell, args []string, argStr string) {
	t := fixedOffsetNow()
	fprintf(s.Stdout, "%04d-%02d-%02d\n", t.Year(), t.Month(), t.Day())
}

func biTime(s *Shell, args []string, argStr string) {
	t := fixedOffsetNow()
	fprintf(s.Stdout, "%04d-%02d-%02d %02d:%02d:%02d\n", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
}

func biCalc(s *Shell, args []string, argStr string) {
	if argStr == "" {
		fprintf(s.Stdout, "Usage: calc <expr>\n")
		return
	}
	r, err := calc.Eval(argStr)
	if err != nil {
		fprintf(s.Stdout, "calc: %s\n", err)
		return
	}
	if r == math.Floor(r) && math.Abs(r) < 1e15 {
		fprintf(s.Stdout, "%d\n", int64(r))
	} else {
		fprintf(s.Stdout, "%g\n", r)
	}
}

func biOpen(s *Shell, args []string, argStr string) {
	if argStr == "" {
		fprintf(s.Stdout, "Usage: open <path>\n")
		return
	}
	s.flush()
	name, openArgs := platformOpener(argStr)
	_, _ = s.Exec.RunInherited(s.ctx(), name, openArgs, nil, s.Stdout, os.Stderr)
}

func biClear(s *Shell, args []string, argStr string) {
	fprintf(s.Stdout, "\x1b[2J\x1b[H")
}

func biWhich(s *Shell, args []string, argStr string) {
	pathEnv := os.Getenv("PATH")
	suffix := execSuffix()
	for _, dir := range strings.Split(pathEnv, string(os.PathListSeparator)) {
		candidate := dir + string(os.PathSeparator) + argStr + suffix
		if ok, _ := afero.Exists(s.Fs, candidate); ok {
			fprintf(s.Stdout, "%s\n", candidate)
			return
		}
	}
	fprintf(s.Stdout, "which: '%s' not found\n", argStr)
}

func biAlias(s *Shell, args []string, argStr string) {
	eq := strings.Index(argStr, "=")
	if eq >= 0 {
		name := strings.TrimSpace(argStr[:eq])
		val := strings.TrimSpace(argStr[eq+1:])
		s.Vars["_alias_"+name] = val
		return
	}
	names := make([]string, 0, len(s.Vars))
	for k := range s.Vars {
		if strings.HasPrefix(k, "_alias_") {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	for _, k := range names {
		fprintf(s.Stdout, "%s=%s\n", strings.TrimPrefix(k, "_alias_"), s.Vars[k])
	}
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func firstEnvOr(def string, names ...string) string {
	if v := firstEnv(names...); v != "" {
		return v
	}
	return def
}
