package shell

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

func init() {
	fsBuiltins := map[string]builtinFn{
		"exists": biExists,
		"count":  biCount,
		"typeof": biTypeof,
		"ls":     biLs,
		"ll":     biLl,
		"cat":    biCat,
		"head":   biHead,
		"tail":   biTail,
		"wc":     biWc,
		"touch":  biTouch,
		"mkdir":  biMkdir,
		"rm":     biRm,
		"cp":     biCp,
		"mv":     biMv,
		"grep":   biGrep,
		"find":   biFind,
		"tree":   biTree,
		"size":   biSize,
		"hex":    biHex,
		"run":    biRun,
	}
	for name, fn := range fsBuiltins {
		builtins[name] = fn
	}
}

func biExists(s *Shell, args []string, argStr string) {
	if argStr == "" {
		fprintf(s.Stdout, "Usage: exists <path>\n")
		return
	}
	ok, _ := afero.Exists(s.Fs, argStr)
	fprintf(s.Stdout, "%t\n", ok)
}

func biCount(s *Shell, args []string, argStr string) {
	dir := "."
	if argStr != "" {
		dir = argStr
	}
	entries, err := afero.ReadDir(s.Fs, dir)
	if err != nil {
		fprintf(s.Stdout, "0\n")
		return
	}
	fprintf(s.Stdout, "%d\n", len(entries))
}

func biTypeof(s *Shell, args []string, argStr string) {
	if argStr == "" {
		fprintf(s.Stdout, "Usage: typeof <path>\n")
		return
	}
	info, err := s.Fs.Stat(argStr)
	switch {
	case err != nil:
		fprintf(s.Stdout, "none\n")
	case info.IsDir():
		fprintf(s.Stdout, "dir\n")
	default:
		fprintf(s.Stdout, "file\n")
	}
}

func biLs(s *Shell, args []string, argStr string) {
	dir := "."
	if argStr != "" {
		dir = argStr
	}
	entries, err := afero.ReadDir(s.Fs, dir)
	if err != nil {
		fprintf(s.Stdout, "ls: %s\n", err)
		return
	}
	var dirs, files []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		} else {
			files = append(files, e.Name())
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	for _, d := range dirs {
		fprintf(s.Stdout, " %s", colorDir(d+"/"))
	}
	for _, f := range files {
		fprintf(s.Stdout, " %s", f)
	}
	if len(dirs) > 0 || len(files) > 0 {
		fprintf(s.Stdout, "\n")
	}
}

func biLl(s *Shell, args []string, argStr string) {
	dir := "."
	if argStr != "" {
		dir = argStr
	}
	entries, err := afero.ReadDir(s.Fs, dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			fprintf(s.Stdout, " %s\n", colorDir(rightAlign("<DIR>", 10)+"  "+e.Name()+"/"))
		} else {
			fprintf(s.Stdout, "  %s  %s\n", rightAlign(strconv.FormatInt(e.Size(), 10), 10), e.Name())
		}
	}
}

func rightAlign(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func biCat(s *Shell, args []string, argStr string) {
	if argStr == "" {
		fprintf(s.Stdout, "Usage: cat <file>\n")
		return
	}
	data, err := afero.ReadFile(s.Fs, argStr)
	if err != nil {
		fprintf(s.Stdout, "cat: %s\n", err)
		return
	}
	_, _ = s.Stdout.Write(data)
	if len(data) == 0 || data[len(data)-1] != '\n' {
		fprintf(s.Stdout, "\n")
	}
}

func parseNumArg(args []string, def int) (int, string) {
	if len(args) >= 2 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			n = def
		}
		return n, args[1]
	}
	if len(args) == 1 {
		return def, args[0]
	}
	return def, ""
}

func biHead(s *Shell, args []string, argStr string) {
	n, file := parseNumArg(args, 10)
	data, err := afero.ReadFile(s.Fs, file)
	if err != nil {
		return
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if n > len(lines) {
		n = len(lines)
	}
	for _, l := range lines[:n] {
		fprintf(s.Stdout, "%s\n", l)
	}
}

func biTail(s *Shell, args []string, argStr string) {
	n, file := parseNumArg(args, 10)
	data, err := afero.ReadFile(s.Fs, file)
	if err != nil {
		return
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	start := len(lines) - n
	if start < 0 {
		start = 0
	}
	for _, l := range lines[start:] {
		fprintf(s.Stdout, "%s\n", l)
	}
}

func biWc(s *Shell, args []string, argStr string) {
	data, err := afero.ReadFile(s.Fs, argStr)
	if err != nil {
		return
	}
	content := string(data)
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if content == "" {
		lines = nil
	}
	words := len(strings.Fields(content))
	fprintf(s.Stdout, "  %dL  %dW  %dB  %s\n", len(lines), words, len(content), argStr)
}

func biTouch(s *Shell, args []string, argStr string) {
	if ok, _ := afero.Exists(s.Fs, argStr); ok {
		return
	}
	f, err := s.Fs.Create(argStr)
	if err == nil {
		f.Close()
	}
}

func biMkdir(s *Shell, args []string, argStr string) {
	_ = s.Fs.MkdirAll(argStr, 0o755)
}

func biRm(s *Shell, args []string, argStr string) {
	info, err := s.Fs.Stat(argStr)
	if err != nil {
		return
	}
	if info.IsDir() {
		_ = s.Fs.RemoveAll(argStr)
	} else {
		_ = s.Fs.Remove(argStr)
	}
}

func biCp(s *Shell, args []string, argStr string) {
	if len(args) < 2 {
		fprintf(s.Stdout, "Usage: cp <src> <dst>\n")
		return
	}
	data, err := afero.ReadFile(s.Fs, args[0])
	if err != nil {
		return
	}
	_ = afero.WriteFile(s.Fs, args[1], data, 0o644)
}

func biMv(s *Shell, args []string, argStr string) {
	if len(args) < 2 {
		fprintf(s.Stdout, "Usage: mv <src> <dst>\n")
		return
	}
	_ = s.Fs.Rename(args[0], args[1])
}

func biGrep(s *Shell, args []string, argStr string) {
	if len(args) < 2 {
		fprintf(s.Stdout, "Usage: grep <pattern> <file>\n")
		return
	}
	pattern, file := args[0], args[1]
	data, err := afero.ReadFile(s.Fs, file)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.Contains(line, pattern) {
			highlighted := strings.ReplaceAll(line, pattern, colorErr(pattern))
			fprintf(s.Stdout, "%s\n", highlighted)
		}
	}
}

func biFind(s *Shell, args []string, argStr string) {
	pattern := "*"
	if argStr != "" {
		pattern = argStr
	}
	s.findRecursive(".", pattern)
}

func (s *Shell) findRecursive(dir, pattern string) {
	entries, err := afero.ReadDir(s.Fs, dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		path := strings.TrimPrefix(dir+"/"+name, "./")
		if pattern == "*" || strings.Contains(name, pattern) {
			fprintf(s.Stdout, "%s\n", path)
		}
		if e.IsDir() {
			s.findRecursive(dir+"/"+name, pattern)
		}
	}
}

func biTree(s *Shell, args []string, argStr string) {
	dir := "."
	if argStr != "" {
		dir = argStr
	}
	s.printTree(dir, "", true)
}

func (s *Shell) printTree(path, prefix string, isLast bool) {
	name := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		name = path[idx+1:]
	}
	connector := ""
	if prefix != "" {
		if isLast {
			connector = "└── "
		} else {
			connector = "├── "
		}
	}
	info, err := s.Fs.Stat(path)
	isDir := err == nil && info.IsDir()
	if isDir {
		fprintf(s.Stdout, "%s%s%s\n", prefix, connector, colorDir(name+"/"))
	} else {
		fprintf(s.Stdout, "%s%s%s\n", prefix, connector, name)
	}
	if !isDir {
		return
	}
	entries, err := afero.ReadDir(s.Fs, path)
	if err != nil {
		return
	}
	childPrefix := prefix
	if prefix == "" {
		childPrefix = ""
	} else if isLast {
		childPrefix = prefix + "    "
	} else {
		childPrefix = prefix + "│   "
	}
	for i, e := range entries {
		s.printTree(path+"/"+e.Name(), childPrefix, i == len(entries)-1)
	}
}

func biSize(s *Shell, args []string, argStr string) {
	if argStr == "" {
		fprintf(s.Stdout, "Usage: size <path>\n")
		return
	}
	total := s.dirSize(argStr)
	fprintf(s.Stdout, "%s\n", humanSize(total))
}

func (s *Shell) dirSize(path string) int64 {
	info, err := s.Fs.Stat(path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		return info.Size()
	}
	entries, err := afero.ReadDir(s.Fs, path)
	if err != nil {
		return 0
	}
	var total int64
	for _, e := range entries {
		total += s.dirSize(path + "/" + e.Name())
	}
	return total
}

func humanSize(bytes int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(bytes)
	unit := 0
	for size >= 1024.0 && unit < 4 {
		size /= 1024.0
		unit++
	}
	if unit == 0 {
		return strconv.FormatInt(bytes, 10) + " " + units[unit]
	}
	return strconv.FormatFloat(size, 'f', 1, 64) + " " + units[unit]
}

func biHex(s *Shell, args []string, argStr string) {
	if argStr == "" {
		fprintf(s.Stdout, "Usage: hex <file>\n")
		return
	}
	data, err := afero.ReadFile(s.Fs, argStr)
	if err != nil {
		return
	}
	rows := 0
	for i := 0; i < len(data) && rows < 32; i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		chunk := data[i:end]
		fprintf(s.Stdout, "%08x  ", i)
		for _, b := range chunk {
			fprintf(s.Stdout, "%02x ", b)
		}
		for n := 0; n < 16-len(chunk); n++ {
			fprintf(s.Stdout, "   ")
		}
		fprintf(s.Stdout, " |")
		for _, b := range chunk {
			if b >= 0x20 && b < 0x7f {
				fprintf(s.Stdout, "%c", b)
			} else {
				fprintf(s.Stdout, ".")
			}
		}
		fprintf(s.Stdout, "|\n")
		rows++
	}
	if len(data) > 512 {
		fprintf(s.Stdout, "... (%d bytes total)\n", len(data))
	}
}

func biRun(s *Shell, args []string, argStr string) {
	if argStr == "" {
		fprintf(s.Stdout, "Usage: run <script.nes>\n")
		return
	}
	data, err := afero.ReadFile(s.Fs, argStr)
	if err != nil {
		fprintf(s.Stdout, "run: cannot read '%s'\n", argStr)
		return
	}
	s.ExecLines(strings.Split(string(data), "\n"))
}
