package shell_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SandwichEater577/Nes/nesc/shell"
)

// fakeExecutor stands in for the real OS process boundary so the shell
// core can be exercised without touching the host process table.
type fakeExecutor struct {
	captureOut map[string]string
	ran        []string
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{captureOut: make(map[string]string)}
}

func (f *fakeExecutor) Capture(ctx context.Context, name string, args []string) string {
	key := strings.Join(append([]string{name}, args...), " ")
	f.ran = append(f.ran, key)
	if out, ok := f.captureOut[key]; ok {
		return out
	}
	return ""
}

func (f *fakeExecutor) RunInherited(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) (int, bool) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.ran = append(f.ran, key)
	if name == "__missing__" {
		return -1, false
	}
	return 0, true
}

func (f *fakeExecutor) Pipeline(ctx context.Context, stages [][]string, stdin io.Reader, finalStdout io.Writer) error {
	f.ran = append(f.ran, "pipeline")
	_, _ = finalStdout.Write([]byte("piped\n"))
	return nil
}

func newTestShell() (*shell.Shell, *bytes.Buffer, *fakeExecutor) {
	var out bytes.Buffer
	exec := newFakeExecutor()
	sh := &shell.Shell{
		Vars:    make(map[string]string),
		History: []string{},
		Running: true,
		Fs:      afero.NewMemMapFs(),
		Exec:    exec,
		Stdout:  &out,
		Stdin:   strings.NewReader(""),
	}
	return sh, &out, exec
}

func TestLetAndEchoExpansion(t *testing.T) {
	sh, out, _ := newTestShell()
	sh.Exec("let x = 10 && echo $x")
	assert.Equal(t, "10", sh.Vars["x"])
	assert.Equal(t, "10\n", out.String())
}

func TestAndChainDoesNotShortCircuit(t *testing.T) {
	sh, out, _ := newTestShell()
	sh.Exec("__missing__ && echo still-ran")
	assert.Equal(t, "nes: '__missing__' not recognized\nstill-ran\n", out.String())
}

func TestRedirectOverwriteThenCat(t *testing.T) {
	sh, out, exec := newTestShell()
	exec.captureOut["echo hello"] = "hello\n"
	sh.Exec("echo hello > out.txt")
	data, err := afero.ReadFile(sh.Fs, "out.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	sh.Exec("cat out.txt")
	assert.Equal(t, "hello\n", out.String())
}

func TestRedirectAppend(t *testing.T) {
	sh, _, exec := newTestShell()
	exec.captureOut["echo a"] = "a\n"
	exec.captureOut["echo b"] = "b\n"
	sh.Exec("echo a > out.txt")
	sh.Exec("echo b >> out.txt")
	data, err := afero.ReadFile(sh.Fs, "out.txt")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))
}

func TestPipelineDelegatesToExecutor(t *testing.T) {
	sh, out, exec := newTestShell()
	sh.Exec("ls | grep foo")
	assert.Equal(t, "piped\n", out.String())
	assert.Contains(t, exec.ran, "pipeline")
}

func TestDispatchUnknownCommand(t *testing.T) {
	sh, out, _ := newTestShell()
	sh.Exec("__missing__")
	assert.Contains(t, out.String(), "not recognized")
}

func TestAliasExpansion(t *testing.T) {
	sh, out, _ := newTestShell()
	sh.Exec("alias greet=echo")
	sh.Exec("greet hi")
	assert.Equal(t, "hi\n", out.String())
}

func TestBlockEngineForRange(t *testing.T) {
	sh, out, _ := newTestShell()
	sh.ExecLines([]string{
		"for i in range 1 3",
		"echo $i",
		"end",
	})
	assert.Equal(t, "1\n2\n3\n", out.String())
}

func TestBlockEngineIfElse(t *testing.T) {
	sh, out, _ := newTestShell()
	sh.Vars["flag"] = "0"
	sh.ExecLines([]string{
		"if $flag == 1",
		"echo yes",
		"else",
		"echo no",
		"end",
	})
	assert.Equal(t, "no\n", out.String())
}

func TestCommentsAndEmptyLinesSkipped(t *testing.T) {
	sh, out, _ := newTestShell()
	sh.ExecLines([]string{"# a comment", "", "echo hi"})
	assert.Equal(t, "hi\n", out.String())
}

func TestCalcBuiltin(t *testing.T) {
	sh, out, _ := newTestShell()
	sh.Exec("calc 2 + 3 * 4 ^ 2")
	assert.Equal(t, "50\n", out.String())
}
