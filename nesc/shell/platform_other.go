//go:build !windows

package shell

func execSuffix() string { return "" }

func platformOpener(path string) (string, []string) {
	return "xdg-open", []string{path}
}
