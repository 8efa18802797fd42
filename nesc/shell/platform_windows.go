//go:build windows

package shell

func execSuffix() string { return ".exe" }

func platformOpener(path string) (string, []string) {
	return "cmd", []string{"/c", "start", path}
}
