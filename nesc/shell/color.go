package shell

import "github.com/fatih/color"

var (
	errColor = color.New(color.FgRed)
	dirColor = color.New(color.FgBlue)
)

func colorErr(s string) string { return errColor.Sprint(s) }
func colorDir(s string) string { return dirColor.Sprint(s) }
