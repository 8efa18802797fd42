package shell

import "github.com/fatih/color"

var sectionColor = color.New(color.FgCyan)
var titleColor = color.New(color.FgYellow)

func init() {
	builtins["help"] = biHelpImpl
}

func biHelpImpl(s *Shell, args []string, argStr string) {
	section := func(name, body string) {
		fprintf(s.Stdout, "%s %s\n", sectionColor.Sprint(name), body)
	}

	fprintf(s.Stdout, "%s\n\n", titleColor.Sprint("nes"))
	fprintf(s.Stdout, "%s\n", titleColor.Sprint(" NesC (Shell)"))
	section("Navigation", "cd ls ll pwd tree find which")
	section("Files     ", "cat head tail wc touch mkdir rm cp mv hex size")
	section("Text      ", "echo grep")
	section("System    ", "whoami hostname os env time date open clear")
	section("Shell     ", "let set unset export alias history run read")
	section("Control   ", "if/else/end  for/end  sleep  exists  count  typeof")
	section("Math      ", "calc <expr>")
	section("Flow      ", "cmd1 && cmd2    cmd > file    cmd >> file    cmd | cmd")
	section("Other     ", "Any unknown command runs as a system command")
	section("Exit      ", "exit quit")
	fprintf(s.Stdout, "\n%s\n", titleColor.Sprint(" NesT (Language)    nes run <file.nest>"))
	section("Types     ", "int  float  str  bool")
	section("Syntax    ", "let x = 5;  x = x + 1;  fn name(a, b) { }")
	section("Control   ", "if/else { }  for i in 0..10 { }  while cond { }")
	section("I/O       ", "print()  println()  input()")
	section("Built-ins ", "len() type() str() int() float() abs() sqrt() min() max() pow()")
	section("Operators ", "+ - * / %  == != < > <= >=  && || !")
	section("Other     ", "return  break  continue  # comments  // comments")
}
