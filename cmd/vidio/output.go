package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// printer writes user-facing lines, colouring them only on a terminal.
type printer struct {
	out      io.Writer
	colorize bool
}

func newPrinter(w io.Writer, opts cliOptions) printer {
	return printer{out: w, colorize: !opts.NoColor && shouldColorize(w)}
}

func shouldColorize(writer io.Writer) bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p printer) paint(text string, attrs ...color.Attribute) string {
	if !p.colorize {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

func (p printer) line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p printer) success(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.paint("✓", color.FgGreen), fmt.Sprintf(format, args...))
}

func (p printer) warn(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(fmt.Sprintf(format, args...), color.FgYellow))
}
