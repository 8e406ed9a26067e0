package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
)

// interactive reports whether both stdin and stdout are terminals
func interactive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// useTUI picks the full-screen interface unless disabled or not on a terminal
func useTUI(noTUI bool) bool {
	return !noTUI && interactive()
}
