//go:build unix

package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// openTTYInput returns the *os.File Bubble Tea should read keypresses
// from: stdin itself when it's already a terminal, or /dev/tty when
// stdin has been consumed by --stdin patch mode. The caller must close
// the returned file when it differs from os.Stdin.
func openTTYInput() (*os.File, error) {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return os.Stdin, nil
	}
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("stdin mode requires a terminal: %w", err)
	}
	return tty, nil
}
