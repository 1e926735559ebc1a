//go:build !unix

package cli

import "os"

// openTTYInput has no /dev/tty equivalent outside Unix; --stdin mode
// just reads keys from stdin directly, same as every other mode.
func openTTYInput() (*os.File, error) {
	return os.Stdin, nil
}
