//go:build windows

package tty

import "os"

func openTerminal() (*os.File, error) {
	return os.OpenFile("CONIN$", os.O_RDWR, 0)
}
