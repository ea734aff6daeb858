//go:build !windows

package input

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// openTTY opens the controlling terminal of the process.
func openTTY() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_RDWR, 0)
}

// readSecret reads the secret with prompt directly from /dev/tty.
func readSecret(prompt string) (string, error) {
	f, err := openTTY()
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err = f.WriteString(prompt); err != nil {
		return "", err
	}
	secret, err := term.ReadPassword(int(f.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	_, err = f.WriteString("\n")
	return string(secret), err
}
