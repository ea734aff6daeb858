//go:build windows

package input

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	fmt.Fprintln(os.Stderr)
	return string(secret), nil
}
