package input

import (
	"io"
	"strings"

	"golang.org/x/term"
)

// ReadWriter combines reader and writer.
type ReadWriter struct {
	io.Reader
	io.Writer
}

// Terminal is a terminal used for input. If `nil`, the controlling terminal
// of the process is used.
var Terminal *term.Terminal

// ReadSecret reads a secret (like a private key) with prompt, the input is
// not echoed.
func ReadSecret(prompt string) (string, error) {
	if Terminal != nil {
		s, err := Terminal.ReadPassword(prompt)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(s, "\n"), nil
	}
	return readSecret(prompt)
}
