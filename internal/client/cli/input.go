package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

const envSecretKey = "FILEMETA_SECRET_KEY"

// GetSecret prints a prompt to w and reads the service secret from the
// terminal without echo. A newline is printed after the read.
func GetSecret(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter service secret: "); err != nil {
		return nil, err
	}
	secret, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return secret, nil
}

// lookupSecret returns the secret from the environment, or prompts for it
// when stdin is a terminal. It returns nil when neither is available.
func lookupSecret(w io.Writer) ([]byte, error) {
	if v, ok := os.LookupEnv(envSecretKey); ok && v != "" {
		return []byte(v), nil
	}
	if !isTerminal(int(os.Stdin.Fd())) {
		return nil, nil
	}
	return GetSecret(w)
}
