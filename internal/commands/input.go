package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// In is the interactive input source. os.Stdin by default, swapped in tests.
var In io.Reader = os.Stdin

// promptPassword reads a password without echo.
func promptPassword(label string) (string, error) {
	fmt.Fprintf(Out, "%s: ", label)
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(Out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Confirm asks a blocking yes/no question on the terminal. Anything other
// than y/yes declines.
func Confirm(prompt string) (bool, error) {
	fmt.Fprintf(Out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
