package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/JPLeopoldino/readmai-cli/internal/config"
)

// readAPIKey asks for a key on in. Terminal input is not echoed.
func readAPIKey(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "Please enter your %s API key: ", label)

	var raw string
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("reading API key: %w", err)
		}
		raw = string(b)
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading API key: %w", err)
		}
		raw = line
	}

	key := strings.TrimSpace(raw)
	if key == "" {
		return "", config.ErrMissingAPIKey
	}
	return key, nil
}
