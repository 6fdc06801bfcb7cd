package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// prompt prints label and reads one line.
func prompt(cmd *cobra.Command, reader *bufio.Reader, label string) string {
	cmd.Print(label)
	return readLine(reader)
}

// readPassword reads without echo when in is a terminal, otherwise falls back to a plain line.
func readPassword(cmd *cobra.Command, in io.Reader, reader *bufio.Reader, label string) string {
	cmd.Print(label)
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}

func maskSecret(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
