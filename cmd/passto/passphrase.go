package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mycoria/passto"
)

const (
	passphraseEnv        = "PASSTO_PASSPHRASE"
	randomPassphraseSize = 32
)

var errEmptyPassphrase = errors.New("empty passphrase")

// readPassphrase returns the passphrase from the flags, the environment,
// an interactive prompt or the first line of stdin, in that order.
func (o *options) readPassphrase(cmd *cobra.Command) ([]byte, error) {
	switch {
	case o.Random:
		passphrase, err := passto.NewPrintablePassphrase(randomPassphraseSize)
		if err != nil {
			return nil, err
		}
		return []byte(passphrase), nil
	case o.Passphrase != "":
		return []byte(o.Passphrase), nil
	}

	if env := os.Getenv(passphraseEnv); env != "" {
		return []byte(env), nil
	}

	// Prompt without echo if stdin is a terminal.
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		cmd.PrintErr("Passphrase: ")
		passphrase, err := term.ReadPassword(int(f.Fd()))
		cmd.PrintErrln()
		if err != nil {
			return nil, fmt.Errorf("failed to read passphrase: %w", err)
		}
		if len(passphrase) == 0 {
			return nil, errEmptyPassphrase
		}
		return passphrase, nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errEmptyPassphrase, err)
		}
		return nil, errEmptyPassphrase
	}
	return []byte(line), nil
}
