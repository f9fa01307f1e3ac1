package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mycoria/passto"
)

func newRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:   "passto [flags] <service>",
		Short: "Derive a reproducible password for a service",
		Long: `Passto derives a password for a service from a passphrase.

The same passphrase, service and settings always produce the same password,
so nothing needs to be stored. Settings can be given as flags, loaded from a
json or yaml file, or from a settings token created by "passto settings".`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(cmd, o, args[0])
		},
	}
	o.registerFlags(rootCmd)

	rootCmd.AddCommand(newSettingsCmd(o))

	return rootCmd
}

func runDerive(cmd *cobra.Command, o *options, service string) error {
	log := newLogger(cmd, o)

	settings, err := o.resolveSettings(cmd)
	if err != nil {
		return err
	}
	log.Debug("using settings",
		"fingerprint", settings.Fingerprint(),
		"hashing", settings.Hashing,
		"digest", settings.Digest.Type,
		"salting", settings.Salting,
		"hashing_iterations", settings.HashingIterations,
		"salting_iterations", settings.SaltingIterations,
		"max_length", settings.MaxLength,
	)

	passphrase, err := o.readPassphrase(cmd)
	if err != nil {
		return err
	}
	defer clear(passphrase)

	if o.Random {
		log.Warn("using a new random passphrase, write it down to derive this password again")
		cmd.PrintErrf("Passphrase: %s\n", passphrase)
	}

	password, err := passto.Derive(passphrase, []byte(service), settings)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), password)
	return nil
}

// newLogger returns a logger writing to stderr.
func newLogger(cmd *cobra.Command, o *options) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
}
