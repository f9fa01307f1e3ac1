package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mycoria/passto"
)

// Output formats of the settings command.
const (
	FormatJSON        = "json"
	FormatYAML        = "yaml"
	FormatToken       = "token"
	FormatFingerprint = "fingerprint"
)

func newSettingsCmd(o *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the effective settings",
		Long: `Print the effective settings built from the defaults, the settings file
or token and the flags.

The output can be saved as a settings file (json, yaml) or passed on with
--settings-token (token). The fingerprint identifies the settings without
revealing anything else.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := o.resolveSettings(cmd)
			if err != nil {
				return err
			}
			out, err := formatSettings(settings, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", FormatJSON, "Output format (json|yaml|token|fingerprint)")

	return cmd
}

func formatSettings(settings passto.AlgorithmSettings, format string) (string, error) {
	switch format {
	case FormatJSON:
		data, err := settings.JSON()
		if err != nil {
			return "", err
		}
		return string(data), nil

	case FormatYAML:
		data, err := settings.JSON()
		if err != nil {
			return "", err
		}
		data, err = jsonToYAML(data)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case FormatToken:
		return settings.Text()

	case FormatFingerprint:
		return settings.Fingerprint(), nil

	default:
		return "", fmt.Errorf("unknown format %q, use json, yaml, token or fingerprint", format)
	}
}
