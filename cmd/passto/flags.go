package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mycoria/passto"
)

// options holds all flags of the passto commands.
type options struct {
	Verbose bool

	// Settings sources.
	SettingsFile  string
	SettingsToken string

	// Settings overrides.
	Hashing           string
	Digest            string
	Alphabet          string
	Salting           string
	ChunkSize         int
	MaxLength         int
	HashingIterations int
	SaltingIterations int

	// Passphrase sources.
	Passphrase string
	Random     bool
}

// registerFlags registers the persistent flags on the root command.
func (o *options) registerFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "Enable verbose output")

	flags.StringVar(&o.SettingsFile, "settings", "", "Load settings from a json or yaml file")
	flags.StringVar(&o.SettingsToken, "settings-token", "", "Load settings from a settings token (passto:...)")

	flags.StringVar(&o.Hashing, "hashing", "", "Hashing algorithm (sha256|sha512)")
	flags.StringVar(&o.Digest, "digest", "", "Digest algorithm (hex|base64|base64-url|custom-alphabet)")
	flags.StringVar(&o.Alphabet, "alphabet", "", "Alphabet for the custom-alphabet digest, implies --digest custom-alphabet")
	flags.StringVar(&o.Salting, "salting", "", "Salting algorithm (prepend|append|zip)")
	flags.IntVar(&o.ChunkSize, "chunk-size", 0, "Chunk size for the zip salting, implies --salting zip")
	flags.IntVar(&o.MaxLength, "max-length", 0, "Max length of the derived password (0 for no limit)")
	flags.IntVar(&o.HashingIterations, "hashing-iterations", 1, "Number of hashing iterations")
	flags.IntVar(&o.SaltingIterations, "salting-iterations", 1, "Number of salting iterations")

	flags.StringVarP(&o.Passphrase, "passphrase", "p", "", "Passphrase (default: $"+passphraseEnv+" or prompt)")
	flags.BoolVar(&o.Random, "random", false, "Use a new random passphrase and print it")

	cmd.MarkFlagsMutuallyExclusive("settings", "settings-token")
	cmd.MarkFlagsMutuallyExclusive("passphrase", "random")
}

// resolveSettings builds the effective settings: defaults, then a settings
// file or token, then explicitly set flags.
func (o *options) resolveSettings(cmd *cobra.Command) (passto.AlgorithmSettings, error) {
	settings := passto.DefaultSettings()

	switch {
	case o.SettingsFile != "":
		loaded, err := loadSettingsFile(o.SettingsFile)
		if err != nil {
			return settings, err
		}
		settings = loaded

	case o.SettingsToken != "":
		loaded, err := passto.LoadSettingsFromText(o.SettingsToken)
		if err != nil {
			return settings, err
		}
		settings = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("hashing") {
		ha, err := passto.ParseHashingAlgorithm(o.Hashing)
		if err != nil {
			return settings, err
		}
		settings.Hashing = ha
	}
	if flags.Changed("digest") {
		dt, err := passto.ParseDigestType(o.Digest)
		if err != nil {
			return settings, err
		}
		if dt != settings.Digest.Type {
			settings.Digest = passto.DigestAlgorithm{Type: dt}
		}
	}
	if flags.Changed("alphabet") {
		settings.Digest = passto.CustomAlphabet(o.Alphabet)
	}
	if flags.Changed("salting") {
		st, err := passto.ParseSaltingType(o.Salting)
		if err != nil {
			return settings, err
		}
		if st != settings.Salting.Type {
			settings.Salting = passto.SaltingAlgorithm{Type: st}
		}
	}
	if flags.Changed("chunk-size") {
		settings.Salting = passto.Zip(o.ChunkSize)
	}
	if flags.Changed("max-length") {
		settings.MaxLength = o.MaxLength
	}
	if flags.Changed("hashing-iterations") {
		settings.HashingIterations = o.HashingIterations
	}
	if flags.Changed("salting-iterations") {
		settings.SaltingIterations = o.SaltingIterations
	}

	// Parameterized algorithms need their parameter.
	if settings.Digest.Type == passto.DigestTypeCustomAlphabet && settings.Digest.Alphabet == "" {
		return settings, fmt.Errorf("%w: --alphabet is required for %s", passto.ErrInvalidDigestAlgorithm, passto.DigestTypeCustomAlphabet)
	}
	if settings.Salting.Type == passto.SaltingZip && settings.Salting.ChunkSize == 0 {
		return settings, fmt.Errorf("%w: --chunk-size is required for %s", passto.ErrInvalidChunkSize, passto.SaltingZip)
	}

	return settings, settings.Validate()
}

// loadSettingsFile loads settings from a json or yaml file.
func loadSettingsFile(path string) (passto.AlgorithmSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return passto.AlgorithmSettings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return passto.AlgorithmSettings{}, fmt.Errorf("%w: %w", passto.ErrSettingsDeserialization, err)
		}
	}

	return passto.LoadSettingsFromJSON(data)
}

// yamlToJSON converts a yaml document into json.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return json.Marshal(doc)
}

// jsonToYAML converts a json document into yaml.
func jsonToYAML(data []byte) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}
