package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/oadr3/internal/constants"
)

const (
	keyBaseURL      = "base_url"
	keyClientID     = "client_id"
	keyClientSecret = "client_secret"
	keyScope        = "scope"
	keyTimeout      = "timeout"
	keyOutput       = "output"
)

// Config represents the persisted CLI configuration.
type Config struct {
	BaseURL      string `json:"base_url,omitempty"      yaml:"base_url,omitempty"`
	ClientID     string `json:"client_id,omitempty"     yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	Scope        string `json:"scope,omitempty"         yaml:"scope,omitempty"`
	Timeout      string `json:"timeout,omitempty"       yaml:"timeout,omitempty"`
	Output       string `json:"output,omitempty"        yaml:"output,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the VTN connection settings stored in the CLI config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with the client secret masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.ClientSecret != "" {
				config.ClientSecret = "***"
			}

			return render(cmd.OutOrStdout(), config, func(out io.Writer) error {
				return displayConfigTable(out, config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s",
			strings.Join([]string{keyBaseURL, keyClientID, keyClientSecret, keyScope, keyTimeout, keyOutput}, ", ")),
		Args: cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			applyConfig(config)

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return err
		},
	}
}

func loadConfig() *Config {
	config := &Config{
		BaseURL:      viper.GetString(keyBaseURL),
		ClientID:     viper.GetString(keyClientID),
		ClientSecret: viper.GetString(keyClientSecret),
		Scope:        viper.GetString(keyScope),
		Output:       viper.GetString(keyOutput),
	}

	if timeout, err := configuredTimeout(); err == nil && timeout != 0 {
		config.Timeout = timeout.String()
	}

	return config
}

// configuredTimeout reads the timeout setting. Zero means unset.
func configuredTimeout() (time.Duration, error) {
	value := strings.TrimSpace(viper.GetString(keyTimeout))
	if value == "" {
		return 0, nil
	}

	return parseTimeout(value)
}

// parseTimeout accepts a Go duration ("45s", "2m") or a bare number of
// seconds, and rejects anything that is not positive.
func parseTimeout(value string) (time.Duration, error) {
	timeout, err := time.ParseDuration(value)
	if err != nil {
		seconds, convErr := strconv.Atoi(value)
		if convErr != nil {
			return 0, fmt.Errorf("%w: %q", constants.ErrInvalidTimeout, value)
		}

		timeout = time.Duration(seconds) * time.Second
	}

	if timeout <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidTimeout, value)
	}

	return timeout, nil
}

// applyConfig makes saved values visible to the rest of the process.
func applyConfig(config *Config) {
	viper.Set(keyBaseURL, config.BaseURL)
	viper.Set(keyClientID, config.ClientID)
	viper.Set(keyClientSecret, config.ClientSecret)
	viper.Set(keyScope, config.Scope)
	viper.Set(keyTimeout, config.Timeout)
	viper.Set(keyOutput, config.Output)
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case keyBaseURL:
		config.BaseURL = strings.TrimSuffix(value, "/")
	case keyClientID:
		config.ClientID = value
	case keyClientSecret:
		config.ClientSecret = value
	case keyScope:
		config.Scope = value
	case keyTimeout:
		timeout, err := parseTimeout(value)
		if err != nil {
			return err
		}

		config.Timeout = timeout.String()
	case keyOutput:
		switch value {
		case constants.OutputFormatTable, constants.OutputFormatJSON, constants.OutputFormatYAML:
			config.Output = value
		default:
			return fmt.Errorf("%w: %q (use table, json or yaml)", constants.ErrInvalidOutput, value)
		}
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func saveConfig(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configFile = filepath.Join(home, ".oadr3", "config.yml")
	}

	err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displayConfigTable(out io.Writer, config *Config) error {
	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")
	_ = table.Append("Base URL", config.BaseURL)
	_ = table.Append("Client ID", config.ClientID)
	_ = table.Append("Client Secret", config.ClientSecret)
	_ = table.Append("Scope", config.Scope)
	_ = table.Append("Timeout", config.Timeout)
	_ = table.Append("Output", config.Output)

	return table.Render()
}
