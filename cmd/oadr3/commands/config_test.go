//nolint:paralleltest // these tests share the global viper configuration
package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/oadr3/internal/constants"
)

func useConfigFile(t *testing.T) string {
	t.Helper()

	configFile := filepath.Join(t.TempDir(), "oadr3", "config.yml")
	viper.SetConfigFile(configFile)
	t.Cleanup(viper.Reset)

	return configFile
}

func TestConfigSet(t *testing.T) {
	configFile := useConfigFile(t)

	stdout, _, err := execute(NewConfigCommand(), "set", "base_url", "https://vtn.example/")
	require.NoError(t, err)
	assert.Equal(t, "Set base_url\n", stdout)

	_, _, err = execute(NewConfigCommand(), "set", "timeout", "45s")
	require.NoError(t, err)

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)

	var saved Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "https://vtn.example", saved.BaseURL)
	assert.Equal(t, "45s", saved.Timeout)

	info, err := os.Stat(configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())
}

func TestConfigSet_Rejects(t *testing.T) {
	useConfigFile(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "unknown key", args: []string{"set", "region", "eu"}, want: constants.ErrUnknownConfigKey},
		{name: "bad timeout", args: []string{"set", "timeout", "soon"}, want: constants.ErrInvalidTimeout},
		{name: "negative timeout", args: []string{"set", "timeout", "--", "-1s"}, want: constants.ErrInvalidTimeout},
		{name: "zero timeout", args: []string{"set", "timeout", "0s"}, want: constants.ErrInvalidTimeout},
		{name: "negative seconds", args: []string{"set", "timeout", "--", "-5"}, want: constants.ErrInvalidTimeout},
		{name: "bad output", args: []string{"set", "output", "xml"}, want: constants.ErrInvalidOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(NewConfigCommand(), tt.args...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConfiguredTimeout(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  time.Duration
		err   error
	}{
		{name: "unset", value: nil, want: 0},
		{name: "duration string", value: "45s", want: 45 * time.Second},
		{name: "bare seconds from yaml", value: 30, want: 30 * time.Second},
		{name: "bare seconds string", value: "90", want: 90 * time.Second},
		{name: "flag duration", value: 2 * time.Minute, want: 2 * time.Minute},
		{name: "garbage", value: "soon", err: constants.ErrInvalidTimeout},
		{name: "zero", value: "0", err: constants.ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(viper.Reset)

			if tt.value != nil {
				viper.Set("timeout", tt.value)
			}

			timeout, err := configuredTimeout()
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, timeout)
		})
	}
}

func TestConfigSet_UnitlessTimeoutIsSeconds(t *testing.T) {
	configFile := useConfigFile(t)

	_, _, err := execute(NewConfigCommand(), "set", "timeout", "30")
	require.NoError(t, err)

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)

	var saved Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "30s", saved.Timeout)
}

func TestConfigShow_MasksSecret(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("base_url", "https://vtn.example")
	viper.Set("client_id", "ven-client")
	viper.Set("client_secret", "hunter2")
	viper.Set("output", constants.OutputFormatJSON)

	stdout, _, err := execute(NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "hunter2")

	var shown Config
	require.NoError(t, json.Unmarshal([]byte(stdout), &shown))
	assert.Equal(t, "***", shown.ClientSecret)
	assert.Equal(t, "ven-client", shown.ClientID)
}
