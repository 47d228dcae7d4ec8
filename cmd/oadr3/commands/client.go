package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/oadr3/internal/constants"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3client"
)

// CreateClient builds a VTN client from the merged flag, environment and
// config file settings.
func CreateClient() (oadr3.Client, error) {
	config, err := buildOADR3Config()
	if err != nil {
		return nil, err
	}

	verbose := viper.GetBool("verbose")
	logger := newLogger(os.Stderr, verbose)

	return oadr3client.New(config,
		oadr3.WithLogger(&zerologAdapter{logger: logger}),
		oadr3.WithDebug(verbose),
		oadr3.WithUserAgent("oadr3-cli"),
	)
}

func buildOADR3Config() (*oadr3.Config, error) {
	baseURL := viper.GetString("base_url")
	if baseURL == "" {
		return nil, constants.ErrNoBaseURL
	}

	clientID := viper.GetString("client_id")
	if clientID == "" {
		return nil, constants.ErrNoClientID
	}

	clientSecret := viper.GetString("client_secret")
	if clientSecret == "" {
		secret, err := promptClientSecret()
		if err != nil {
			return nil, err
		}

		clientSecret = secret
	}

	var opts []oadr3.ConfigOption
	if scope := viper.GetString("scope"); scope != "" {
		opts = append(opts, oadr3.WithScope(scope))
	}

	timeout, err := configuredTimeout()
	if err != nil {
		return nil, err
	}

	if timeout != 0 {
		opts = append(opts, oadr3.WithTimeout(timeout))
	}

	return oadr3.NewConfig(baseURL, clientID, clientSecret, opts...)
}

// promptClientSecret reads the secret from the terminal without echo.
func promptClientSecret() (string, error) {
	fd := int(os.Stdin.Fd()) // #nosec G115 -- file descriptors fit in int
	if !term.IsTerminal(fd) {
		return "", constants.ErrNoClientSecret
	}

	fmt.Fprint(os.Stderr, "Client secret: ")

	secretBytes, err := term.ReadPassword(fd)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("failed to read client secret: %w", err)
	}

	return strings.TrimSpace(string(secretBytes)), nil
}
