package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// vtnCall is one API request seen by the fake VTN.
type vtnCall struct {
	Method string
	Path   string
	Query  map[string][]string
}

// fakeVTN serves /auth/token and answers every other path with a fixed
// status and body.
type fakeVTN struct {
	mu         sync.Mutex
	calls      []vtnCall
	tokenCalls int
}

func newFakeVTN(t *testing.T, status int, body string) (*fakeVTN, *httptest.Server) {
	t.Helper()

	vtn := &fakeVTN{}
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(writer http.ResponseWriter, request *http.Request) {
		vtn.mu.Lock()
		vtn.tokenCalls++
		vtn.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"access_token": "cli-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		vtn.mu.Lock()
		vtn.calls = append(vtn.calls, vtnCall{
			Method: request.Method,
			Path:   request.URL.EscapedPath(),
			Query:  request.URL.Query(),
		})
		vtn.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return vtn, server
}

func (v *fakeVTN) recorded() []vtnCall {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]vtnCall(nil), v.calls...)
}

func (v *fakeVTN) tokenCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.tokenCalls
}

// useVTN points the global configuration at baseURL for the duration of the test.
func useVTN(t *testing.T, baseURL, output string) {
	t.Helper()

	viper.Set("base_url", baseURL)
	viper.Set("client_id", "cli-client")
	viper.Set("client_secret", "cli-secret")
	viper.Set("output", output)
	t.Cleanup(viper.Reset)
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if args == nil {
		args = []string{}
	}

	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}
