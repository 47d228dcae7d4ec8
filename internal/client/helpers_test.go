package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	internalhttp "github.com/fivetwenty-io/oadr3/internal/http"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

// staticTokenManager hands out a fixed token.
type staticTokenManager struct {
	token string
}

func (m *staticTokenManager) GetToken(ctx context.Context) (string, error) { return m.token, nil }
func (m *staticTokenManager) RefreshToken(ctx context.Context) error      { return nil }
func (m *staticTokenManager) SetToken(token string, expiresAt time.Time)  { m.token = token }

// recordedRequest is what the fake VTN saw.
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   map[string]interface{}
}

// fakeVTN records requests and answers each with a fixed status and body.
type fakeVTN struct {
	mu          sync.Mutex
	requests    []recordedRequest
	status      int
	contentType string
	body        string
}

func newFakeVTN(t *testing.T, status int, body string) (*fakeVTN, *httptest.Server) {
	t.Helper()

	vtn := &fakeVTN{status: status, body: body, contentType: "application/json"}
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		recorded := recordedRequest{
			Method: request.Method,
			Path:   request.URL.EscapedPath(),
			Query:  request.URL.Query(),
		}

		if request.Body != nil {
			_ = json.NewDecoder(request.Body).Decode(&recorded.Body)
		}

		vtn.mu.Lock()
		vtn.requests = append(vtn.requests, recorded)
		vtn.mu.Unlock()

		if vtn.contentType != "" {
			writer.Header().Set("Content-Type", vtn.contentType)
		}

		writer.WriteHeader(vtn.status)
		_, _ = writer.Write([]byte(vtn.body))
	}))
	t.Cleanup(server.Close)

	return vtn, server
}

func (v *fakeVTN) recorded() []recordedRequest {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]recordedRequest(nil), v.requests...)
}

// newTestClient creates a client for baseURL with a static bearer token.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	config, err := oadr3.NewConfig(baseURL, "test-client", "test-secret")
	require.NoError(t, err)

	client, err := NewWithTokenManager(config, &staticTokenManager{token: "test-token"})
	require.NoError(t, err)

	return client
}

func newTestTransport(baseURL string) *internalhttp.Client {
	return internalhttp.NewClient(baseURL, &staticTokenManager{token: "test-token"})
}
