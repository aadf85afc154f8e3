// internal/cli/root_test.go
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productID = "0b6a3a6e-9d3e-4c55-8a62-0e5b1a7f2c11"

func newService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"access_token":"tok-A"}`)
	})
	mux.HandleFunc("/products/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id":%q}`, body["id"])
	})
	mux.HandleFunc("/products/"+productID+"/offers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id":"5f0c6a9e-1a2b-4c3d-8e9f-0a1b2c3d4e5f","price":100,"items_in_stock":10}]`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func setEnv(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv("OFFERS_BASE_URL", baseURL)
	t.Setenv("OFFERS_REFRESH_TOKEN", "rt-1")
	t.Setenv("OFFERS_DISABLE_TOKEN_CACHE", "true")
	t.Setenv("OFFERS_LOG_LEVEL", "LogLevelNone")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRegisterCommand(t *testing.T) {
	setEnv(t, newService(t).URL)

	out, err := run(t, "register", "--name", "My Product", "--description", "A great product")

	require.NoError(t, err)
	assert.Contains(t, out, "Registered product: My Product (ID: ")
}

func TestRegisterCommand_RequiresName(t *testing.T) {
	setEnv(t, newService(t).URL)

	_, err := run(t, "register")

	assert.Error(t, err)
}

func TestListCommand(t *testing.T) {
	setEnv(t, newService(t).URL)

	out, err := run(t, "list", productID)

	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 offers")
	assert.Contains(t, out, "5f0c6a9e-1a2b-4c3d-8e9f-0a1b2c3d4e5f")
}

func TestListCommand_JSON(t *testing.T) {
	setEnv(t, newService(t).URL)

	out, err := run(t, "list", productID, "--json")

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"5f0c6a9e-1a2b-4c3d-8e9f-0a1b2c3d4e5f","price":100,"items_in_stock":10}]`, out)
}

func TestTokenCommand(t *testing.T) {
	setEnv(t, newService(t).URL)

	out, err := run(t, "token", "--refresh")

	require.NoError(t, err)
	assert.Contains(t, out, "Access token valid until ")
}

func TestConfigFileFlag(t *testing.T) {
	server := newService(t)
	path := filepath.Join(t.TempDir(), "offers.json")
	config := fmt.Sprintf(`{"BaseURL":%q,"RefreshToken":"rt-1","DisableTokenCache":true,"LogLevel":"LogLevelNone"}`, server.URL)
	require.NoError(t, os.WriteFile(path, []byte(config), 0o600))

	out, err := run(t, "--config", path, "list", productID)

	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 offers")
}

func TestMissingConfiguration(t *testing.T) {
	t.Setenv("OFFERS_BASE_URL", "")
	t.Setenv("OFFERS_REFRESH_TOKEN", "")

	_, err := run(t, "list", productID)

	assert.ErrorContains(t, err, "failed to build client")
}

func TestBuiltinCommandsRunWithoutConfiguration(t *testing.T) {
	t.Setenv("OFFERS_BASE_URL", "")
	t.Setenv("OFFERS_REFRESH_TOKEN", "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "help for a subcommand", args: []string{"help", "register"}, want: "Register a new product"},
		{name: "help for root", args: []string{"help"}, want: "A command line client for the Offers service"},
		{name: "shell completion", args: []string{"completion", "bash"}, want: "bash completion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)

			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}
