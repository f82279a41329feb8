package nd_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nd "github.com/ndfabric/go-nd"
	"github.com/ndfabric/go-nd/api/manage"
	"github.com/ndfabric/go-nd/credentials"
	"github.com/ndfabric/go-nd/internal/testutil"
)

func decodeJSONBody(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}

// Full flow: resolve credentials from the environment, authenticate,
// and save default switch credentials against a mock controller.
func TestEndToEndSaveDefaultSwitchCredentials(t *testing.T) {
	var savedPayload map[string]any
	server := testutil.NewMockServerMulti(t, map[string]http.HandlerFunc{
		"/login": func(w http.ResponseWriter, r *http.Request) {
			var login map[string]string
			require.NoError(t, decodeJSONBody(r, &login))
			assert.Equal(t, "admin", login["userName"])
			assert.Equal(t, "secret", login["userPasswd"])
			assert.Equal(t, "local", login["domain"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token":"abc"}`))
		},
		"/api/v1/manage/credentials/defaultSwitchCredentials": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
			require.NoError(t, decodeJSONBody(r, &savedPayload))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"message":"saved"}`))
		},
	})
	defer server.Close()

	t.Setenv(credentials.EnvHost, server.URL)
	t.Setenv(credentials.EnvUsername, "admin")
	t.Setenv(credentials.EnvPassword, "secret")
	t.Setenv(credentials.EnvDomain, "")
	t.Setenv(credentials.EnvSwitchUsername, "")
	t.Setenv(credentials.EnvSwitchPassword, "")

	creds, err := credentials.Resolve(credentials.Explicit{})
	require.NoError(t, err)

	client, err := nd.NewWithConfig(creds.ClientConfig())
	require.NoError(t, err)

	ctx := context.Background()
	session, err := client.Login(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", session.Token)

	result, err := manage.New(client, session).SaveDefaultSwitchCredentials(ctx, manage.SwitchCredentials{
		SwitchUsername: "nxadmin",
		SwitchPassword: "nxsecret",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "saved", result.Message)

	assert.Equal(t, "nxadmin", savedPayload["switchUsername"])
	assert.Equal(t, "nxsecret", savedPayload["switchPassword"])
}
