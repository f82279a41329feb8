package fabrics_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nd "github.com/ndfabric/go-nd"
	"github.com/ndfabric/go-nd/api/fabrics"
	"github.com/ndfabric/go-nd/internal/testutil"
)

func newClient(t *testing.T, serverURL string) (*nd.Client, *nd.Session) {
	t.Helper()

	client, err := nd.NewWithConfig(&nd.ClientConfig{
		ControllerURL: serverURL,
		Username:      "admin",
		Password:      "secret",
		SendInterval:  5 * time.Millisecond,
	})
	require.NoError(t, err)

	return client, &nd.Session{Token: "test-token", Domain: "local", IssuedAt: time.Now()}
}

func TestGetFabrics(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServer(t, "/api/v1/manage/fabrics", "test-token",
		`{"fabrics": [{"fabricName": "prod"}, {"fabricName": "lab"}]}`, http.StatusOK)
	defer server.Close()

	client, session := newClient(t, server.URL)
	result, err := fabrics.New(client, session).GetFabrics(context.Background(), nd.QueryFilter{})
	require.NoError(t, err)

	assert.True(t, result.Success)
	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.Len(t, data["fabrics"], 2)
}

func TestGetFabricsWithFilter(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/manage/fabrics", r.URL.Path)
		assert.Equal(t, "fabricName:prod", r.URL.Query().Get("filter"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fabrics": []}`))
	})
	defer server.Close()

	client, session := newClient(t, server.URL)
	result, err := fabrics.New(client, session).GetFabrics(context.Background(), nd.QueryFilter{
		Filter: "fabricName:prod",
		Limit:  10,
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestGetFabricDetail(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServer(t, "/api/v1/manage/fabrics/prod", "test-token",
		`{"fabricName": "prod", "asn": "65001"}`, http.StatusOK)
	defer server.Close()

	client, session := newClient(t, server.URL)
	result, err := fabrics.New(client, session).GetFabricDetail(context.Background(), "prod")
	require.NoError(t, err)

	assert.True(t, result.Success)
	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "65001", data["asn"])
}

func TestGetFabricDetailEscapesName(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/manage/fabrics/lab%2Fwest", r.URL.EscapedPath())
		w.WriteHeader(http.StatusOK)
	})
	defer server.Close()

	client, session := newClient(t, server.URL)
	_, err := fabrics.New(client, session).GetFabricDetail(context.Background(), "lab/west")
	require.NoError(t, err)
}

func TestGetFabricDetailRequiresName(t *testing.T) {
	t.Parallel()

	client, session := newClient(t, "https://10.1.1.1")
	_, err := fabrics.New(client, session).GetFabricDetail(context.Background(), "")
	require.Error(t, err)
}

func TestGetFabricDetailNotFound(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServer(t, "/api/v1/manage/fabrics/ghost", "test-token",
		`{"message":"fabric ghost not found"}`, http.StatusNotFound)
	defer server.Close()

	client, session := newClient(t, server.URL)
	result, err := fabrics.New(client, session).GetFabricDetail(context.Background(), "ghost")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "fabric ghost not found", result.Message)
}
