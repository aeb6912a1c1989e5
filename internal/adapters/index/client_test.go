package index_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/adapters/index"
	"go.trai.ch/pinset/internal/core/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*index.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := index.NewClientWithClient(srv.URL, t.TempDir(), srv.Client())
	require.NoError(t, err)
	return client, srv
}

func TestClient_Versions(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/requests/json", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"releases": {
				"2.31.0": [],
				"2.32.0": [],
				"2021-04-01": []
			}
		}`))
	})

	versions, err := client.Versions(t.Context(), "Requests")
	require.NoError(t, err)

	// The date-based upload does not parse and is dropped.
	require.Len(t, versions, 2)
	got := []string{versions[0].String(), versions[1].String()}
	assert.ElementsMatch(t, []string{"2.31.0", "2.32.0"}, got)
}

func TestClient_Versions_CacheHit(t *testing.T) {
	calls := 0
	client, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"releases": {"1.0": []}}`))
	})

	_, err := client.Versions(t.Context(), "fasteners")
	require.NoError(t, err)
	_, err = client.Versions(t.Context(), "fasteners")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestClient_Versions_UnknownPackage(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Versions(t.Context(), "no-such-package")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrUnknownPackage.Error())
}

func TestClient_Versions_ServerError(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Versions(t.Context(), "requests")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrIndexUnavailable.Error())
}

func TestClient_Metadata(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/requests/2.31.0/json", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"info": {
				"name": "requests",
				"version": "2.31.0",
				"requires_dist": [
					"charset-normalizer (<4,>=2)",
					"idna (<4,>=2.5)"
				]
			}
		}`))
	})

	meta, err := client.Metadata(t.Context(), "requests", "2.31.0")
	require.NoError(t, err)

	assert.Equal(t, "requests", meta.Name)
	assert.Equal(t, "2.31.0", meta.Version)
	assert.Len(t, meta.RequiresDist, 2)
}

func TestClient_Metadata_CacheHit(t *testing.T) {
	calls := 0
	client, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"info": {"name": "idna", "version": "3.6"}}`))
	})

	_, err := client.Metadata(t.Context(), "idna", "3.6")
	require.NoError(t, err)
	meta, err := client.Metadata(t.Context(), "idna", "3.6")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Empty(t, meta.RequiresDist)
}

func TestClient_Metadata_MalformedResponse(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"info": `))
	})

	_, err := client.Metadata(t.Context(), "requests", "2.31.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrIndexUnavailable.Error())
}
