package fetch

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOverrideEnv = "ADVUP_TEST_DOWNLOAD_URL"

func TestFetcher_TemplatedURL(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		fmt.Fprint(w, "payload bytes")
	}))
	defer server.Close()

	f := New(server.URL+"/downloads/%s/advinst.msi", testOverrideEnv, t.TempDir(), nil)

	// The raw requested version goes into the URL, not the normalized form.
	payload, err := f.Fetch("2")
	require.NoError(t, err)

	assert.Equal(t, "/downloads/2/advinst.msi", requested)

	data, err := os.ReadFile(payload)
	require.NoError(t, err)
	assert.Equal(t, "payload bytes", string(data))
	assert.Equal(t, ".msi", payload[len(payload)-4:])
}

func TestFetcher_OverrideTakesPrecedence(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		fmt.Fprint(w, "mirror payload")
	}))
	defer server.Close()

	t.Setenv(testOverrideEnv, server.URL+"/mirror/custom.msi")

	// Template points nowhere routable; the override must win regardless of
	// the requested version.
	f := New("http://127.0.0.1:1/downloads/%s/advinst.msi", testOverrideEnv, t.TempDir(), nil)

	payload, err := f.Fetch("19.5")
	require.NoError(t, err)

	assert.Equal(t, "/mirror/custom.msi", requested)

	data, err := os.ReadFile(payload)
	require.NoError(t, err)
	assert.Equal(t, "mirror payload", string(data))
}

func TestFetcher_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := New(server.URL+"/downloads/%s/advinst.msi", testOverrideEnv, t.TempDir(), nil)

	_, err := f.Fetch("99")
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Error(), "404")
}

func TestFetcher_NetworkFailure(t *testing.T) {
	f := New("http://127.0.0.1:1/downloads/%s/advinst.msi", testOverrideEnv, t.TempDir(), nil)

	_, err := f.Fetch("19")
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestPayloadExt(t *testing.T) {
	assert.Equal(t, ".msi", payloadExt("https://example.com/downloads/19/advinst.msi"))
	assert.Equal(t, ".exe", payloadExt("https://example.com/mirror/setup.exe"))
	assert.Equal(t, ".msi", payloadExt("https://example.com/no-extension"))
}
