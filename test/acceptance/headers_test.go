package acceptance_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomHeaders(t *testing.T) {
	teardown := RunWebsiteProcess(t, *websiteBinary, []ListenSpec{httpListener}, "",
		"-header", "X-Powered-By: caish-website;;X-Another-Header: true")
	defer teardown()

	rsp, err := GetPageFromListener(t, httpListener, "/")
	require.NoError(t, err)
	defer rsp.Body.Close()

	require.Equal(t, http.StatusOK, rsp.StatusCode)
	require.Equal(t, "caish-website", rsp.Header.Get("X-Powered-By"))
	require.Equal(t, "true", rsp.Header.Get("X-Another-Header"))
}

func TestCrossOriginRequestsAreAllowedByDefault(t *testing.T) {
	teardown := RunWebsiteProcess(t, *websiteBinary, []ListenSpec{httpListener}, "")
	defer teardown()

	req, err := http.NewRequest("GET", httpListener.URL("/"), nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")

	rsp, err := DoWebsiteRequest(t, req)
	require.NoError(t, err)
	defer rsp.Body.Close()

	require.Equal(t, http.StatusOK, rsp.StatusCode)
	require.Equal(t, "*", rsp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCrossOriginRequestsCanBeDisabled(t *testing.T) {
	teardown := RunWebsiteProcess(t, *websiteBinary, []ListenSpec{httpListener}, "",
		"-disable-cross-origin-requests")
	defer teardown()

	req, err := http.NewRequest("GET", httpListener.URL("/"), nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")

	rsp, err := DoWebsiteRequest(t, req)
	require.NoError(t, err)
	defer rsp.Body.Close()

	require.Equal(t, http.StatusOK, rsp.StatusCode)
	require.Empty(t, rsp.Header.Get("Access-Control-Allow-Origin"))
}
