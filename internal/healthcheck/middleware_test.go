package healthcheck_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/y-arjun-y/caish-website/internal/healthcheck"
)

func TestHealthCheckMiddleware(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{
			name: "Not a status request",
			path: "/fellowship",
			body: "Hello from inner handler",
		},
		{
			name: "Status request",
			path: "/-/status",
			body: "success\n",
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "Hello from inner handler")
	})

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rr := httptest.NewRecorder()

			middleware := healthcheck.NewMiddleware(handler, "/-/status")
			middleware.ServeHTTP(rr, r)

			require.Equal(t, http.StatusOK, rr.Code)
			require.Equal(t, tc.body, rr.Body.String())
		})
	}
}
