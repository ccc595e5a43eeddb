package logging

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetExtraLogFields(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		expectedHost string
	}{
		{
			name:         "plain_host",
			host:         "localhost",
			expectedHost: "localhost",
		},
		{
			name:         "host_with_port",
			host:         "localhost:8000",
			expectedHost: "localhost",
		},
		{
			name:         "mixed_case_host",
			host:         "LocalHost:8000",
			expectedHost: "localhost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest("GET", "/", nil)
			require.NoError(t, err)
			req.Host = tt.host

			got := getExtraLogFields(req)
			require.Equal(t, tt.expectedHost, got["host"])
			require.Contains(t, got, "correlation_id")
		})
	}
}

func TestLogRequest(t *testing.T) {
	req, err := http.NewRequest("GET", "/fellowship", nil)
	require.NoError(t, err)
	req.Host = "localhost:8000"

	entry := LogRequest(req)
	require.Equal(t, "localhost", entry.Data["host"])
	require.Equal(t, "/fellowship", entry.Data["path"])
}
