package host

import (
	"net"
	"net/http"
	"strings"
)

// FromString tries to split the port off a host string, returning the
// lowercased host, or the initial string when there is no port.
func FromString(s string) string {
	host := strings.ToLower(s)

	if splitHost, _, err := net.SplitHostPort(host); err == nil {
		host = splitHost
	}

	return host
}

// FromRequest is FromString applied to r.Host.
func FromRequest(r *http.Request) string {
	return FromString(r.Host)
}
