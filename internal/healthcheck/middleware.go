package healthcheck

import (
	"net/http"
)

// NewMiddleware short-circuits requests for the configured status path
// with the application status check; everything else falls through.
func NewMiddleware(handler http.Handler, statusPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == statusPath {
			Handler().ServeHTTP(w, r)

			return
		}

		handler.ServeHTTP(w, r)
	})
}
