package rejectmethods

import (
	"net/http"

	"github.com/y-arjun-y/caish-website/metrics"
)

var acceptedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodConnect: true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}

// NewMiddleware returns middleware which rejects requests with unknown HTTP methods
func NewMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if acceptedMethods[r.Method] {
			handler.ServeHTTP(w, r)

			return
		}

		metrics.RejectedRequestsCount.Inc()
		http.Error(w, "405 Method Not Allowed", http.StatusMethodNotAllowed)
	})
}
