package urilimiter

import (
	"net/http"

	"github.com/y-arjun-y/caish-website/internal/httperrors"
)

// NewMiddleware returns middleware which rejects requests whose URI
// exceeds limit with a 414 page. A limit of 0 disables the check.
func NewMiddleware(handler http.Handler, limit int) http.Handler {
	if limit == 0 {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.RequestURI) > limit {
			httperrors.Serve414(w)

			return
		}

		handler.ServeHTTP(w, r)
	})
}
