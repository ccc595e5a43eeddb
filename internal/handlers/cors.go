package handlers

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/y-arjun-y/caish-website/internal/config"
)

var (
	corsHandler = cors.New(cors.Options{AllowedMethods: []string{http.MethodGet, http.MethodHead}})
)

// CorsHandler allows cross-origin GET and HEAD requests unless they are
// disabled by configuration.
func CorsHandler(config *config.Config, handler http.Handler) http.Handler {
	if !config.General.DisableCrossOriginRequests {
		handler = corsHandler.Handler(handler)
	}
	return handler
}
