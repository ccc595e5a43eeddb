package cleanurl

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/y-arjun-y/caish-website/metrics"
)

type middleware struct {
	next     http.Handler
	resolver *Resolver
}

// NewMiddleware returns new clean URL middleware
// which rewrites extensionless GET request paths to the ".html" file of
// the same name when it exists under rootDir, e.g.:
// /fellowship becomes /fellowship.html
// /about/ becomes /about.html
func NewMiddleware(next http.Handler, rootDir string) http.Handler {
	return middleware{next: next, resolver: NewResolver(rootDir)}
}

func (m middleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.rewritePath(r)

	m.next.ServeHTTP(w, r)
}

func (m middleware) rewritePath(r *http.Request) {
	if r.Method != http.MethodGet {
		return
	}

	newPath, rewritten := m.resolver.Resolve(r.URL.Path)
	if !rewritten {
		metrics.RewritesTotal.WithLabelValues("pass").Inc()
		return
	}

	metrics.RewritesTotal.WithLabelValues("rewrite").Inc()

	log.WithFields(log.Fields{
		"old_path": r.URL.Path,
		"new_path": newPath,
	}).Debug("Rewrite clean URL")

	r.URL.Path = newPath
}
