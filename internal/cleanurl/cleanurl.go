package cleanurl

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Resolver maps extensionless request paths to the ".html" file they
// name on disk.
type Resolver struct {
	rootDir string
}

// NewResolver returns a Resolver looking up candidate files under rootDir.
func NewResolver(rootDir string) *Resolver {
	return &Resolver{rootDir: rootDir}
}

// Resolve applies the clean URL rule to a decoded URL path. It returns
// the rewritten path and true when the path is eligible and its ".html"
// counterpart exists as a regular file under the served root. In every
// other case it returns the path unchanged and false:
//
//   - "/" is left alone,
//   - paths whose final segment contains a "." are left alone,
//   - paths whose candidate file is missing, is a directory or cannot
//     be checked are left alone.
func (rs *Resolver) Resolve(urlPath string) (string, bool) {
	if urlPath == "/" {
		return urlPath, false
	}

	if strings.Contains(finalSegment(urlPath), ".") {
		return urlPath, false
	}

	candidate := strings.TrimRight(urlPath, "/") + ".html"
	if !rs.isRegularFile(candidate) {
		return urlPath, false
	}

	return candidate, true
}

// finalSegment returns the part of the path after the last "/". For
// paths with a trailing slash this is the empty string.
func finalSegment(urlPath string) string {
	return urlPath[strings.LastIndex(urlPath, "/")+1:]
}

// isRegularFile reports whether urlPath names a regular file under the
// served root. The path is rooted and cleaned so ".." segments can not
// escape the root. Lookup errors count as "no": the request then
// continues down the handler chain untouched.
func (rs *Resolver) isRegularFile(urlPath string) bool {
	fullPath := filepath.Join(rs.rootDir, filepath.FromSlash(path.Clean("/"+urlPath)))

	fi, err := os.Stat(fullPath)
	if err != nil {
		return false
	}

	return fi.Mode().IsRegular()
}
