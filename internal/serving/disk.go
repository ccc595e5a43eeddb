package serving

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/y-arjun-y/caish-website/internal/httperrors"
	"github.com/y-arjun-y/caish-website/metrics"
)

// Disk serves the site root directory from the local filesystem.
type Disk struct {
	rootDir        string
	fileSizeMetric prometheus.Histogram
}

// New returns a Disk serving files beneath rootDir.
func New(rootDir string) *Disk {
	return &Disk{
		rootDir:        rootDir,
		fileSizeMetric: metrics.ServedFileSize,
	}
}

// ServeHTTP serves the requested file. When the file can not be served
// it falls back to the custom 404.html page at the site root, and
// failing that to the generic not found page.
func (d *Disk) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if d.tryFile(w, r) == nil {
		return
	}

	d.serveNotFound(w, r)
}

func (d *Disk) tryFile(w http.ResponseWriter, r *http.Request) error {
	fullPath, err := d.resolvePath(r.URL.Path)

	if locationError, _ := err.(*locationDirectoryError); locationError != nil {
		if endsWithSlash(r.URL.Path) {
			fullPath, err = d.resolvePath(r.URL.Path, "index.html")
		} else {
			redirectPath := "//" + r.Host + "/"
			redirectPath += strings.TrimPrefix(r.URL.Path, "/")

			// Ensure that there's always "/" at end
			redirectPath = strings.TrimSuffix(redirectPath, "/") + "/"

			if q := r.URL.RawQuery; q != "" {
				redirectPath += "?" + q
			}

			http.Redirect(w, r, redirectPath, http.StatusFound)
			return nil
		}
	}

	if err != nil {
		return err
	}

	return d.serveFile(w, r, fullPath)
}

func (d *Disk) serveNotFound(w http.ResponseWriter, r *http.Request) {
	if d.tryNotFound(w, r) == nil {
		return
	}

	// Serve generic not found
	httperrors.Serve404(w)
}

func (d *Disk) tryNotFound(w http.ResponseWriter, r *http.Request) error {
	page404, err := d.resolvePath("404.html")
	if err != nil {
		return err
	}

	return d.serveCustomFile(w, r, http.StatusNotFound, page404)
}

// Resolve the HTTP request to a path on disk. The URL path is rooted and
// cleaned before joining so ".." segments can not escape the root.
func (d *Disk) resolvePath(urlPath string, subPath ...string) (string, error) {
	parts := append([]string{urlPath}, subPath...)
	cleanedPath := path.Clean("/" + strings.Join(parts, "/"))
	fullPath := filepath.Join(d.rootDir, filepath.FromSlash(cleanedPath))

	fi, err := os.Stat(fullPath)
	if err != nil {
		return "", err
	}

	// The requested path is a directory, the caller decides between the
	// index.html inside it and a redirect
	if fi.IsDir() {
		return "", &locationDirectoryError{
			FullPath:     fullPath,
			RelativePath: cleanedPath,
		}
	}

	// The file exists, but is not a supported type to serve. Perhaps a block
	// special device or something else that may be a security risk.
	if !fi.Mode().IsRegular() {
		return "", fmt.Errorf("%s: is not a regular file", fullPath)
	}

	return fullPath, nil
}

func (d *Disk) serveFile(w http.ResponseWriter, r *http.Request, origPath string) error {
	file, err := os.Open(origPath)
	if err != nil {
		return err
	}

	defer file.Close()

	fi, err := file.Stat()
	if err != nil {
		return err
	}

	contentType, err := detectContentType(origPath)
	if err != nil {
		return err
	}

	d.fileSizeMetric.Observe(float64(fi.Size()))

	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, origPath, fi.ModTime(), file)

	return nil
}

func (d *Disk) serveCustomFile(w http.ResponseWriter, r *http.Request, code int, origPath string) error {
	// Open and serve content of file
	file, err := os.Open(origPath)
	if err != nil {
		return err
	}
	defer file.Close()

	fi, err := file.Stat()
	if err != nil {
		return err
	}

	contentType, err := detectContentType(origPath)
	if err != nil {
		return err
	}

	d.fileSizeMetric.Observe(float64(fi.Size()))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(fi.Size(), 10))
	w.WriteHeader(code)

	if r.Method != "HEAD" {
		_, err := io.CopyN(w, file, fi.Size())
		return err
	}

	return nil
}
