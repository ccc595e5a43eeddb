package acceptance_test

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"
)

var (
	// TestHTTPClient is used for requests against the server under test.
	TestHTTPClient = &http.Client{
		Transport: &http.Transport{},
	}

	// QuickTimeoutHTTPClient is used to repeatedly check for the server to
	// be up.
	QuickTimeoutHTTPClient = &http.Client{
		Transport: &http.Transport{
			ResponseHeaderTimeout: 100 * time.Millisecond,
		},
	}
)

type tWriter struct {
	t *testing.T
}

func (t *tWriter) Write(b []byte) (int, error) {
	t.t.Log(string(bytes.TrimRight(b, "\r\n")))

	return len(b), nil
}

// LogCaptureBuffer captures the output of the server under test so that
// tests can assert on it.
type LogCaptureBuffer struct {
	b bytes.Buffer
	m sync.Mutex
}

func (b *LogCaptureBuffer) Read(p []byte) (n int, err error) {
	b.m.Lock()
	defer b.m.Unlock()

	return b.b.Read(p)
}
func (b *LogCaptureBuffer) Write(p []byte) (n int, err error) {
	b.m.Lock()
	defer b.m.Unlock()

	return b.b.Write(p)
}
func (b *LogCaptureBuffer) String() string {
	b.m.Lock()
	defer b.m.Unlock()

	return b.b.String()
}
func (b *LogCaptureBuffer) Reset() {
	b.m.Lock()
	defer b.m.Unlock()

	b.b.Reset()
}

// ListenSpec is used to point at one HTTP listener of the caish-website
// server under test.
type ListenSpec struct {
	Host string
	Port string
}

func supportedListeners() []ListenSpec {
	if !nettest.SupportsIPv6() {
		return ipv4Listeners
	}

	return listeners
}

func (l ListenSpec) URL(suffix string) string {
	suffix = strings.TrimPrefix(suffix, "/")

	return fmt.Sprintf("http://%s/%s", l.JoinHostPort(), suffix)
}

// Returns only once this spec points at a working TCP server
func (l ListenSpec) WaitUntilRequestSucceeds(done chan struct{}) error {
	timeout := 5 * time.Second
	for start := time.Now(); time.Since(start) < timeout; {
		select {
		case <-done:
			return fmt.Errorf("server has shut down already")
		default:
		}

		req, err := http.NewRequest("GET", l.URL("/"), nil)
		if err != nil {
			return err
		}

		response, err := QuickTimeoutHTTPClient.Transport.RoundTrip(req)
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		response.Body.Close()

		if code := response.StatusCode; code >= 200 && code < 500 {
			return nil
		}

		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("timed out after %v waiting for listener %v", timeout, l)
}

func (l ListenSpec) JoinHostPort() string {
	return net.JoinHostPort(l.Host, l.Port)
}

// RunWebsiteProcess will start a caish-website process with the specified
// listeners and return a function you can call to shut it down again. Use
// GetPageFromListener to do a HTTP GET against a listener.
func RunWebsiteProcess(t *testing.T, websiteBinary string, listeners []ListenSpec, promPort string, extraArgs ...string) (teardown func()) {
	_, cleanup := runWebsiteProcess(t, true, websiteBinary, listeners, promPort, nil, extraArgs...)
	return cleanup
}

func RunWebsiteProcessWithOutput(t *testing.T, websiteBinary string, listeners []ListenSpec, promPort string, extraArgs ...string) (out *LogCaptureBuffer, teardown func()) {
	return runWebsiteProcess(t, true, websiteBinary, listeners, promPort, nil, extraArgs...)
}

func RunWebsiteProcessWithEnvs(t *testing.T, wait bool, websiteBinary string, listeners []ListenSpec, promPort string, envs []string, extraArgs ...string) (teardown func()) {
	_, cleanup := runWebsiteProcess(t, wait, websiteBinary, listeners, promPort, envs, extraArgs...)
	return cleanup
}

func runWebsiteProcess(t *testing.T, wait bool, websiteBinary string, listeners []ListenSpec, promPort string, extraEnv []string, extraArgs ...string) (*LogCaptureBuffer, func()) {
	t.Helper()

	_, err := os.Stat(websiteBinary)
	require.NoError(t, err)

	logBuf := &LogCaptureBuffer{}
	out := io.MultiWriter(&tWriter{t}, logBuf)

	args := getWebsiteArgs(listeners, promPort, extraArgs)
	cmd := exec.Command(websiteBinary, args...)
	cmd.Env = append(os.Environ(), extraEnv...)
	cmd.Stdout = out
	cmd.Stderr = out
	require.NoError(t, cmd.Start())
	t.Logf("Running %s %v", websiteBinary, args)

	waitCh := make(chan struct{})
	go func() {
		cmd.Wait()
		close(waitCh)
	}()

	cleanup := func() {
		cmd.Process.Signal(os.Interrupt)
		<-waitCh
	}

	if wait {
		for _, spec := range listeners {
			if err := spec.WaitUntilRequestSucceeds(waitCh); err != nil {
				cleanup()
				t.Fatal(err)
			}
		}
	}

	return logBuf, cleanup
}

func getWebsiteArgs(listeners []ListenSpec, promPort string, extraArgs []string) []string {
	args := []string{"-log-verbose=true"}

	for _, spec := range listeners {
		args = append(args, "-listen-http", spec.JoinHostPort())
	}

	if !contains(extraArgs, "-root") {
		args = append(args, "-root", "testdata/site")
	}

	if promPort != "" {
		args = append(args, "-metrics-address", promPort)
	}

	args = append(args, extraArgs...)

	return args
}

func contains(slice []string, s string) bool {
	for _, e := range slice {
		if strings.Contains(e, s) {
			return true
		}
	}
	return false
}

// Does a HTTP GET against the listener specified, constructing the URL from
// the listener and the URL suffix.
func GetPageFromListener(t *testing.T, spec ListenSpec, urlsuffix string) (*http.Response, error) {
	req, err := http.NewRequest("GET", spec.URL(urlsuffix), nil)
	if err != nil {
		return nil, err
	}

	return DoWebsiteRequest(t, req)
}

func HeadPageFromListener(t *testing.T, spec ListenSpec, urlsuffix string) (*http.Response, error) {
	req, err := http.NewRequest("HEAD", spec.URL(urlsuffix), nil)
	if err != nil {
		return nil, err
	}

	return DoWebsiteRequest(t, req)
}

func DoWebsiteRequest(t *testing.T, req *http.Request) (*http.Response, error) {
	t.Logf("curl -X %s %s", req.Method, req.URL)

	return TestHTTPClient.Do(req)
}

// GetRedirectPage does a GET against the listener without following any
// redirect.
func GetRedirectPage(t *testing.T, spec ListenSpec, urlsuffix string) (*http.Response, error) {
	req, err := http.NewRequest("GET", spec.URL(urlsuffix), nil)
	if err != nil {
		return nil, err
	}

	return TestHTTPClient.Transport.RoundTrip(req)
}

func newConfigFile(t *testing.T, configs ...string) string {
	t.Helper()

	f, err := ioutil.TempFile(os.TempDir(), "caish-website-config")
	require.NoError(t, err)
	defer f.Close()

	for _, config := range configs {
		_, err := fmt.Fprintf(f, "%s\n", config)
		require.NoError(t, err)
	}

	return f.Name()
}
