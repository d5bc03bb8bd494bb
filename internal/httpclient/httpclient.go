package httpclient

import "net/http"

// HTTPClient is the seam the REST services are built on; *http.Client
// satisfies it and tests substitute a mock.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
