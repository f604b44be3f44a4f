package ownhttp

import (
	"net/http"
)

// Version is reported in the User-Agent. Set by the cmd package
var Version = "dev"

// AddHeaderTransport sets the shard User-Agent on every request that has none
type AddHeaderTransport struct {
	T http.RoundTripper
}

// RoundTrip adds the header and passes the request on
func (adt *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		// RoundTrippers should not modify the request
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent())
	}
	return adt.T.RoundTrip(req)
}

// NewAddHeaderTransport wraps T. nil means http.DefaultTransport
func NewAddHeaderTransport(T http.RoundTripper) *AddHeaderTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &AddHeaderTransport{T}
}

// UserAgent returns "shard/<version>"
func UserAgent() string {
	return "shard/" + Version
}
