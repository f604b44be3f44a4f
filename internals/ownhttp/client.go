package ownhttp

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// New returns a new http.Client with the AddHeaderTransport (setting the User-Agent header)
func New() *http.Client {
	return &http.Client{Transport: NewAddHeaderTransport(newTimeoutTransport())}
}

// NewThrottled returns a client that sends at most rps requests per second.
// It is used for the loader metadata APIs
func NewThrottled(rps float64) *http.Client {
	limiter := rate.NewLimiter(rate.Limit(rps), 1)
	return &http.Client{
		Transport: NewAddHeaderTransport(NewThrottleTransport(newTimeoutTransport(), limiter)),
	}
}

func newTimeoutTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   20 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
