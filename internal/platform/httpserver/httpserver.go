package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with the timeouts every listener here shares.
// Requests are tiny GETs, so reads are bounded tightly.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}
}
