package httpserver

import (
	"net/http"

	"bordereau/internal/platform/config"
)

// New builds the HTTP server. WriteTimeout must exceed the router's request
// timeout or timed-out requests lose their error body.
func New(addr string, handler http.Handler, cfg config.HTTPConfig) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}
