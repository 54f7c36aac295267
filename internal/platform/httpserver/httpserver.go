// Package httpserver builds the portal's HTTP server. Timeouts are sized for
// a form-submission workload that occasionally ships a full-dataset export.
package httpserver

import (
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	// Exports render the whole workbook in memory before the first byte goes
	// out, so writes get the most generous budget.
	writeTimeout = 30 * time.Second
	idleTimeout  = 2 * time.Minute
)

// New builds the server with the portal's timeout profile applied.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
