/*
Package server implements the application's network transport layer.
It initializes the HTTP server, configures timeouts, and exposes the
advice features, health and metrics over HTTP.
*/
package server

import (
	"net/http"
	"time"

	"github.com/arpitbiyaniazz/ecooracal/internal/advisor"
	"github.com/arpitbiyaniazz/ecooracal/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const defaultCPUSample = time.Second

// Server defines the configuration and dependencies for the HTTP service.
type Server struct {
	// advisor runs the advice features behind the /api routes.
	advisor *advisor.Advisor

	// gatherer is exposed on /metrics.
	gatherer prometheus.Gatherer

	// aiConfigured is reported by /health.
	aiConfigured bool

	// allowOrigins feeds the CORS middleware.
	allowOrigins []string

	// cpuSample is how long /health samples CPU usage.
	cpuSample time.Duration

	startTime time.Time
	log       zerolog.Logger
}

// Deps are the collaborators the server is built from.
type Deps struct {
	Advisor      *advisor.Advisor
	Gatherer     prometheus.Gatherer
	AIConfigured bool
	Logger       zerolog.Logger
}

// New builds the Server without binding a listener.
func New(cfg config.ServerConfig, deps Deps) *Server {
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		advisor:      deps.Advisor,
		gatherer:     gatherer,
		aiConfigured: deps.AIConfigured,
		allowOrigins: cfg.AllowOrigins,
		cpuSample:    defaultCPUSample,
		startTime:    time.Now(),
		log:          deps.Logger,
	}
}

// NewServer returns a configured *http.Server with production network timeouts.
func NewServer(cfg config.ServerConfig, deps Deps) *http.Server {
	app := New(cfg, deps)

	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      app.RegisterRoutes(),
		IdleTimeout:  cfg.IdleTimeout,  // Time to wait for the next request on keep-alive connections.
		ReadTimeout:  cfg.ReadTimeout,  // Maximum duration for reading the entire request.
		WriteTimeout: cfg.WriteTimeout, // Keep above gemini.timeout.
	}
}
