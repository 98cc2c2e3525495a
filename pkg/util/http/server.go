package httputil

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Server is a wrapper over http.Server that provides an interface to start
// and stop the listening routine.
//
// For correct operation, Server must be created using New.
type Server struct {
	shutdownTimeout time.Duration

	srv *http.Server
}

// Option sets an optional parameter of the Server.
type Option func(*cfg)

type cfg struct {
	shutdownTimeout time.Duration
}

func defaultCfg() *cfg {
	return &cfg{
		shutdownTimeout: 15 * time.Second,
	}
}

// WithShutdownTimeout returns option to set the maximum duration Shutdown
// waits for active connections to finish. Must be positive.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *cfg) {
		c.shutdownTimeout = d
	}
}

// New creates a new Server listening on the given TCP address and serving
// the given handler. Address must not be empty, handler must not be nil.
func New(addr string, h http.Handler, opts ...Option) *Server {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	return &Server{
		shutdownTimeout: c.shutdownTimeout,
		srv: &http.Server{
			Addr:    addr,
			Handler: h,
		},
	}
}

// Serve listens and serves the internal HTTP server. Returns any error
// returned by the internal server except http.ErrServerClosed.
func (x *Server) Serve() error {
	err := x.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// Shutdown gracefully shuts the internal HTTP server down, waiting up to the
// configured timeout for active connections.
func (x *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), x.shutdownTimeout)
	defer cancel()

	return x.srv.Shutdown(ctx)
}
