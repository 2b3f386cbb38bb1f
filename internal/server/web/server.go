// Package web serves the GraphQL schema over HTTP. It owns the /graphql
// endpoint, the request middleware that turns the Authorization header into
// a request principal, and graceful shutdown.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/graphql-go/graphql"
)

type Server struct {
	address   string
	logger    logging.Logger
	schema    graphql.Schema
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, schema graphql.Schema, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "web_server"),
		schema:    schema,
		jwtSecret: []byte(secretKey),
	}
}

// Handler returns the full HTTP handler: the /graphql endpoint wrapped in
// the auth middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", s.graphqlHandler)
	return s.authMiddleware(mux)
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
