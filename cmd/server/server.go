// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/inkstone-labs/qtstore/internal/config"
	"github.com/inkstone-labs/qtstore/internal/mockapi"
	"github.com/inkstone-labs/qtstore/internal/server"
)

func newServer(cfg *config.Config, gateway *mockapi.Gateway) *http.Server {
	// Setup middleware chain
	handler := server.ChainMiddleware(
		server.Handler(gateway),
		server.WithLogging,
		server.WithRecovery,
		server.WithRequestID,
	)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
