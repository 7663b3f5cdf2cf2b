// internal/server/server.go
// Package server exposes the mock gateway's rule table over real HTTP so
// native clients can develop against http://localhost with no backend.
package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/inkstone-labs/qtstore/internal/envelope"
	"github.com/inkstone-labs/qtstore/internal/mockapi"
)

// Handler dispatches every API request through the gateway's rule table.
// Unmatched paths answer an envelope 404; handler failures answer 500.
func Handler(gateway *mockapi.Gateway) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable request body")
			return
		}

		env, matched, err := gateway.Dispatch(r.Context(), r.Method, r.URL, body, r.Header)
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Rule handler failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if !matched {
			writeEnvelope(w, http.StatusOK, envelope.Fail(envelope.CodeNotFound, "no such endpoint"))
			return
		}

		status := http.StatusOK
		if env.Code == envelope.CodeTooMany {
			status = http.StatusTooManyRequests
		}
		writeEnvelope(w, status, env)
	})

	return mux
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, envelope.Fail(status, message))
}
