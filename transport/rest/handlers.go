package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/battleship-backend/internal/repository"
	"github.com/rocketscienceinc/battleship-backend/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

// handleGetMatch returns what anyone may know about a live match: no unhit ship is revealed.
func (that *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.Get(chi.URLParam(r, "id"))
	if errors.Is(err, usecase.ErrSessionNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	if err != nil {
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get match"})
		return
	}

	that.writeJSON(w, http.StatusOK, session.Summary())
}

func (that *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleGetResult")

	result, err := that.results.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrResultNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	if err != nil {
		log.Error("failed to get result", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get result"})
		return
	}

	that.writeJSON(w, http.StatusOK, result)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
