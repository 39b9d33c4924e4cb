package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.sessions.Connect(r.Context(), "")
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, snapshot)
}

func (that *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.sessions.GetSnapshot(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) handleSelectCell(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(chi.URLParam(r, "cell"))
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell must be a number"})
		return
	}

	snapshot, err := that.sessions.SelectCell(r.Context(), chi.URLParam(r, "sessionID"), cell)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.sessions.NewRound(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *Server) handleNewMatch(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.sessions.NewMatch(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperror.ErrSessionNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrSessionNotFound.Error()})
		return
	}

	that.logger.Error("request failed", "path", r.URL.Path, "error", err)
	that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
