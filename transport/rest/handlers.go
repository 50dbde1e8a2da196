package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/wordstack-backend/internal/apperror"
	"github.com/rocketscienceinc/wordstack-backend/internal/entity"
	"github.com/rocketscienceinc/wordstack-backend/internal/usecase"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	StartRound(w http.ResponseWriter, r *http.Request)
	GetRound(w http.ResponseWriter, r *http.Request)
	PlaceTile(w http.ResponseWriter, r *http.Request)
	Undo(w http.ResponseWriter, r *http.Request)
	Restart(w http.ResponseWriter, r *http.Request)
	DeleteRound(w http.ResponseWriter, r *http.Request)
}

type roundManager interface {
	StartRound(ctx context.Context) (*entity.Round, error)
	GetRound(ctx context.Context, id string) (*entity.Round, error)
	PlaceTile(ctx context.Context, id string, slot entity.Location) (*usecase.Move, error)
	Undo(ctx context.Context, id string) (*usecase.Move, error)
	Restart(ctx context.Context, id string) (*entity.Round, error)
	DeleteRound(ctx context.Context, id string) error
}

type handlers struct {
	logger       *slog.Logger
	roundManager roundManager
}

func NewHandlers(logger *slog.Logger, roundManager roundManager) Handlers {
	return &handlers{
		logger:       logger.With("component", "handlers"),
		roundManager: roundManager,
	}
}

func (that *handlers) StartRound(w http.ResponseWriter, r *http.Request) {
	round, err := that.roundManager.StartRound(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newRoundView(round))
}

func (that *handlers) GetRound(w http.ResponseWriter, r *http.Request) {
	round, err := that.roundManager.GetRound(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newRoundView(round))
}

func (that *handlers) PlaceTile(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad json"})
		return
	}

	move, err := that.roundManager.PlaceTile(r.Context(), chi.URLParam(r, "id"), req.Slot)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, placeResponse{
		Tile:      newTileView(move.Tile),
		PileEmpty: move.PileEmptyAfter,
		Round:     newRoundView(move.Round),
	})
}

func (that *handlers) Undo(w http.ResponseWriter, r *http.Request) {
	move, err := that.roundManager.Undo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	resp := undoResponse{
		Undone: move.Tile != nil,
		Round:  newRoundView(move.Round),
	}

	if move.Tile != nil {
		tile := newTileView(move.Tile)
		resp.Tile = &tile
	}

	that.writeJSON(w, http.StatusOK, resp)
}

func (that *handlers) Restart(w http.ResponseWriter, r *http.Request) {
	round, err := that.roundManager.Restart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newRoundView(round))
}

func (that *handlers) DeleteRound(w http.ResponseWriter, r *http.Request) {
	if err := that.roundManager.DeleteRound(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: messageOf(err, status)})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperror.ErrRoundNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInsufficientDictionary):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperror.ErrEmptyPile), errors.Is(err, apperror.ErrNotInProgress):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidSlot):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func messageOf(err error, status int) string {
	for _, known := range []error{
		apperror.ErrRoundNotFound,
		apperror.ErrInsufficientDictionary,
		apperror.ErrEmptyPile,
		apperror.ErrNotInProgress,
		apperror.ErrInvalidSlot,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return http.StatusText(status)
}
