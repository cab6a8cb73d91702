package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
)

type solverService interface {
	Analyze(ctx context.Context, board entity.Board) (*entity.Analysis, error)
	BestMove(ctx context.Context, board entity.Board) (repository.SolvedPosition, error)
}

type gameUseCase interface {
	NewGame(ctx context.Context, humanMark entity.Player) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, action entity.Action) (*entity.Game, error)
}

type handlers struct {
	logger *slog.Logger
	solver solverService
	games  gameUseCase
}

type bestMoveResponse struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Cell  int `json:"cell"`
	Value int `json:"value"`
}

type newGameRequest struct {
	Mark string `json:"mark"`
}

type turnRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type gameResponse struct {
	*entity.Game
	Turn entity.Player `json:"turn,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

func (that *handlers) analyze(w http.ResponseWriter, r *http.Request) {
	board, err := entity.ParseBoard(chi.URLParam(r, "board"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	analysis, err := that.solver.Analyze(r.Context(), board)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, analysis)
}

func (that *handlers) bestMove(w http.ResponseWriter, r *http.Request) {
	board, err := entity.ParseBoard(chi.URLParam(r, "board"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	solved, err := that.solver.BestMove(r.Context(), board)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, bestMoveResponse{
		Row:   solved.Action.Row,
		Col:   solved.Action.Col,
		Cell:  solved.Action.Index(),
		Value: solved.Value,
	})
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	mark, err := entity.ParseMark(req.Mark)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	game, err := that.games.NewGame(r.Context(), mark)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, gameResponse{Game: game, Turn: game.Turn()})
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: game, Turn: game.Turn()})
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Row == nil || req.Col == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "row and col are required"})
		return
	}

	game, err := that.games.MakeTurn(r.Context(), chi.URLParam(r, "id"), entity.Action{Row: *req.Row, Col: *req.Col})
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: game, Turn: game.Turn()})
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
		that.writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInvalidAction),
		errors.Is(err, apperror.ErrInvalidMark):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidState),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *handlers) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		that.logger.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
