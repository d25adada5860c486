package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/liigadoku/liigadoku-api/internal/domain/pairing"
	"github.com/liigadoku/liigadoku-api/internal/usecase"
)

type newGameDTO struct {
	Date   string `json:"date"`
	GameID string `json:"gameId"`
}

func (h *Handler) NewGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NewGame")
	defer span.End()

	date, err := dateFromPath(r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.gameService.NewSession(ctx, date)
	if err != nil {
		h.logger.ErrorContext(ctx, "new game failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newGameDTO{
		Date:   session.Date,
		GameID: session.ID,
	})
}

type submitGuessRequest struct {
	Person string `json:"person" validate:"required"`
	GameID string `json:"gameId" validate:"required"`
}

func (h *Handler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitGuess")
	defer span.End()

	date, err := dateFromPath(r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	pairID, err := pairFromPath(r.PathValue("pairID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitGuessRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	first, second := pairing.SplitKey(pairID)
	rec, err := h.gameService.SubmitGuess(ctx, date, req.GameID, first, second, req.Person)
	if err != nil {
		h.logger.WarnContext(ctx, "submit guess failed",
			"date", date,
			"team_pair", pairID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rec)
}

type crowdGuessRequest struct {
	Person    string `json:"person" validate:"required"`
	Name      string `json:"name" validate:"required"`
	IsCorrect *bool  `json:"isCorrect" validate:"required"`
}

func (h *Handler) RecordCrowdGuess(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordCrowdGuess")
	defer span.End()

	date, err := dateFromPath(r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	pairID, err := pairFromPath(r.PathValue("pairID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req crowdGuessRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	first, second := pairing.SplitKey(pairID)
	if err := h.gameService.RecordCrowdGuess(ctx, date, first, second, req.Person, req.Name, *req.IsCorrect); err != nil {
		h.logger.WarnContext(ctx, "record crowd guess failed",
			"date", date,
			"team_pair", pairID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "ok")
}

func (h *Handler) GetGuessesByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGuessesByDate")
	defer span.End()

	date, err := dateFromPath(r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	records, err := h.gameService.GuessesByDate(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "guesses by date failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, records)
}
