package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/liigadoku/liigadoku-api/internal/domain/pairing"
	"github.com/liigadoku/liigadoku-api/internal/usecase"
)

func (h *Handler) GetPuzzleOfTheDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPuzzleOfTheDay")
	defer span.End()

	p, err := h.puzzleService.PuzzleOfTheDay(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "puzzle of the day failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, p)
}

func (h *Handler) GetPuzzleByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPuzzleByDate")
	defer span.End()

	date, err := dateFromPath(r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.puzzleService.PuzzleByDate(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "puzzle by date failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, p)
}

func (h *Handler) GetAnswersByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAnswersByDate")
	defer span.End()

	date, err := dateFromPath(r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sets, err := h.answerService.AnswersByDate(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "answers by date failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	answers := make(map[string][]pairing.Answer, len(sets))
	for _, set := range sets {
		answers[set.Key] = set.Players
	}

	writeSuccess(ctx, w, http.StatusOK, answers)
}

func (h *Handler) GetTeamPairPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamPairPlayers")
	defer span.End()

	pairID, err := pairFromPath(r.PathValue("pairID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	first, second := pairing.SplitKey(pairID)
	set, err := h.answerService.AnswersByPair(ctx, first, second)
	if err != nil {
		h.logger.WarnContext(ctx, "answers by pair failed", "team_pair", pairID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, set)
}

func pairFromPath(raw string) (string, error) {
	decoded, err := url.PathUnescape(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: invalid pair id %q", usecase.ErrInvalidInput, raw)
	}
	if decoded == "" || !strings.Contains(decoded, "-") {
		return "", fmt.Errorf("%w: pair id must be two hyphen-joined operands", usecase.ErrInvalidInput)
	}

	return decoded, nil
}
