package httpapi

import (
	"net/http"

	"github.com/liigadoku/liigadoku-api/internal/domain/player"
)

type allPlayersDTO struct {
	Players []player.ShortVersion `json:"players"`
}

func (h *Handler) ListAllPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAllPlayers")
	defer span.End()

	players, err := h.playerService.ListAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, allPlayersDTO{Players: players})
}

func (h *Handler) GetPlayerByPerson(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerByPerson")
	defer span.End()

	person := r.PathValue("person")
	p, err := h.playerService.GetByPerson(ctx, person)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "person", person, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, p)
}
