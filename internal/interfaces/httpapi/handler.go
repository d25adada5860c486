package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/liigadoku/liigadoku-api/internal/domain/puzzle"
	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
	"github.com/liigadoku/liigadoku-api/internal/usecase"
)

type Handler struct {
	puzzleService *usecase.PuzzleService
	answerService *usecase.AnswerService
	playerService *usecase.PlayerService
	gameService   *usecase.GameService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	puzzleService *usecase.PuzzleService,
	answerService *usecase.AnswerService,
	playerService *usecase.PlayerService,
	gameService *usecase.GameService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		puzzleService: puzzleService,
		answerService: answerService,
		playerService: playerService,
		gameService:   gameService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// dateFromPath normalizes a dd-mm-yyyy path segment to the dd.mm.yyyy key
// format; URLs use hyphens because dots in path segments confuse proxies.
func dateFromPath(raw string) (string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), "-", ".")

	date, err := puzzle.ParseDate(normalized)
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	return date, nil
}
