package api

import (
	"net/http"

	models "CardPulse/internal/domain/models"
	"CardPulse/internal/service/ratelimit"
	"CardPulse/internal/usecase"
	xhttp "CardPulse/pkg/http"
	xlogger "CardPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	msgInvalidPayload = "Datos inválidos"
	msgNarrativeFail  = "No se pudo conectar con IA."
	msgRateLimited    = "Demasiadas solicitudes, inténtalo más tarde."
)

// AnalyzeEchoHandler serves POST /api/analizar with flat {"analisis"} / {"error"} bodies.
type AnalyzeEchoHandler struct {
	logger *xlogger.Logger
	cards  *usecase.CardService
	rl     *ratelimit.Limiter
}

// NewAnalyzeEchoHandler creates the handler. rl may be nil to disable rate limiting.
func NewAnalyzeEchoHandler(logger *xlogger.Logger, cards *usecase.CardService, rl *ratelimit.Limiter) *AnalyzeEchoHandler {
	return &AnalyzeEchoHandler{logger: logger.Component("api.analyze"), cards: cards, rl: rl}
}

func (h *AnalyzeEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/analizar", h.Analyze)
}

func (h *AnalyzeEchoHandler) Analyze(c echo.Context) error {
	if h.rl != nil && !h.rl.Allow(c.RealIP()) {
		h.logger.Warn("analyze rate limited", xlogger.String("remote", c.RealIP()))
		return xhttp.ErrorResponse(c, http.StatusTooManyRequests, msgRateLimited)
	}

	req := &models.Summary{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.logger.Debug("analyze rejected", xlogger.String("reason", xhttp.FirstMessage(verr)))
		return xhttp.ErrorResponse(c, http.StatusBadRequest, msgInvalidPayload+": "+xhttp.FirstMessage(verr))
	}

	n, err := h.cards.Analyze(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("analyze failed", xlogger.String("card", req.Name), xlogger.Error(err))
		return xhttp.ErrorResponse(c, http.StatusInternalServerError, msgNarrativeFail)
	}
	h.logger.Info("analysis generated",
		xlogger.String("card", req.Name),
		xlogger.String("source", n.Source),
	)
	return c.JSON(http.StatusOK, models.AnalyzeResponse{Analisis: n.Text})
}
