package api

import (
	"net/url"

	models "CardPulse/internal/domain/models"
	"CardPulse/internal/usecase"
	xhttp "CardPulse/pkg/http"
	xlogger "CardPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CardsEchoHandler serves card lookup, search and price endpoints.
type CardsEchoHandler struct {
	logger *xlogger.Logger
	cards  *usecase.CardService
}

func NewCardsEchoHandler(logger *xlogger.Logger, cards *usecase.CardService) *CardsEchoHandler {
	return &CardsEchoHandler{logger: logger.Component("api.cards"), cards: cards}
}

func (h *CardsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/cards", h.SearchFeatured)
	g.GET("/cards/:name", h.Card)
	g.GET("/catalog/search", h.SearchCatalog)
	g.GET("/price", h.Price)
	g.POST("/admin/cache/reset", h.ResetCaches)
}

func (h *CardsEchoHandler) Card(c echo.Context) error {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("malformed card name: %v", err))
	}

	card, err := h.cards.FetchCard(c.Request().Context(), name)
	if err != nil {
		h.logger.Debug("card lookup failed", xlogger.String("card", name), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, card)
}

func (h *CardsEchoHandler) SearchFeatured(c echo.Context) error {
	req := &models.CardSearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.cards.SearchFeatured(c.Request().Context(), req.Q)
	if err != nil {
		h.logger.Error("featured search failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *CardsEchoHandler) SearchCatalog(c echo.Context) error {
	req := &models.CardSearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rows := h.cards.SearchAll(c.Request().Context(), req.Q)
	return xhttp.ListResponse(c, rows, len(rows), false)
}

func (h *CardsEchoHandler) Price(c echo.Context) error {
	req := &models.PriceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.cards.BestPrice(c.Request().Context(), req.Name)
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *CardsEchoHandler) ResetCaches(c echo.Context) error {
	if err := h.cards.ResetCaches(c.Request().Context()); err != nil {
		h.logger.Error("cache reset failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	h.logger.Info("caches reset")
	return xhttp.NoContentResponse(c)
}
