package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/app"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/spin"
)

type Handler struct {
	svc  *app.DuelService
	spin spin.Options
}

func NewHandler(svc *app.DuelService, spinOpts spin.Options) *Handler {
	return &Handler{svc: svc, spin: spinOpts}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	g := e.Group("/v1/duels")
	g.POST("", h.CreateDuel)
	g.GET("/:id", h.GetDuel)
	g.DELETE("/:id", h.DeleteDuel)
	g.POST("/:id/preview", h.Preview)
	g.POST("/:id/choose", h.Choose)
	g.POST("/:id/resolve", h.Resolve)
	g.POST("/:id/next-encounter", h.NextEncounter)
	g.GET("/:id/events", h.Watch)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CreateDuel(c echo.Context) error {
	var req CreateDuelRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	view, err := h.svc.NewDuel(c.Request().Context(), app.NewDuelRequest{
		Archetype: req.Archetype,
		Seed:      req.Seed,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, toDuelResponse(view))
}

func (h *Handler) GetDuel(c echo.Context) error {
	view, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toDuelResponse(view))
}

func (h *Handler) DeleteDuel(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Preview(c echo.Context) error {
	view, preview, err := h.svc.StartPreview(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, PreviewResponse{PreviewType: string(preview), Duel: toDuelResponse(view)})
}

func (h *Handler) Choose(c echo.Context) error {
	var req ChooseRequest
	if err := c.Bind(&req); err != nil || req.CardID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "card_id is required"})
	}

	view, err := h.svc.ChooseCard(c.Request().Context(), c.Param("id"), req.CardID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toDuelResponse(view))
}

func (h *Handler) Resolve(c echo.Context) error {
	view, out, err := h.svc.ResolveRound(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, ResolveResponse{
		Outcome: out,
		Spin:    toSpinResponse(spin.Plan(out, h.spin)),
		Duel:    toDuelResponse(view),
	})
}

func (h *Handler) NextEncounter(c echo.Context) error {
	var req NextEncounterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	view, err := h.svc.NextEncounter(c.Request().Context(), c.Param("id"), req.Archetype)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toDuelResponse(view))
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrDuelNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrMissingCard):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnknownArchetype):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, app.ErrCapacity):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
