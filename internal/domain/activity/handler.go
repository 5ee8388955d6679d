package activity

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akshansh/outreach-clinic/pkg/pagination"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/activity-log", h.ListActivity)
}

func (h *Handler) ListActivity(c echo.Context) error {
	ctx := c.Request().Context()
	p := pagination.FromContext(c)

	entries, err := h.repo.List(ctx, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	total, err := h.repo.Count(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if entries == nil {
		entries = []*Entry{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(entries, total, p.Limit, p.Offset))
}
