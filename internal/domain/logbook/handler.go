package logbook

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akshansh/outreach-clinic/internal/platform/export"
)

type ActivityRecorder interface {
	Record(ctx context.Context, action, details string)
}

type Handler struct {
	repo Repository
	rec  ActivityRecorder
}

func NewHandler(repo Repository, rec ActivityRecorder) *Handler {
	return &Handler{repo: repo, rec: rec}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/logbook", h.CreateEntry)
	api.GET("/logbook", h.ListEntries)
	api.GET("/logbook/export", h.ExportEntries)
}

func (h *Handler) CreateEntry(c echo.Context) error {
	var e Entry
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if e.EntryDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "entry_date is required")
	}
	if err := h.repo.Create(c.Request().Context(), &e); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.rec.Record(c.Request().Context(), "Logbook Entry Added",
		fmt.Sprintf("New ambulance logbook entry for date: %s", e.EntryDate.Format("2006-01-02")))
	return c.JSON(http.StatusCreated, map[string]interface{}{"id": e.ID})
}

func (h *Handler) ListEntries(c echo.Context) error {
	entries, err := h.repo.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if entries == nil {
		entries = []*Entry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *Handler) ExportEntries(c echo.Context) error {
	entries, err := h.repo.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	rows := make([]export.LogbookRow, 0, len(entries))
	for _, e := range entries {
		row := export.LogbookRow{EntryDate: e.EntryDate.Format("2006-01-02")}
		if e.TimeOut != nil {
			row.TimeOut = *e.TimeOut
		}
		if e.TimeIn != nil {
			row.TimeIn = *e.TimeIn
		}
		if e.KmsOpening != nil {
			row.OpeningKms = *e.KmsOpening
		}
		if e.KmsClosing != nil {
			row.ClosingKms = *e.KmsClosing
		}
		if e.TotalKms != nil {
			row.TotalKms = *e.TotalKms
		}
		if e.FuelQuantity != nil {
			row.FuelQuantity = *e.FuelQuantity
		}
		if e.VillagesVisited != nil {
			row.VillagesVisited = *e.VillagesVisited
		}
		rows = append(rows, row)
	}
	f, err := export.Logbook(rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return export.Send(c, f, "ambulance_logbook.xlsx")
}
