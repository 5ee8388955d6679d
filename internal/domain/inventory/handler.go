package inventory

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/akshansh/outreach-clinic/internal/platform/export"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/medicines", h.ListMedicines)
	api.POST("/medicines", h.AddMedicine)
	api.POST("/medicines/:id/issue", h.IssueMedicine)
	api.PUT("/medicines/:id", h.RestockMedicine)
	api.DELETE("/medicines/:id", h.RemoveMedicine)
	api.GET("/medicines/export", h.ExportMedicines)
}

// HTTPError maps the inventory error taxonomy onto HTTP status codes. Other
// domains that surface ledger failures reuse this mapping.
func HTTPError(err error) *echo.HTTPError {
	var nf *NotFoundError
	var is *InsufficientStockError
	var ve *ValidationError
	switch {
	case errors.As(err, &nf):
		return echo.NewHTTPError(http.StatusNotFound, nf.Error())
	case errors.As(err, &is):
		return echo.NewHTTPError(http.StatusConflict, is.Error())
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) ListMedicines(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

type addMedicineRequest struct {
	Name           string     `json:"name"`
	StockCount     int        `json:"stock_count"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

func (h *Handler) AddMedicine(c echo.Context) error {
	var req addMedicineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := h.svc.Add(c.Request().Context(), req.Name, req.StockCount, req.ExpirationDate)
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"id": m.ID})
}

type issueRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) IssueMedicine(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req issueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Issue(c.Request().Context(), id, req.Quantity); err != nil {
		return HTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

type restockRequest struct {
	StockCount int `json:"stock_count"`
}

func (h *Handler) RestockMedicine(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req restockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Restock(c.Request().Context(), id, req.StockCount); err != nil {
		return HTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) RemoveMedicine(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Remove(c.Request().Context(), id); err != nil {
		return HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ExportMedicines(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return HTTPError(err)
	}
	rows := make([]export.MedicineRow, 0, len(items))
	for _, m := range items {
		row := export.MedicineRow{
			ID:        m.ID.String(),
			Name:      m.Name,
			Stock:     m.StockCount,
			Issued:    m.IssuedQuantity,
			Remaining: m.Remaining,
		}
		if m.ExpirationDate != nil {
			row.Expiry = m.ExpirationDate.Format("2006-01-02")
		}
		rows = append(rows, row)
	}
	f, err := export.MedicineInventory(rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return export.Send(c, f, "medicine_inventory.xlsx")
}
