package lab

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
	api.POST("/lab-records", h.CreateLabRecord)
	api.GET("/lab-records", h.ListLabRecords)
	api.GET("/lab-records/export", h.ExportLabRecords)
	api.GET("/lab-records/:id", h.GetLabRecord)
	api.PUT("/lab-records/:id", h.UpdateLabRecord)
	api.DELETE("/lab-records/:id", h.DeleteLabRecord)
	api.GET("/lab-report-count", h.LabReportCount)
	api.GET("/lab-report-count/export", h.ExportLabReportCount)
}

func httpError(err error) *echo.HTTPError {
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// dateRange reads the startDate/endDate query params as YYYY-MM-DD.
func dateRange(c echo.Context) DateRange {
	var r DateRange
	if s := c.QueryParam("startDate"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			r.Start = t
		}
	}
	if s := c.QueryParam("endDate"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			r.End = t
		}
	}
	return r
}

func (h *Handler) CreateLabRecord(c echo.Context) error {
	var t Test
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"id": t.ID})
}

func (h *Handler) ListLabRecords(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context(), dateRange(c))
	if err != nil {
		return httpError(err)
	}
	if items == nil {
		items = []*ListItem{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetLabRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	t, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) UpdateLabRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var t Test
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t.ID = id
	if err := h.svc.Update(c.Request().Context(), &t); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) DeleteLabRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// countReportRow mirrors what the dashboard's tally table expects:
// abnormal/normal are aliases of positive/negative.
type countReportRow struct {
	TestName   string `json:"test_name"`
	TotalTests int    `json:"total_tests"`
	Positive   int    `json:"positive"`
	Negative   int    `json:"negative"`
	Abnormal   int    `json:"abnormal"`
	Normal     int    `json:"normal"`
}

func (h *Handler) LabReportCount(c echo.Context) error {
	counts, err := h.svc.CountByTest(c.Request().Context(), dateRange(c))
	if err != nil {
		return httpError(err)
	}
	out := make([]countReportRow, 0, len(counts))
	for _, r := range counts {
		out = append(out, countReportRow{
			TestName:   r.TestName,
			TotalTests: r.TotalTests,
			Positive:   r.Positive,
			Negative:   r.Negative,
			Abnormal:   r.Positive,
			Normal:     r.Negative,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) ExportLabRecords(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context(), dateRange(c))
	if err != nil {
		return httpError(err)
	}
	rows := make([]export.LabRecordRow, 0, len(items))
	for _, it := range items {
		row := export.LabRecordRow{
			PatientName: it.PatientName,
			TestDate:    it.TestDate.Format("2006-01-02"),
			TestName:    it.TestName,
		}
		if it.ResultPositiveReading != nil {
			row.PositiveReading = *it.ResultPositiveReading
		}
		if it.ResultNegativeReading != nil {
			row.NegativeReading = *it.ResultNegativeReading
		}
		rows = append(rows, row)
	}
	f, err := export.LabRecords(rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return export.Send(c, f, "lab_records.xlsx")
}

func (h *Handler) ExportLabReportCount(c echo.Context) error {
	counts, err := h.svc.CountByTest(c.Request().Context(), dateRange(c))
	if err != nil {
		return httpError(err)
	}
	rows := make([]export.LabCountRow, 0, len(counts))
	for _, r := range counts {
		rows = append(rows, export.LabCountRow{
			TestName: r.TestName,
			Total:    r.TotalTests,
			Positive: r.Positive,
			Negative: r.Negative,
		})
	}
	f, err := export.LabTestCounts(rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return export.Send(c, f, "lab_test_counts.xlsx")
}
