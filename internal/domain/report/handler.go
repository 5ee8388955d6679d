package report

import (
	"net/http"
	"strconv"
	"strings"
	"time"

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
	api.GET("/dashboard-stats", h.Dashboard)
	api.GET("/patient-records", h.PatientRecords)
	api.GET("/patient-records/export", h.ExportPatientRecords)
	api.GET("/patient-records/export-details", h.ExportPatientDetails)
	api.GET("/demographics-report", h.Demographics)
	api.GET("/demographics-report/export", h.ExportDemographics)
	api.GET("/report", h.VisitorReport)
	api.GET("/export", h.ExportVisitorReport)
	api.GET("/summary-report", h.VillageSummary)
	api.GET("/summary-report/export", h.ExportVillageSummary)
	api.GET("/cumulative-report", h.Cumulative)
	api.GET("/cumulative-report/export", h.ExportCumulative)
}

func serverError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func queryDate(c echo.Context, name string) time.Time {
	if s := c.QueryParam(name); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func queryList(c echo.Context, name string) []string {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (h *Handler) Dashboard(c echo.Context) error {
	stats, err := h.svc.Dashboard(c.Request().Context())
	if err != nil {
		return serverError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func recordFilters(c echo.Context) RecordFilters {
	return RecordFilters{
		SearchTerm: c.QueryParam("searchTerm"),
		Start:      queryDate(c, "startDate"),
		End:        queryDate(c, "endDate"),
	}
}

func (h *Handler) PatientRecords(c echo.Context) error {
	records, err := h.svc.PatientRecords(c.Request().Context(), recordFilters(c))
	if err != nil {
		return serverError(err)
	}
	if records == nil {
		records = []*PatientRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) Demographics(c echo.Context) error {
	data, err := h.svc.Demographics(c.Request().Context())
	if err != nil {
		return serverError(err)
	}
	if data == nil {
		data = []*DemographicsRow{}
	}
	return c.JSON(http.StatusOK, data)
}

func visitFilters(c echo.Context) VisitFilters {
	return VisitFilters{
		Start:    queryDate(c, "startDate"),
		End:      queryDate(c, "endDate"),
		Villages: queryList(c, "villages"),
		Programs: queryList(c, "programs"),
		Castes:   queryList(c, "castes"),
	}
}

func (h *Handler) VisitorReport(c echo.Context) error {
	r, err := h.svc.VisitorReport(c.Request().Context(), visitFilters(c))
	if err != nil {
		return serverError(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) VillageSummary(c echo.Context) error {
	rows, err := h.svc.VillageSummary(c.Request().Context(),
		queryDate(c, "startDate"), queryDate(c, "endDate"))
	if err != nil {
		return serverError(err)
	}
	if rows == nil {
		rows = []*VillageSummaryRow{}
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) Cumulative(c echo.Context) error {
	year := time.Now().Year()
	if s := c.QueryParam("year"); s != "" {
		if y, err := strconv.Atoi(s); err == nil {
			year = y
		}
	}
	data, err := h.svc.Cumulative(c.Request().Context(), year)
	if err != nil {
		return serverError(err)
	}
	return c.JSON(http.StatusOK, data)
}

func (h *Handler) ExportVisitorReport(c echo.Context) error {
	r, err := h.svc.VisitorReport(c.Request().Context(), visitFilters(c))
	if err != nil {
		return serverError(err)
	}
	rows := make([]export.VisitorRow, 0, len(r.Data))
	for _, v := range r.Data {
		rows = append(rows, export.VisitorRow{
			PatientName: v.PatientName,
			Village:     v.VillageName,
			Category:    v.ProgramType,
			Caste:       deref(v.Caste),
			VisitDate:   v.VisitDate.Format("2006-01-02"),
			VisitType:   v.VisitType,
		})
	}
	f, err := export.VisitorReport(rows)
	if err != nil {
		return serverError(err)
	}
	return export.Send(c, f, "visitor_report.xlsx")
}

func (h *Handler) ExportVillageSummary(c echo.Context) error {
	summary, err := h.svc.VillageSummary(c.Request().Context(),
		queryDate(c, "startDate"), queryDate(c, "endDate"))
	if err != nil {
		return serverError(err)
	}
	rows := make([]export.VillageSummaryRow, 0, len(summary))
	for _, s := range summary {
		row := export.VillageSummaryRow{
			Village:        s.VillageName,
			PatientCount:   s.PatientCount,
			MedicinesGiven: s.MedicinesGiven,
		}
		if s.AvgSystolic != nil {
			row.AvgSystolic = *s.AvgSystolic
		}
		if s.AvgDiastolic != nil {
			row.AvgDiastolic = *s.AvgDiastolic
		}
		if s.AvgHeartbeat != nil {
			row.AvgHeartbeat = *s.AvgHeartbeat
		}
		rows = append(rows, row)
	}
	f, err := export.VillageSummary(rows)
	if err != nil {
		return serverError(err)
	}
	return export.Send(c, f, "village_summary_report.xlsx")
}

func (h *Handler) ExportPatientRecords(c echo.Context) error {
	records, err := h.svc.PatientRecords(c.Request().Context(), recordFilters(c))
	if err != nil {
		return serverError(err)
	}
	rows := make([]export.PatientRecordRow, 0, len(records))
	for _, r := range records {
		row := export.PatientRecordRow{
			Name:             r.Name,
			Village:          r.VillageName,
			RegistrationDate: r.RegistrationDate.Format("2006-01-02"),
		}
		if r.LastFollowUp != nil {
			row.LastFollowUp = r.LastFollowUp.Format("2006-01-02")
		}
		rows = append(rows, row)
	}
	f, err := export.PatientRecords(rows)
	if err != nil {
		return serverError(err)
	}
	return export.Send(c, f, "patient_records.xlsx")
}

func (h *Handler) ExportDemographics(c echo.Context) error {
	data, err := h.svc.Demographics(c.Request().Context())
	if err != nil {
		return serverError(err)
	}
	var rows []export.DemographicsRow
	for _, d := range data {
		rows = append(rows,
			export.DemographicsRow{Village: d.VillageName, Caste: "General", Count: d.GeneralCount},
			export.DemographicsRow{Village: d.VillageName, Caste: "SC/ST", Count: d.SCSTCount},
			export.DemographicsRow{Village: d.VillageName, Caste: "Others", Count: d.OthersCount},
		)
	}
	f, err := export.Demographics(rows)
	if err != nil {
		return serverError(err)
	}
	return export.Send(c, f, "demographics_report.xlsx")
}

func (h *Handler) ExportPatientDetails(c echo.Context) error {
	ctx := c.Request().Context()
	patients, err := h.svc.repo.DumpPatients(ctx)
	if err != nil {
		return serverError(err)
	}
	followUps, err := h.svc.repo.DumpFollowUps(ctx)
	if err != nil {
		return serverError(err)
	}
	anc, err := h.svc.repo.DumpANC(ctx)
	if err != nil {
		return serverError(err)
	}
	pnc, err := h.svc.repo.DumpPNC(ctx)
	if err != nil {
		return serverError(err)
	}

	patientSheet := export.PatientSheet{
		Headers: []string{"Patient ID", "Name", "Husband/Father Name", "Age", "Sex",
			"Village", "Program", "Caste", "BPL Status", "Registration Date"},
	}
	for _, p := range patients {
		patientSheet.Rows = append(patientSheet.Rows, []interface{}{
			p.ID.String(), p.Name, deref(p.HusbandFatherName), p.Age, p.Sex,
			p.VillageName, p.ProgramType, deref(p.Caste), deref(p.BPLStatus),
			p.RegistrationDate.Format("2006-01-02"),
		})
	}

	fuSheet := export.PatientSheet{
		Headers: []string{"Patient", "Follow-up Date", "Blood Pressure", "Haemoglobin",
			"Complaint", "Treatment Advised", "Medicine Prescribed", "Notes"},
	}
	for _, fu := range followUps {
		fuSheet.Rows = append(fuSheet.Rows, []interface{}{
			fu.PatientName, fu.FollowUpDate.Format("2006-01-02"),
			deref(fu.BloodPressure), deref(fu.Haemoglobin), deref(fu.ComplaintOf),
			deref(fu.TreatmentAdvised), fu.MedicinePrescribed, deref(fu.FollowUpNotes),
		})
	}

	ancSheet := export.PatientSheet{
		Headers: []string{"Patient", "GPAL", "Albumin", "TT", "FHR",
			"Gestational Age", "FP", "Contact", "Remark"},
	}
	for _, a := range anc {
		ancSheet.Rows = append(ancSheet.Rows, []interface{}{
			a.PatientName, deref(a.GPAL), deref(a.Albumin), deref(a.TT), deref(a.FHR),
			deref(a.GestationalAge), deref(a.FP), deref(a.Contact), deref(a.Remark),
		})
	}

	pncSheet := export.PatientSheet{
		Headers: []string{"Patient", "PNC Duration", "Mother Weight", "Child Weight"},
	}
	for _, n := range pnc {
		pncSheet.Rows = append(pncSheet.Rows, []interface{}{
			n.PatientName, deref(n.PNCDuration), deref(n.MotherWeight), deref(n.ChildWeight),
		})
	}

	f, err := export.PatientDetails(patientSheet, fuSheet, ancSheet, pncSheet)
	if err != nil {
		return serverError(err)
	}
	return export.Send(c, f, "patient_all_details.xlsx")
}

func (h *Handler) ExportCumulative(c echo.Context) error {
	year := time.Now().Year()
	if s := c.QueryParam("year"); s != "" {
		if y, err := strconv.Atoi(s); err == nil {
			year = y
		}
	}
	data, err := h.svc.Cumulative(c.Request().Context(), year)
	if err != nil {
		return serverError(err)
	}

	rows := make([]export.CumulativeRow, 0, len(CumulativeParameters))
	for _, param := range CumulativeParameters {
		counts := data[param]
		row := export.CumulativeRow{Parameter: param, Total: counts["total"]}
		for m := 1; m <= 12; m++ {
			row.Months[m-1] = counts[monthKey(m)]
		}
		rows = append(rows, row)
	}
	f, err := export.CumulativeReport(rows)
	if err != nil {
		return serverError(err)
	}
	return export.Send(c, f, "cumulative_report_"+strconv.Itoa(year)+".xlsx")
}
