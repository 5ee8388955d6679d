package patient

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients", h.CreatePatient)
	api.GET("/patients/list", h.ListPatientNames)
	api.GET("/patients/:id", h.GetPatient)
	api.PUT("/patients/:id", h.UpdatePatient)
	api.DELETE("/patients/:id", h.DeletePatient)
	api.GET("/patient-details/:id", h.PatientDetails)
	api.GET("/villages", h.ListVillages)
}

type patientRequest struct {
	Name              string      `json:"name"`
	HusbandFatherName *string     `json:"husband_father_name"`
	Age               int         `json:"age"`
	Sex               string      `json:"sex"`
	VillageName       string      `json:"village_name"`
	ProgramType       string      `json:"program_type"`
	Caste             *string     `json:"caste"`
	RegistrationDate  time.Time   `json:"registration_date"`
	BPLStatus         *string     `json:"bpl_status"`
	ANCDetails        *ANCDetails `json:"anc_details"`
	PNCDetails        *PNCDetails `json:"pnc_details"`
}

func (req *patientRequest) toInput() *Input {
	return &Input{
		Patient: Patient{
			Name:              req.Name,
			HusbandFatherName: req.HusbandFatherName,
			Age:               req.Age,
			Sex:               req.Sex,
			VillageName:       req.VillageName,
			ProgramType:       req.ProgramType,
			Caste:             req.Caste,
			RegistrationDate:  req.RegistrationDate,
			BPLStatus:         req.BPLStatus,
		},
		ANCDetails: req.ANCDetails,
		PNCDetails: req.PNCDetails,
	}
}

func httpError(err error) *echo.HTTPError {
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Register(c.Request().Context(), req.toInput())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"id": p.ID, "name": p.Name})
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in := req.toInput()
	in.Patient.ID = id
	if err := h.svc.Update(c.Request().Context(), in); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) PatientDetails(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.Details(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListPatientNames(c echo.Context) error {
	refs, err := h.svc.ListNames(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if refs == nil {
		refs = []*NameRef{}
	}
	return c.JSON(http.StatusOK, refs)
}

func (h *Handler) ListVillages(c echo.Context) error {
	villages, err := h.svc.Villages(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if villages == nil {
		villages = []*Village{}
	}
	return c.JSON(http.StatusOK, villages)
}
