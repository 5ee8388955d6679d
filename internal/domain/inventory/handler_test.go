package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListMedicinesHandler(t *testing.T) {
	svc, _, _ := newTestService(&Medicine{Name: "Paracetamol", StockCount: 10, IssuedQuantity: 8})
	h := NewHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/medicines", "")
	if err := h.ListMedicines(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var items []ListItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].Remaining != 2 {
		t.Errorf("items = %+v", items)
	}
}

func TestAddMedicineHandler(t *testing.T) {
	svc, repo, _ := newTestService()
	h := NewHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/api/medicines", `{"name":"ORS","stock_count":30}`)
	if err := h.AddMedicine(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if repo.get(resp.ID) == nil {
		t.Error("returned id not found in store")
	}
}

func TestAddMedicineHandlerValidation(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/api/medicines", `{"name":"","stock_count":5}`)
	err := h.AddMedicine(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("got %v, want 400", err)
	}
}

func TestIssueMedicineHandlerStatusCodes(t *testing.T) {
	svc, repo, _ := newTestService(&Medicine{Name: "Paracetamol", StockCount: 10, IssuedQuantity: 8})
	h := NewHandler(svc)
	id := repo.order[0]

	tests := []struct {
		name string
		id   string
		body string
		want int
	}{
		{"success", id.String(), `{"quantity":2}`, http.StatusOK},
		{"insufficient stock", id.String(), `{"quantity":5}`, http.StatusConflict},
		{"invalid quantity", id.String(), `{"quantity":0}`, http.StatusBadRequest},
		{"unknown id", uuid.NewString(), `{"quantity":1}`, http.StatusNotFound},
		{"malformed id", "not-a-uuid", `{"quantity":1}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/medicines/"+tt.id+"/issue", tt.body)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			err := h.IssueMedicine(c)
			got := rec.Code
			if he, ok := err.(*echo.HTTPError); ok {
				got = he.Code
			} else if err != nil {
				t.Fatalf("handler: %v", err)
			}
			if got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRemoveMedicineHandler(t *testing.T) {
	svc, repo, _ := newTestService(&Medicine{Name: "ORS", StockCount: 5})
	h := NewHandler(svc)
	id := repo.order[0]

	c, rec := newTestContext(http.MethodDelete, "/api/medicines/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	if err := h.RemoveMedicine(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if repo.get(id) != nil {
		t.Error("medicine still present after delete")
	}
}
