package activity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestListActivityHandler(t *testing.T) {
	repo := &mockRepo{entries: []*Entry{
		{Action: "Medicine Added", Details: "Added new medicine to inventory: ORS"},
		{Action: "Medicine Issued", Details: "Issued 2 of ORS"},
	}}
	h := NewHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/activity-log?limit=1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListActivity(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data    []Entry `json:"data"`
		Total   int     `json:"total"`
		HasMore bool    `json:"has_more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Total != 2 || !resp.HasMore {
		t.Errorf("resp = %+v", resp)
	}
}

func TestListActivityHandlerEmpty(t *testing.T) {
	h := NewHandler(&mockRepo{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/activity-log", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListActivity(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	var resp struct {
		Data []Entry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data == nil {
		t.Error("data should be [] not null")
	}
}
