package logbook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type mockRepo struct{ entries []*Entry }

func (r *mockRepo) Create(_ context.Context, e *Entry) error {
	e.ID = uuid.New()
	cp := *e
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *mockRepo) List(_ context.Context) ([]*Entry, error) {
	out := append([]*Entry(nil), r.entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate.After(out[j].EntryDate) })
	return out, nil
}

type mockRecorder struct{ actions []string }

func (r *mockRecorder) Record(_ context.Context, action, _ string) {
	r.actions = append(r.actions, action)
}

func TestCreateEntryHandler(t *testing.T) {
	repo := &mockRepo{}
	rec := &mockRecorder{}
	h := NewHandler(repo, rec)

	e := echo.New()
	body := `{"entry_date":"2026-03-01T00:00:00Z","kms_opening":1200.5,"kms_closing":1260,"total_kms":59.5,"villages_visited":"Rampur, Bhimtal"}`
	req := httptest.NewRequest(http.MethodPost, "/api/logbook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	c := e.NewContext(req, w)

	if err := h.CreateEntry(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("stored %d entries, want 1", len(repo.entries))
	}
	if got := repo.entries[0]; got.TotalKms == nil || *got.TotalKms != 59.5 {
		t.Errorf("total kms = %v", got.TotalKms)
	}
	if len(rec.actions) != 1 || rec.actions[0] != "Logbook Entry Added" {
		t.Errorf("recorded actions = %v", rec.actions)
	}
}

func TestCreateEntryRequiresDate(t *testing.T) {
	h := NewHandler(&mockRepo{}, &mockRecorder{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/logbook", strings.NewReader(`{"villages_visited":"Rampur"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.CreateEntry(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("got %v, want 400", err)
	}
}

func TestListEntriesNewestFirst(t *testing.T) {
	repo := &mockRepo{}
	for _, d := range []string{"2026-01-05", "2026-02-20", "2026-01-30"} {
		day, _ := time.Parse("2006-01-02", d)
		repo.Create(context.Background(), &Entry{EntryDate: day})
	}
	h := NewHandler(repo, &mockRecorder{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/logbook", nil)
	w := httptest.NewRecorder()
	c := e.NewContext(req, w)

	if err := h.ListEntries(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	var entries []Entry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].EntryDate.Format("2006-01-02") != "2026-02-20" {
		t.Errorf("first entry = %s, want newest", entries[0].EntryDate)
	}
}
