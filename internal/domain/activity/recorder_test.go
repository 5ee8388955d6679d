package activity

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type mockRepo struct {
	mu      sync.Mutex
	entries []*Entry
	fail    error
}

func (r *mockRepo) Create(_ context.Context, e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *mockRepo) List(_ context.Context, limit, offset int) ([]*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offset >= len(r.entries) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.entries) {
		end = len(r.entries)
	}
	return r.entries[offset:end], nil
}

func (r *mockRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries), nil
}

func TestRecorderWrites(t *testing.T) {
	repo := &mockRepo{}
	rec := NewRecorder(repo, zerolog.Nop())

	rec.Record(context.Background(), "Medicine Issued", "Issued 2 of Paracetamol")

	if len(repo.entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(repo.entries))
	}
	if repo.entries[0].Action != "Medicine Issued" {
		t.Errorf("action = %q", repo.entries[0].Action)
	}
}

func TestRecorderSwallowsFailures(t *testing.T) {
	repo := &mockRepo{fail: errors.New("connection refused")}
	rec := NewRecorder(repo, zerolog.Nop())

	// must not panic and must not surface the error anywhere
	rec.Record(context.Background(), "Stock Updated", "details")
}

func TestRecorderSurvivesCancelledContext(t *testing.T) {
	repo := &mockRepo{}
	rec := NewRecorder(repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec.Record(ctx, "Medicine Added", "Added new medicine to inventory: ORS")

	if len(repo.entries) != 1 {
		t.Fatalf("cancelled request lost its log entry")
	}
}
