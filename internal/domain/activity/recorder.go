package activity

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const recordTimeout = 5 * time.Second

// Recorder appends entries to the activity log on a best-effort basis.
// A failed write is logged and dropped; it never reaches the caller, so no
// clinical operation can fail because its audit line did.
type Recorder struct {
	repo   Repository
	logger zerolog.Logger
}

func NewRecorder(repo Repository, logger zerolog.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record writes one log entry. The write gets its own deadline detached from
// the caller's context so a cancelled request can still leave its trace.
func (r *Recorder) Record(ctx context.Context, action, details string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := r.repo.Create(ctx, &Entry{Action: action, Details: details}); err != nil {
		r.logger.Error().Err(err).
			Str("action", action).
			Msg("activity log write failed")
	}
}
