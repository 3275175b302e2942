package script

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/dshills/spacedlist/internal/logging"
)

// Result is the outcome of one script run.
type Result struct {
	// ID identifies the run in log lines.
	ID uuid.UUID
	// Exports holds the exported objects sorted by name.
	Exports []Export
	// Output holds the printed lines.
	Output  []string
	Elapsed time.Duration
}

// Runner executes script files, each in a fresh State.
type Runner struct {
	log  *logging.Logger
	opts []Option
}

// NewRunner creates a runner. opts apply to every State it creates.
func NewRunner(log *logging.Logger, opts ...Option) *Runner {
	return &Runner{
		log:  logging.OrNop(log),
		opts: opts,
	}
}

// Run executes the script at path.
func (r *Runner) Run(ctx context.Context, path string) (*Result, error) {
	id := uuid.New()
	log := r.log.WithField("run", id.String())

	opts := append(append([]Option(nil), r.opts...), WithLogger(log))
	st := NewState(opts...)
	defer st.Close()

	start := time.Now()
	log.Debug("running %s", path)
	if err := st.DoFile(ctx, path); err != nil {
		log.Error("script %s failed: %v", path, err)
		return nil, errors.Wrapf(err, "run %s of %s", id, path)
	}

	res := &Result{
		ID:      id,
		Exports: st.Exports(),
		Output:  st.Output(),
		Elapsed: time.Since(start),
	}
	log.Info("ran %s: %d exports in %s", path, len(res.Exports), res.Elapsed)
	return res, nil
}
