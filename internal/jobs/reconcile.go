package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/rentdesk/rentdesk/internal/identity"
)

// OrphanFinder lists principals left inconsistent by interrupted provisioning.
type OrphanFinder interface {
	Orphans(ctx context.Context) ([]identity.OrphanPrincipal, error)
}

// ReconcileJob detects and reports provisioning leftovers. Cleanup stays a
// manual operator action; the sweep only makes the inconsistency visible.
type ReconcileJob struct {
	finder OrphanFinder
	logger *slog.Logger
}

// NewReconcileJob constructs a ReconcileJob.
func NewReconcileJob(finder OrphanFinder, logger *slog.Logger) *ReconcileJob {
	return &ReconcileJob{finder: finder, logger: logger}
}

// Handle processes TaskProvisioningReconcile tasks.
func (j *ReconcileJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload ReconcilePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	orphans, err := j.finder.Orphans(ctx)
	if err != nil {
		return err
	}
	if len(orphans) == 0 {
		j.logger.Info("provisioning reconcile: no orphans")
		return nil
	}

	level := slog.LevelWarn
	if payload.NotifyThreshold > 0 && len(orphans) >= payload.NotifyThreshold {
		level = slog.LevelError
	}
	for _, o := range orphans {
		j.logger.Log(ctx, level, "provisioning orphan",
			slog.Int64("principal_id", o.PrincipalID),
			slog.String("email", o.Email),
			slog.Bool("missing_role", o.MissingRole),
			slog.Bool("missing_link", o.MissingLink),
		)
	}
	return nil
}
