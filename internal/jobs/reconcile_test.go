package jobs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/rentdesk/rentdesk/internal/identity"
)

type stubFinder struct {
	orphans []identity.OrphanPrincipal
	err     error
}

func (s stubFinder) Orphans(context.Context) ([]identity.OrphanPrincipal, error) {
	return s.orphans, s.err
}

func TestReconcileLogsEachOrphan(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	job := NewReconcileJob(stubFinder{orphans: []identity.OrphanPrincipal{
		{PrincipalID: 10, Email: "a@test.local", MissingRole: true},
		{PrincipalID: 11, Email: "b@test.local", MissingLink: true},
	}}, logger)

	task, err := NewReconcileTask(ReconcilePayload{NotifyThreshold: 5})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	require.Contains(t, buf.String(), `"principal_id":10`)
	require.Contains(t, buf.String(), `"principal_id":11`)
	require.Contains(t, buf.String(), `"level":"WARN"`)
	require.NotContains(t, buf.String(), `"level":"ERROR"`)
}

func TestReconcileEscalatesAtThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	job := NewReconcileJob(stubFinder{orphans: []identity.OrphanPrincipal{
		{PrincipalID: 10}, {PrincipalID: 11},
	}}, logger)

	task, err := NewReconcileTask(ReconcilePayload{NotifyThreshold: 2})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	require.Contains(t, buf.String(), `"level":"ERROR"`)
}

func TestReconcilePropagatesFinderErrorForRetry(t *testing.T) {
	boom := errors.New("store down")
	job := NewReconcileJob(stubFinder{err: boom}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	task, err := NewReconcileTask(ReconcilePayload{})
	require.NoError(t, err)

	require.ErrorIs(t, job.Handle(context.Background(), task), boom)
}

func TestReconcileSkipsRetryOnMalformedPayload(t *testing.T) {
	job := NewReconcileJob(stubFinder{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	bad := asynq.NewTask(TaskProvisioningReconcile, []byte("{not json"))
	require.ErrorIs(t, job.Handle(context.Background(), bad), asynq.SkipRetry)
}
