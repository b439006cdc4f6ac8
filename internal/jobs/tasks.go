// Package jobs runs background work over Asynq: the provisioning
// reconciliation sweep that surfaces principals left orphaned when a
// provisioning saga could not be compensated.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskProvisioningReconcile sweeps for orphaned principals.
	TaskProvisioningReconcile = "provisioning:reconcile"
)

// ReconcilePayload parameterises a reconciliation sweep.
type ReconcilePayload struct {
	// NotifyThreshold is the orphan count above which the sweep logs at
	// error level instead of warn.
	NotifyThreshold int `json:"notify_threshold"`
}

// NewReconcileTask constructs the reconciliation Asynq task.
func NewReconcileTask(payload ReconcilePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProvisioningReconcile, data), nil
}
