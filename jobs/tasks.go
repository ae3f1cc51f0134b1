// Package jobs defines background tasks processed by the Asynq worker.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardWarmup refreshes the cached dashboard aggregates.
	TaskDashboardWarmup = "dashboard:warmup"
)

// DashboardWarmupPayload configures a dashboard warmup run.
type DashboardWarmupPayload struct {
	// Reason is recorded in logs to distinguish scheduled runs from
	// operator-triggered ones.
	Reason string `json:"reason,omitempty"`
}

// NewDashboardWarmupTask constructs an Asynq task for a warmup run.
func NewDashboardWarmupTask(payload DashboardWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmup, data), nil
}
