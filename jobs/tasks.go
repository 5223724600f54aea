package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLowStockScan walks the material catalog flagging low stock.
	TaskLowStockScan = "stock:lowstock_scan"
	// TaskDelinquencyDigest reports members without payment for a month.
	TaskDelinquencyDigest = "dues:delinquency_digest"
)

// LowStockScanPayload configures a low stock scan run.
type LowStockScanPayload struct {
	// IncludeInactive also inspects deactivated materials.
	IncludeInactive bool `json:"include_inactive"`
}

// DelinquencyDigestPayload configures a delinquency digest run.
type DelinquencyDigestPayload struct {
	// ReferenceMonth in YYYY-MM form. Empty means the current month.
	ReferenceMonth string `json:"reference_month"`
}

// NewLowStockScanTask constructs an Asynq task.
func NewLowStockScanTask(payload LowStockScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, data), nil
}

// NewDelinquencyDigestTask constructs an Asynq task.
func NewDelinquencyDigestTask(payload DelinquencyDigestPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDelinquencyDigest, data), nil
}
