package bulk

import "worktrack-backend/internal/domain/timesheet"

// Batch is one bulk request; only approve and reject are accepted.
type Batch struct {
	TimesheetIDs []string
	Action       timesheet.Action
	Reason       string
}

type ItemResult struct {
	TimesheetID string           `json:"timesheet_id"`
	OK          bool             `json:"ok"`
	Status      timesheet.Status `json:"status,omitempty"`
	Error       string           `json:"error,omitempty"`

	err error
}

// Err is the item's original error, nil on success.
func (r ItemResult) Err() error { return r.err }

// Report lists items in request order (after de-duplication).
type Report struct {
	Action    timesheet.Action  `json:"action"`
	Items     []ItemResult      `json:"items"`
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed"`
}
