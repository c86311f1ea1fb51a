package bulk

import (
	"context"
	"strings"

	"worktrack-backend/internal/domain/permission"
	"worktrack-backend/internal/domain/timesheet"
	"worktrack-backend/internal/logger"
	"worktrack-backend/internal/usecase/workflow"

	"golang.org/x/sync/errgroup"
)

// Workflow is the per-item operation set; *workflow.Usecase satisfies it.
type Workflow interface {
	Approve(ctx context.Context, rv workflow.Reviewer, timesheetID string) (*timesheet.Timesheet, error)
	Reject(ctx context.Context, rv workflow.Reviewer, timesheetID, reason string) (*timesheet.Timesheet, error)
}

const DefaultWorkers = 8

type Coordinator struct {
	wf      Workflow
	workers int
	log     *logger.Logger
}

func NewCoordinator(wf Workflow, workers int, log *logger.Logger) *Coordinator {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Coordinator{wf: wf, workers: workers, log: log}
}

// dedupe trims ids and keeps the first occurrence of each.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Run applies b to every timesheet on a bounded pool. Errors that concern
// the whole batch are returned before anything is dispatched; per-item
// failures only land in the report and never stop the other items.
func (c *Coordinator) Run(ctx context.Context, rv workflow.Reviewer, b Batch) (*Report, error) {
	if b.Action != timesheet.ActionApprove && b.Action != timesheet.ActionReject {
		return nil, timesheet.Rejected("bulk action", "must be approve or reject, got "+string(b.Action))
	}
	ids := dedupe(b.TimesheetIDs)
	if len(ids) == 0 {
		return nil, timesheet.ErrEmptyBatch
	}
	reason := ""
	if b.Action == timesheet.ActionReject {
		r, err := workflow.ValidateReason(b.Reason)
		if err != nil {
			return nil, err
		}
		reason = r
	}
	if !permission.CanApproveTimesheets(rv.Role) {
		return nil, timesheet.Denied("approve timesheets")
	}

	items := make([]ItemResult, len(ids))
	var g errgroup.Group
	g.SetLimit(c.workers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			items[i] = c.one(ctx, rv, b.Action, id, reason)
			return nil
		})
	}
	_ = g.Wait()

	rep := &Report{Action: b.Action, Items: items, Succeeded: []string{}, Failed: map[string]string{}}
	for _, it := range items {
		if it.OK {
			rep.Succeeded = append(rep.Succeeded, it.TimesheetID)
		} else {
			rep.Failed[it.TimesheetID] = it.Error
		}
	}
	c.log.WithActor(rv.ID, string(rv.Role)).WithFields(map[string]interface{}{
		"action":    string(b.Action),
		"total":     len(items),
		"succeeded": len(rep.Succeeded),
		"failed":    len(rep.Failed),
	}).Audit("bulk review finished")
	return rep, nil
}

func (c *Coordinator) one(ctx context.Context, rv workflow.Reviewer, a timesheet.Action, id, reason string) ItemResult {
	res := ItemResult{TimesheetID: id}
	if err := ctx.Err(); err != nil {
		res.err, res.Error = err, err.Error()
		return res
	}

	var (
		t   *timesheet.Timesheet
		err error
	)
	if a == timesheet.ActionReject {
		t, err = c.wf.Reject(ctx, rv, id, reason)
	} else {
		t, err = c.wf.Approve(ctx, rv, id)
	}
	if err != nil {
		c.log.Warnw("bulk item failed", "timesheet_id", id, "action", string(a), "error", err)
		res.err, res.Error = err, err.Error()
		return res
	}
	res.OK, res.Status = true, t.Status
	return res
}
