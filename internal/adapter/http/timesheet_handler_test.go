package http

import (
	"bytes"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"worktrack-backend/internal/adapter/middleware"
	"worktrack-backend/internal/domain/role"
	"worktrack-backend/internal/domain/team"
	"worktrack-backend/internal/domain/timesheet"
	"worktrack-backend/internal/domain/uow"
	"worktrack-backend/internal/testutil/reviewmock"
	"worktrack-backend/internal/testutil/teammock"
	"worktrack-backend/internal/testutil/timesheetmock"
	"worktrack-backend/internal/testutil/uowmock"
	"worktrack-backend/internal/usecase/bulk"
	"worktrack-backend/internal/usecase/membership"
	"worktrack-backend/internal/usecase/workflow"

	"github.com/labstack/echo/v4"
)

// -------- helpers --------

const (
	testSecret = "handler-secret"
	testIssuer = "worktrack"
)

var (
	employee  = role.Actor{ID: strings.Repeat("1", 32), Role: role.Employee}
	teamLead  = role.Actor{ID: strings.Repeat("2", 32), Role: role.TeamLead}
	outsider  = role.Actor{ID: strings.Repeat("3", 32), Role: role.Employee}
	projectID = strings.Repeat("a", 32)
	monday    = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

type testAPI struct {
	e       *echo.Echo
	mem     *timesheetmock.Memory
	members *teammock.Members
	dropped *teammock.Invalidator
}

func newTestAPI(t *testing.T, seed ...timesheet.Timesheet) *testAPI {
	t.Helper()
	mem := timesheetmock.NewMemory(seed...)
	reviews := &reviewmock.Repo{}
	scopes := &teammock.Source{Scope: team.Scope{employee.ID: {projectID}}}
	wf := workflow.NewUsecase(mem, reviews, uowmock.Passthrough(uow.Repos{Timesheets: mem, Reviews: reviews}), scopes, nil)

	members := &teammock.Members{}
	dropped := &teammock.Invalidator{}

	e := newEchoWithValidator()
	Register(e, Routes{
		Handler:    NewHandler(),
		Timesheets: NewTimesheetHandler(wf),
		Bulk:       NewBulkHandler(wf, bulk.NewCoordinator(wf, 4, nil)),
		Members:    NewMembershipHandler(membership.NewUsecase(members, dropped, nil)),
		Auth:       middleware.Auth(testSecret, testIssuer),
	})
	return &testAPI{e: e, mem: mem, members: members, dropped: dropped}
}

func (a *testAPI) do(t *testing.T, actor *role.Actor, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *stdhttp.Request
	if body != nil {
		req = httptest.NewRequest(method, path, mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if actor != nil {
		tok, err := middleware.IssueToken(*actor, testSecret, testIssuer, time.Hour)
		if err != nil {
			t.Fatalf("IssueToken: %v", err)
		}
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid JSON: %v; raw=%s", err, rec.Body.String())
	}
	return v
}

func fullWeekReq(hours float64) []map[string]any {
	out := make([]map[string]any, 0, 5)
	for i := 0; i < 5; i++ {
		out = append(out, map[string]any{
			"project_id": projectID,
			"date":       monday.AddDate(0, 0, i).Format("2006-01-02"),
			"hours":      hours,
		})
	}
	return out
}

func submittedSheet(id, owner string) timesheet.Timesheet {
	return timesheet.Timesheet{TimesheetID: id, OwnerUserID: owner, WeekStart: monday, Status: timesheet.StatusSubmitted}
}

// -------- tests --------

func TestTimesheetAPI_Lifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, &employee, stdhttp.MethodPost, "/timesheets", map[string]any{
		"week_start": "2026-10-12",
		"entries":    fullWeekReq(9),
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("create => want 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	created := decode[timesheet.Timesheet](t, rec)
	if created.Status != timesheet.StatusDraft || len(created.Entries) != 5 {
		t.Fatalf("unexpected draft: %+v", created)
	}
	base := "/timesheets/" + created.TimesheetID

	rec = api.do(t, &employee, stdhttp.MethodGet, base+"/warnings", nil)
	if rec.Code != stdhttp.StatusOK || !strings.Contains(rec.Body.String(), `"can_submit":true`) {
		t.Fatalf("warnings => %d %s", rec.Code, rec.Body.String())
	}

	if rec = api.do(t, &outsider, stdhttp.MethodPost, base+"/submit", nil); rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("submit by non-owner => want 403, got %d", rec.Code)
	}
	if rec = api.do(t, &employee, stdhttp.MethodPost, base+"/submit", nil); rec.Code != stdhttp.StatusOK {
		t.Fatalf("submit => want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if rec = api.do(t, &employee, stdhttp.MethodPost, base+"/approve", nil); rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("approve by employee => want 403, got %d", rec.Code)
	}

	rec = api.do(t, &teamLead, stdhttp.MethodPost, base+"/approve", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("approve => want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	approved := decode[timesheet.Timesheet](t, rec)
	if approved.Status != timesheet.StatusApproved || approved.ReviewedBy == nil || *approved.ReviewedBy != teamLead.ID {
		t.Fatalf("unexpected approval: %+v", approved)
	}

	if rec = api.do(t, &teamLead, stdhttp.MethodPost, base+"/approve", nil); rec.Code != stdhttp.StatusConflict {
		t.Fatalf("second approve => want 409, got %d", rec.Code)
	}

	rec = api.do(t, &employee, stdhttp.MethodGet, base+"/history", nil)
	hist := decode[struct {
		Items []struct {
			Action string `json:"action"`
		} `json:"items"`
	}](t, rec)
	if len(hist.Items) != 2 || hist.Items[0].Action != "submit" || hist.Items[1].Action != "approve" {
		t.Fatalf("unexpected history: %s", rec.Body.String())
	}
}

func TestTimesheetAPI_CreateValidation(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"tuesday week start", map[string]any{"week_start": "2026-10-13"}, stdhttp.StatusUnprocessableEntity},
		{"bad date format", map[string]any{"week_start": "12/10/2026"}, stdhttp.StatusUnprocessableEntity},
		{"missing week start", map[string]any{}, stdhttp.StatusUnprocessableEntity},
		{"entry outside week", map[string]any{"week_start": "2026-10-12", "entries": []map[string]any{
			{"project_id": projectID, "date": "2026-10-17", "hours": 8},
		}}, stdhttp.StatusUnprocessableEntity},
		{"three decimals", map[string]any{"week_start": "2026-10-12", "entries": []map[string]any{
			{"project_id": projectID, "date": "2026-10-12", "hours": 7.125},
		}}, stdhttp.StatusUnprocessableEntity},
		{"not json", "oops", stdhttp.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if s, ok := tt.body.(string); ok {
				req := httptest.NewRequest(stdhttp.MethodPost, "/timesheets", strings.NewReader(s))
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				tok, _ := middleware.IssueToken(employee, testSecret, testIssuer, time.Hour)
				req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
				rec = httptest.NewRecorder()
				api.e.ServeHTTP(rec, req)
			} else {
				rec = api.do(t, &employee, stdhttp.MethodPost, "/timesheets", tt.body)
			}
			if rec.Code != tt.want {
				t.Fatalf("want %d, got %d body=%s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestTimesheetAPI_SubmitReportsProblems(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, &employee, stdhttp.MethodPost, "/timesheets", map[string]any{
		"week_start": "2026-10-12",
		"entries":    fullWeekReq(9)[1:], // Monday missing
	})
	created := decode[timesheet.Timesheet](t, rec)

	rec = api.do(t, &employee, stdhttp.MethodPost, "/timesheets/"+created.TimesheetID+"/submit", nil)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d", rec.Code)
	}
	body := decode[ErrorResponse](t, rec)
	if len(body.Problems) < 2 || !strings.Contains(strings.Join(body.Problems, "|"), "Monday 2026-10-12: no entries") {
		t.Fatalf("problems not listed: %+v", body)
	}
}

func TestTimesheetAPI_Reject(t *testing.T) {
	id := strings.Repeat("c", 32)
	api := newTestAPI(t, submittedSheet(id, employee.ID))

	rec := api.do(t, &teamLead, stdhttp.MethodPost, "/timesheets/"+id+"/reject", map[string]string{"reason": "too short"})
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("short reason => want 422, got %d", rec.Code)
	}
	rec = api.do(t, &teamLead, stdhttp.MethodPost, "/timesheets/"+id+"/reject", map[string]string{"reason": "needs more detail"})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("reject => want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	got := decode[timesheet.Timesheet](t, rec)
	if got.RejectionReason == nil || *got.RejectionReason != "needs more detail" {
		t.Fatalf("reason not stored: %+v", got)
	}
	if rec = api.do(t, &employee, stdhttp.MethodPost, "/timesheets/"+id+"/reopen", nil); rec.Code != stdhttp.StatusOK {
		t.Fatalf("reopen => want 200, got %d", rec.Code)
	}
}

func TestTimesheetAPI_ErrorMapping(t *testing.T) {
	id := strings.Repeat("c", 32)
	api := newTestAPI(t, submittedSheet(id, employee.ID))

	if rec := api.do(t, nil, stdhttp.MethodGet, "/timesheets/"+id, nil); rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("no token => want 401, got %d", rec.Code)
	}
	if rec := api.do(t, &employee, stdhttp.MethodGet, "/timesheets/not-an-id", nil); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("bad id => want 400, got %d", rec.Code)
	}
	if rec := api.do(t, &employee, stdhttp.MethodGet, "/timesheets/"+strings.Repeat("d", 32), nil); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("missing => want 404, got %d", rec.Code)
	}
	if rec := api.do(t, &outsider, stdhttp.MethodGet, "/timesheets/"+id, nil); rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("outsider => want 403, got %d", rec.Code)
	}
	if rec := api.do(t, &employee, stdhttp.MethodGet, "/timesheets?status=archived", nil); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("bad status filter => want 400, got %d", rec.Code)
	}

	api.mem.Fail = func(op, _ string) error {
		if op == string(timesheet.ActionApprove) {
			return errors.New("dial tcp: connection refused")
		}
		return nil
	}
	rec := api.do(t, &teamLead, stdhttp.MethodPost, "/timesheets/"+id+"/approve", nil)
	if rec.Code != stdhttp.StatusBadGateway {
		t.Fatalf("remote failure => want 502, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("store error leaked to the client: %s", rec.Body.String())
	}
}

func TestTimesheetAPI_ListAndDelete(t *testing.T) {
	mine := strings.Repeat("c", 32)
	theirs := strings.Repeat("e", 32)
	api := newTestAPI(t, submittedSheet(mine, employee.ID), submittedSheet(theirs, outsider.ID))

	type list struct {
		Count int `json:"count"`
	}
	if got := decode[list](t, api.do(t, &employee, stdhttp.MethodGet, "/timesheets", nil)); got.Count != 1 {
		t.Fatalf("employee sees %d, want 1", got.Count)
	}
	if got := decode[list](t, api.do(t, &teamLead, stdhttp.MethodGet, "/timesheets?week_start=2026-10-12", nil)); got.Count != 1 {
		t.Fatalf("lead sees %d, want 1", got.Count)
	}

	if rec := api.do(t, &teamLead, stdhttp.MethodDelete, "/timesheets/"+theirs, nil); rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("lead deleting out of scope => want 403, got %d", rec.Code)
	}
	if rec := api.do(t, &teamLead, stdhttp.MethodDelete, "/timesheets/"+mine, nil); rec.Code != stdhttp.StatusNoContent {
		t.Fatalf("lead deleting in scope => want 204, got %d", rec.Code)
	}
	if rec := api.do(t, &employee, stdhttp.MethodGet, "/timesheets/"+mine, nil); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("deleted => want 404, got %d", rec.Code)
	}
}

func TestTimesheetAPI_ReplaceEntries(t *testing.T) {
	api := newTestAPI(t)
	created := decode[timesheet.Timesheet](t, api.do(t, &employee, stdhttp.MethodPost, "/timesheets", map[string]any{"week_start": "2026-10-12"}))

	rec := api.do(t, &employee, stdhttp.MethodPut, "/timesheets/"+created.TimesheetID+"/entries", map[string]any{"entries": fullWeekReq(8)})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("replace => want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if got := decode[timesheet.Timesheet](t, rec); len(got.Entries) != 5 {
		t.Fatalf("entries not replaced: %+v", got.Entries)
	}
}

func TestBulkAPI(t *testing.T) {
	ids := []string{strings.Repeat("c", 32), strings.Repeat("d", 32), strings.Repeat("e", 32)}
	api := newTestAPI(t, submittedSheet(ids[0], employee.ID), submittedSheet(ids[1], employee.ID))

	rec := api.do(t, &teamLead, stdhttp.MethodPost, "/timesheets/bulk", map[string]any{"timesheet_ids": ids, "action": "approve"})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("bulk => want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	rep := decode[bulk.Report](t, rec)
	if len(rep.Succeeded) != 2 || len(rep.Failed) != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if _, ok := rep.Failed[ids[2]]; !ok {
		t.Fatalf("missing timesheet should fail: %+v", rep.Failed)
	}

	tests := []struct {
		name  string
		actor role.Actor
		body  map[string]any
		want  int
	}{
		{"empty batch", teamLead, map[string]any{"timesheet_ids": []string{}, "action": "approve"}, stdhttp.StatusBadRequest},
		{"short reason", teamLead, map[string]any{"timesheet_ids": ids, "action": "reject", "reason": "nope"}, stdhttp.StatusUnprocessableEntity},
		{"bad action", teamLead, map[string]any{"timesheet_ids": ids, "action": "submit"}, stdhttp.StatusUnprocessableEntity},
		{"bad id", teamLead, map[string]any{"timesheet_ids": []string{"x"}, "action": "approve"}, stdhttp.StatusUnprocessableEntity},
		{"employee", employee, map[string]any{"timesheet_ids": ids, "action": "approve"}, stdhttp.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := tt.actor
			if rec := api.do(t, &actor, stdhttp.MethodPost, "/timesheets/bulk", tt.body); rec.Code != tt.want {
				t.Fatalf("want %d, got %d body=%s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
