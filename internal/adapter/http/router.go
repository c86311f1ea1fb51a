package http

import "github.com/labstack/echo/v4"

type Routes struct {
	Handler    *Handler
	Timesheets *TimesheetHandler
	Bulk       *BulkHandler
	Members    *MembershipHandler

	// Auth resolves the actor; Idempotency must come after it.
	Auth        echo.MiddlewareFunc
	Idempotency echo.MiddlewareFunc
}

func Register(e *echo.Echo, r Routes) {
	e.GET("/health", r.Handler.Health)

	mw := []echo.MiddlewareFunc{r.Auth}
	if r.Idempotency != nil {
		mw = append(mw, r.Idempotency)
	}

	e.GET("/me/permissions", r.Handler.Permissions, mw...)

	e.PUT("/projects/:project_id/members/:user_id", r.Members.SetMember, mw...)

	t := r.Timesheets
	e.POST("/timesheets", t.Create, mw...)
	e.GET("/timesheets", t.List, mw...)
	e.POST("/timesheets/bulk", r.Bulk.Review, mw...)
	e.GET("/timesheets/:id", t.Get, mw...)
	e.DELETE("/timesheets/:id", t.Delete, mw...)
	e.PUT("/timesheets/:id/entries", t.ReplaceEntries, mw...)
	e.GET("/timesheets/:id/warnings", t.Warnings, mw...)
	e.GET("/timesheets/:id/history", t.History, mw...)
	e.POST("/timesheets/:id/submit", t.Submit, mw...)
	e.POST("/timesheets/:id/approve", t.Approve, mw...)
	e.POST("/timesheets/:id/reject", t.Reject, mw...)
	e.POST("/timesheets/:id/reopen", t.Reopen, mw...)
}
