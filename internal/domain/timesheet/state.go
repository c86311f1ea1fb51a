package timesheet

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Editable: entries may change only in draft.
func (s Status) Editable() bool { return s == StatusDraft }

type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionReopen  Action = "reopen"
)

type edge struct{ from, to Status }

var transitions = map[Action]edge{
	ActionSubmit:  {StatusDraft, StatusSubmitted},
	ActionApprove: {StatusSubmitted, StatusApproved},
	ActionReject:  {StatusSubmitted, StatusRejected},
	ActionReopen:  {StatusRejected, StatusDraft},
}

// Source returns the only status a fires from.
func (a Action) Source() (Status, bool) {
	e, ok := transitions[a]
	return e.from, ok
}

// Next returns the target of a from s, or ErrInvalidTransition.
func (s Status) Next(a Action) (Status, error) {
	e, ok := transitions[a]
	if !ok || e.from != s {
		return "", Invalid(string(a) + " from " + string(s))
	}
	return e.to, nil
}
