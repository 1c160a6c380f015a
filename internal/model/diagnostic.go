package model

// Advisory kinds. None of them stop a run.
const (
	DiagDuplicateName    = "duplicate_name"
	DiagDuplicateEmail   = "duplicate_email"
	DiagSingleTokenName  = "single_token_name"
	DiagLowercaseName    = "lowercase_name"
	DiagFormOpen         = "form_open"
	DiagFormStateUnknown = "form_state_unknown"
)

type Diagnostic struct {
	Kind    string
	Message string
	Subject string // Name, email or form title the advisory is about
}
