package domain

// CheckStatus indicates doctor check outcomes.
type CheckStatus string

const (
	CheckOK    CheckStatus = "ok"
	CheckWarn  CheckStatus = "warn"
	CheckError CheckStatus = "error"
)

// DiagnosticCheck captures a single diagnostic result.
type DiagnosticCheck struct {
	Name    string
	Status  CheckStatus
	Details string
}

// DiagnosticReport aggregates checks.
type DiagnosticReport struct {
	Checks []DiagnosticCheck
}

// Failed reports whether any check ended in error.
func (r DiagnosticReport) Failed() bool {
	for _, c := range r.Checks {
		if c.Status == CheckError {
			return true
		}
	}
	return false
}
