package domain

// Represents the backend liveness value shown to a human.
// A HealthStatus is always one of: the placeholder shown before the
// health request settles, a value reported by the backend, or the
// fixed failure sentinel.
type HealthStatus string

const (
	StatusPlaceholder HealthStatus = "..."
	StatusUnavailable HealthStatus = "unavailable"
	// Used when the backend omits the status field or reports null.
	StatusDefault HealthStatus = "ok"
	// Reported by the backend itself when a dependency check fails.
	StatusDegraded HealthStatus = "degraded"
)

const PageTitle = "FRVN Template"

// ResolveStatus applies the default to a reported status field.
// An empty string is a reported value and is kept as is.
func ResolveStatus(reported *string) HealthStatus {
	if reported == nil {
		return StatusDefault
	}
	return HealthStatus(*reported)
}

// Line formats a status the way the page displays it.
func Line(s HealthStatus) string {
	return "Backend health: " + string(s)
}
