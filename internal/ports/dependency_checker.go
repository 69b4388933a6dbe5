package ports

import "context"

// Port: a single backend dependency whose reachability feeds the health report.
type DependencyChecker interface {
	Name() string
	// Return nil when the dependency is usable.
	Check(ctx context.Context) error
}
