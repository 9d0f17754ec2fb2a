package commander

// ExecutionResult tells whether a command was run, not whether it succeeded.
type ExecutionResult int

const (
	// Executed means the command executor was run.
	Executed ExecutionResult = iota
	// NotFound means no command was registered under the name.
	NotFound
)

func (r ExecutionResult) String() string {
	switch r {
	case Executed:
		return "executed"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}
