package synclean

import "context"

// Approver asks the operator whether a root outside the expected user
// partition may be sanitized.
//
// Implementations:
//   - InteractiveApprover: reads a y/n answer from the terminal
//   - FormApprover: renders a confirm form on a TTY
//   - ForcedApprover: approves without asking (--yes)
type Approver interface {
	// RequestApproval prompts for confirmation before mutating root.
	//
	// Returns:
	//   - bool: true if approved, false if declined
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, root string) (bool, error)
}
