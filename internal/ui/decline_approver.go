package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/synclean/pkg/synclean"
)

// DeclineApprover implements the Approver interface for sessions where
// nobody can answer a prompt. Every root outside the partition is skipped;
// pass --yes to sanitize such roots unattended.
type DeclineApprover struct {
	output io.Writer
}

// NewDeclineApprover creates a new DeclineApprover.
func NewDeclineApprover() synclean.Approver {
	return &DeclineApprover{output: os.Stderr}
}

// RequestApproval always declines.
func (a *DeclineApprover) RequestApproval(ctx context.Context, root string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(a.output, "%s is outside the expected user folders and no terminal is attached; skipping (use --yes to sanitize it).\n", root)
	return false, nil
}

// Verify DeclineApprover implements the Approver interface at compile time
var _ synclean.Approver = (*DeclineApprover)(nil)
