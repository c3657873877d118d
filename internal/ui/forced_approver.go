package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vvka-141/synclean/pkg/synclean"
)

// ForcedApprover implements the Approver interface for --yes. It prints a
// notice, waits briefly so the operator can still press Ctrl+C, and approves.
type ForcedApprover struct {
	verbose bool
	delay   time.Duration
	output  io.Writer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover.
func NewForcedApprover(verbose bool) synclean.Approver {
	return &ForcedApprover{
		verbose: verbose,
		delay:   synclean.DefaultApprovalNoticeDelay,
		output:  os.Stderr,
		sleepFn: time.Sleep,
	}
}

// RequestApproval announces root and approves it unless ctx is cancelled
// during the notice delay.
func (a *ForcedApprover) RequestApproval(ctx context.Context, root string) (bool, error) {
	fmt.Fprintf(a.output, "\nWARNING: %s is outside the expected user folders, sanitizing anyway (--yes).\n", root)

	seconds := int(a.delay.Seconds())
	for i := seconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
			fmt.Fprintf(a.output, "\rStarting in: %d seconds... (Press Ctrl+C to cancel)", i)
			a.sleepFn(1 * time.Second)
		}
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(a.output, "\r✓ Proceeding with %s                              \n", root)
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ synclean.Approver = (*ForcedApprover)(nil)
