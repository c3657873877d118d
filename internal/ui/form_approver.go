package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/vvka-141/synclean/pkg/synclean"
)

// FormApprover implements the Approver interface with a huh confirm form.
// Use it only when stdin is a terminal.
type FormApprover struct {
	partition string
	confirmFn func(ctx context.Context, title string) (bool, error)
}

// NewFormApprover creates a new FormApprover.
func NewFormApprover(partition string) synclean.Approver {
	return &FormApprover{
		partition: partition,
		confirmFn: runConfirmForm,
	}
}

// RequestApproval shows the confirm form. Aborting the form (Esc, Ctrl+C)
// counts as declining.
func (a *FormApprover) RequestApproval(ctx context.Context, root string) (bool, error) {
	title := fmt.Sprintf("Folder %s is not on the %s partition, continue?", root, a.partition)

	confirmed, err := a.confirmFn(ctx, title)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation form failed: %w", err)
	}
	return confirmed, nil
}

func runConfirmForm(ctx context.Context, title string) (bool, error) {
	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description("Names are rewritten in place; the list of renames goes to the log file.").
				Affirmative("Yes").
				Negative("No").
				Value(&confirm),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return false, err
	}
	return confirm, nil
}

// Verify FormApprover implements the Approver interface at compile time
var _ synclean.Approver = (*FormApprover)(nil)
