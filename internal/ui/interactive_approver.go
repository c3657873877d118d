package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/synclean/pkg/synclean"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It asks a y/n question for every root that lies
// outside the user partition.
type InteractiveApprover struct {
	partition string
	verbose   bool
	input     io.Reader
	output    io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading from stdin.
func NewInteractiveApprover(partition string, verbose bool) synclean.Approver {
	return &InteractiveApprover{
		partition: partition,
		verbose:   verbose,
		input:     os.Stdin,
		output:    os.Stderr,
	}
}

// RequestApproval asks whether root may be sanitized. Only "y" and "yes"
// (any case) approve.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, root string) (bool, error) {
	fmt.Fprintf(a.output, "\nWARNING: %s is outside the expected user folders.\n", root)
	if a.verbose {
		fmt.Fprintln(a.output, "Reserved sequences such as \"__\" are kept as they are on other volumes.")
	}
	fmt.Fprintf(a.output, "Folder %s is not on the %s partition, continue? [y/n] ", root, a.partition)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || input == "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		switch strings.ToLower(input) {
		case "y", "yes":
			fmt.Fprintln(a.output, "✓ Confirmed.")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Answer '%s' is not yes. Skipping %s.\n", input, root)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ synclean.Approver = (*InteractiveApprover)(nil)
