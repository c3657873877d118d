package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvka-141/synclean/internal/normalize"
	"github.com/vvka-141/synclean/pkg/synclean"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <name>...",
	Short: "Show the sanitized form of names without touching the disk",
	Long: `Normalize prints the name each argument would be renamed to. Collisions
with existing entries are not considered, so a real run may add -CopyN.

Examples:
  synclean normalize "Report: Q1?.txt" "CON"
  synclean normalize --force "café résumé.pdf"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalize,
}

type normalizeFlagValues struct {
	force            bool
	policy           synclean.Policy
	outsidePartition bool
}

var normalizeFlags normalizeFlagValues

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().BoolVarP(&normalizeFlags.force, "force", "f", false,
		"Use the accent-strip policy (same as --policy accent-strip)")
	normalizeCmd.Flags().Var(&normalizeFlags.policy, "policy",
		"Normalization policy: blacklist|accent-strip (default blacklist)")
	normalizeCmd.Flags().BoolVar(&normalizeFlags.outsidePartition, "outside-partition", false,
		"Normalize as for a folder outside the user partition (keeps \"__\")")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	policy := normalizeFlags.policy
	if normalizeFlags.force {
		policy = synclean.PolicyAccentStrip
	}
	n := normalize.New(policy, normalize.DefaultRules())
	out := cmd.OutOrStdout()

	var errs []error
	for _, name := range args {
		res, err := n.Normalize(name, normalizeFlags.outsidePartition)
		if err != nil {
			fmt.Fprintf(out, "%q: %v\n", name, err)
			errs = append(errs, fmt.Errorf("%q: %w", name, err))
			continue
		}
		if res.Name == name {
			fmt.Fprintf(out, "%q unchanged\n", name)
			continue
		}
		fmt.Fprintf(out, "%q -> %q\n", name, res.Name)
		if verbose {
			for _, stage := range res.Stages {
				fmt.Fprintf(out, "  %s\n", stage.Note())
			}
		}
	}
	return errors.Join(errs...)
}

// resetNormalizeFlags restores every normalize flag to its zero value.
func resetNormalizeFlags() {
	normalizeFlags = normalizeFlagValues{}
}
