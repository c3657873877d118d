package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vvka-141/synclean/internal/config"
	"github.com/vvka-141/synclean/internal/files/discovery"
	"github.com/vvka-141/synclean/internal/files/filesystem"
	"github.com/vvka-141/synclean/internal/logging"
	"github.com/vvka-141/synclean/internal/services"
	"github.com/vvka-141/synclean/internal/tui"
	"github.com/vvka-141/synclean/internal/ui"
	"github.com/vvka-141/synclean/pkg/synclean"
)

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize [dir...]",
	Short: "Rename files and folders so the sync client accepts them",
	Long: `Sanitize walks each folder top-down and renames every entry whose name the
sync client would reject. Renamed folders are entered under their new name.

Without folders, synclean searches the home directory for folders whose name
contains the sync pattern (default "onedrive") and sanitizes all of them.

Policies:
  blacklist      replace forbidden characters with "_", keep accented letters (default)
  accent-strip   drop accents and every other non-ASCII character (-f/--force)

Folders outside the user partition (default: the folder holding your home
directory) need confirmation; --yes confirms them unattended. Without a
terminal and without --yes they are skipped.

Configuration precedence: flags > SYNCLEAN_* environment (a .env file is
loaded first) > synclean.yaml > defaults.

Examples:
  # Sanitize every OneDrive folder under $HOME
  synclean sanitize

  # Sanitize one folder, stripping accents
  synclean sanitize ~/OneDrive --force

  # External disk, no prompt, logs next to the project
  synclean sanitize -d /Volumes/USB/share --yes --log-dir ./logs`,
	RunE: runSanitize,
}

type sanitizeFlagValues struct {
	dirs          []string
	force         bool
	yes           bool
	policy        synclean.Policy
	logDir        string
	userPartition string
	syncPattern   string
	configPath    string
}

var sanitizeFlags sanitizeFlagValues

// Verify Policy can be used as a flag at compile time
var _ pflag.Value = (*synclean.Policy)(nil)

func init() {
	rootCmd.AddCommand(sanitizeCmd)

	sanitizeCmd.Flags().StringArrayVarP(&sanitizeFlags.dirs, "dir", "d", nil,
		"Folder to sanitize (can be specified multiple times, adds to positional folders)")
	sanitizeCmd.Flags().BoolVarP(&sanitizeFlags.force, "force", "f", false,
		"Use the accent-strip policy (same as --policy accent-strip)")
	sanitizeCmd.Flags().Var(&sanitizeFlags.policy, "policy",
		"Normalization policy: blacklist|accent-strip\n"+
			"Precedence: --policy > $SYNCLEAN_POLICY > synclean.yaml > blacklist")
	sanitizeCmd.Flags().BoolVarP(&sanitizeFlags.yes, "yes", "y", false,
		"Sanitize folders outside the user partition without asking")
	sanitizeCmd.Flags().StringVar(&sanitizeFlags.logDir, "log-dir", "",
		"Directory for <folder>-rename.log files (default: system temp directory)")
	sanitizeCmd.Flags().StringVar(&sanitizeFlags.userPartition, "user-partition", "",
		"Path prefix of the user partition (default: parent of $HOME, e.g. /Users/)")
	sanitizeCmd.Flags().StringVar(&sanitizeFlags.syncPattern, "sync-pattern", "",
		"Case-insensitive folder name fragment used for discovery (default: onedrive)")
	sanitizeCmd.Flags().StringVar(&sanitizeFlags.configPath, "config", "",
		"Path to a synclean.yaml file (default: ./synclean.yaml when present)")
}

// resetSanitizeFlags restores every sanitize flag to its zero value.
func resetSanitizeFlags() {
	sanitizeFlags = sanitizeFlagValues{}
	sanitizeCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
}

// loadSettings resolves the configuration for cmd from all sources.
func loadSettings(cmd *cobra.Command, home string) (config.Settings, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return config.Settings{}, err
	}

	var fileCfg *config.FileConfig
	var err error
	if sanitizeFlags.configPath != "" {
		fileCfg, err = config.LoadFile(sanitizeFlags.configPath)
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.Settings{}, fmt.Errorf("config file %s not found: %w", sanitizeFlags.configPath, synclean.ErrInvalidConfig)
		}
	} else {
		fileCfg, err = config.Load(".")
		if errors.Is(err, config.ErrConfigNotFound) {
			err = nil
		}
	}
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load %s: %w", synclean.ConfigFileName, err)
	}

	overrides := config.Overrides{
		LogDir:        sanitizeFlags.logDir,
		UserPartition: sanitizeFlags.userPartition,
		SyncPattern:   sanitizeFlags.syncPattern,
	}
	switch {
	case sanitizeFlags.force:
		overrides.Policy = synclean.PolicyAccentStrip.String()
	case cmd.Flags().Changed("policy"):
		overrides.Policy = sanitizeFlags.policy.String()
	}

	return config.Resolve(fileCfg, overrides, os.Getenv, home)
}

// buildRunConfig turns flags, arguments and configuration into a RunConfig.
// Explicit folders are validated; without any, the home directory is searched.
func buildRunConfig(cmd *cobra.Command, args []string, fsProvider filesystem.FileSystemProvider, verbose bool) (synclean.RunConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return synclean.RunConfig{}, fmt.Errorf("cannot determine home directory: %w", err)
	}

	settings, err := loadSettings(cmd, home)
	if err != nil {
		return synclean.RunConfig{}, err
	}

	roots := append(append([]string(nil), args...), sanitizeFlags.dirs...)
	if len(roots) == 0 {
		finder := discovery.NewFinder(fsProvider, settings.SyncPattern, settings.ExcludeDirs)
		roots, err = finder.Find(home)
		if err != nil {
			return synclean.RunConfig{}, err
		}
	} else if err := discovery.ValidateRoots(fsProvider, roots); err != nil {
		return synclean.RunConfig{}, err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Configuration resolved:\n")
		fmt.Fprintf(os.Stderr, "  Policy: %s\n", settings.Policy)
		fmt.Fprintf(os.Stderr, "  Log directory: %s\n", settings.LogDir)
		fmt.Fprintf(os.Stderr, "  User partition: %s\n", settings.UserPartition)
		fmt.Fprintf(os.Stderr, "  Folders: %v\n", roots)
	}

	cfg := synclean.RunConfig{
		Roots:         roots,
		Policy:        settings.Policy,
		UserPartition: settings.UserPartition,
		LogDir:        settings.LogDir,
		Verbose:       verbose,
	}
	return cfg, cfg.Validate()
}

// selectApprover picks how folders outside the user partition get confirmed.
func selectApprover(yes bool, mode tui.Mode, accessible bool, partition string, verbose bool) synclean.Approver {
	switch {
	case yes:
		return ui.NewForcedApprover(verbose)
	case mode == tui.ModeNonInteractive:
		return ui.NewDeclineApprover()
	case accessible:
		return ui.NewInteractiveApprover(partition, verbose)
	default:
		return ui.NewFormApprover(partition)
	}
}

func runSanitize(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	fsProvider := filesystem.NewOSFileSystem()

	cfg, err := buildRunConfig(cmd, args, fsProvider, verbose)
	if err != nil {
		return err
	}

	mode := tui.DetectMode()
	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Session is %s\n", mode)
	}
	approver := selectApprover(sanitizeFlags.yes, mode, os.Getenv("ACCESSIBLE") != "", cfg.UserPartition, verbose)
	logger := logging.NewConsoleLogger(verbose)

	runner := services.NewSanitizeService(
		fsProvider,
		approver,
		logger,
		services.NewReportWriterFactory(fsProvider),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM); the current folder stops
	// between directories and no rename is left half done
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, stopping after the current folder level...")
			cancel()
		case <-ctx.Done():
		}
	}()

	summary, err := runner.Run(ctx, cfg)
	if len(summary.Reports) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderSummary(summary))
	}
	if err != nil {
		return fmt.Errorf("sanitize failed: %w", err)
	}
	return nil
}
