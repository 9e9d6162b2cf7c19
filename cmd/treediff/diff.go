package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/treediff-io/treediff/cmd"
	"github.com/treediff-io/treediff/pkg/configuration"
	"github.com/treediff-io/treediff/pkg/diff"
	"github.com/treediff-io/treediff/pkg/diff/render"
	"github.com/treediff-io/treediff/pkg/filesystem"
	"github.com/treediff-io/treediff/pkg/filtering"
	"github.com/treediff-io/treediff/pkg/snapshot"
)

// loadComparisonSide loads one side of a comparison. If the specified path is
// a snapshot file, it's loaded directly; if it's a directory, a live scan is
// performed against it.
func loadComparisonSide(ctx context.Context, path string, options *snapshot.ScanOptions) (*snapshot.Snapshot, error) {
	// Probe the path.
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("unable to probe %s: %w", path, err)
	}

	// Directories are scanned live.
	if info.IsDir() {
		result, err := snapshot.New(path, nil)
		if err != nil {
			return nil, err
		}
		result.Nodes, err = snapshot.Scan(ctx, path, options)
		if err != nil {
			return nil, fmt.Errorf("unable to scan %s: %w", path, err)
		}
		return result, nil
	}

	// Anything else must be a persisted snapshot.
	result, err := snapshot.Load(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load snapshot %s: %w", path, err)
	}
	return result, nil
}

// diffMain is the entry point for the diff command.
func diffMain(_ *cobra.Command, arguments []string) error {
	// Validate arguments. The first argument is the previous side (a
	// snapshot file or directory) and the optional second argument is the
	// current side (defaulting to the previous side's recorded root).
	if len(arguments) < 1 || len(arguments) > 2 {
		return errors.New("expected a snapshot path and an optional comparison target")
	}

	// Load the configuration file.
	config, err := configuration.Load(rootConfiguration.configurationFile)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}

	// Compute diff options from the configuration file with command line
	// overrides applied.
	options := config.Diff
	if diffConfiguration.showUnchanged {
		options.ShowUnchanged = true
	}
	if diffConfiguration.ignoreMoves {
		options.IgnoreMoves = true
		if diffConfiguration.moveThreshold >= 0 {
			cmd.Warning("move threshold has no effect when moves are ignored")
		}
	}
	if diffConfiguration.moveThreshold >= 0 {
		options.MoveThreshold = diffConfiguration.moveThreshold
	}
	if diffConfiguration.maxDepth != 0 {
		options.MaxDepth = diffConfiguration.maxDepth
	}
	if err := options.EnsureValid(); err != nil {
		return fmt.Errorf("invalid diff options: %w", err)
	}

	// Build the filter used for any live scans.
	filter, err := filtering.New(config.Filter.Include, config.Filter.Exclude)
	if err != nil {
		return fmt.Errorf("invalid filter pattern: %w", err)
	}

	// Set up a context that's cancelled on termination signals.
	ctx, cancel := signal.NotifyContext(context.Background(), cmd.TerminationSignals...)
	defer cancel()

	// Set up scan options for any live side.
	scanOptions := &snapshot.ScanOptions{
		MaxDepth:   options.MaxDepth,
		CountLines: config.Scan.CountLines,
		CountWords: config.Scan.CountWords,
		Filter:     filter,
		Logger:     rootLogger.Sublogger("scan"),
	}

	// Load the previous side.
	previous, err := loadComparisonSide(ctx, arguments[0], scanOptions)
	if err != nil {
		return err
	}

	// Determine and load the current side. When no explicit target is given,
	// rescan the previous snapshot's recorded root.
	target := previous.Root
	if len(arguments) == 2 {
		target = arguments[1]
	}
	current, err := loadComparisonSide(ctx, target, scanOptions)
	if err != nil {
		return err
	}

	// Assemble metadata. The current side's root anchors path normalization.
	metadata := diff.NewMetadata(arguments[0], current.Root, previous.Filters, &options)
	if !previous.GeneratedAt.IsZero() {
		snapshotDate := previous.GeneratedAt
		metadata.SnapshotDate = &snapshotDate
	}

	// Perform the comparison.
	result := diff.NewEngine(&options).Compare(previous.Nodes, current.Nodes, metadata)

	// Determine whether or not to colorize. Color only applies to text
	// output written to a terminal.
	colorize := !diffConfiguration.noColor &&
		diffConfiguration.output == "" &&
		render.ShouldColorize(os.Stdout)

	// Render.
	renderer, err := render.NewRenderer(diffConfiguration.format, colorize)
	if err != nil {
		return err
	}
	rendered, err := renderer.Render(result)
	if err != nil {
		return fmt.Errorf("unable to render diff: %w", err)
	}

	// Write the output.
	if diffConfiguration.output != "" {
		if err := filesystem.WriteFileAtomic(diffConfiguration.output, []byte(rendered), 0644); err != nil {
			return fmt.Errorf("unable to write diff: %w", err)
		}
	} else {
		fmt.Print(rendered)
	}

	// Success.
	return nil
}

// diffCommand is the diff command.
var diffCommand = &cobra.Command{
	Use:          "diff <snapshot> [<target>]",
	Short:        "Compare a snapshot against a directory or another snapshot",
	RunE:         diffMain,
	SilenceUsage: true,
}

// diffConfiguration stores configuration for the diff command.
var diffConfiguration struct {
	// help indicates the presence of the -h/--help flag.
	help bool
	// format is the output format.
	format render.Format
	// output is the path to which rendered output is written, if any.
	output string
	// showUnchanged indicates whether or not to display unchanged entries.
	showUnchanged bool
	// ignoreMoves indicates whether or not to disable move detection.
	ignoreMoves bool
	// moveThreshold is the move similarity threshold override. A negative
	// value indicates no override.
	moveThreshold float64
	// maxDepth is the maximum comparison depth override.
	maxDepth uint
	// noColor indicates whether or not to disable colored output.
	noColor bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := diffCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&diffConfiguration.help, "help", "h", false, "Show help information")

	// Wire up diff flags.
	diffConfiguration.format = render.FormatText
	flags.VarP(&diffConfiguration.format, "format", "f", "Set the output format (text|json|markdown|html)")
	flags.StringVarP(&diffConfiguration.output, "output", "o", "", "Write rendered output to the specified path")
	flags.BoolVar(&diffConfiguration.showUnchanged, "show-unchanged", false, "Display unchanged entries")
	flags.BoolVar(&diffConfiguration.ignoreMoves, "ignore-moves", false, "Report moves as additions and removals")
	flags.Float64Var(&diffConfiguration.moveThreshold, "move-threshold", -1, "Set the minimum similarity for move detection (0 to 1)")
	flags.UintVar(&diffConfiguration.maxDepth, "max-depth", 0, "Limit the comparison depth (0 for no limit)")
	flags.BoolVar(&diffConfiguration.noColor, "no-color", false, "Disable colored output")
}
