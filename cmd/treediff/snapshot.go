package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/treediff-io/treediff/cmd"
	"github.com/treediff-io/treediff/pkg/configuration"
	"github.com/treediff-io/treediff/pkg/filtering"
	"github.com/treediff-io/treediff/pkg/snapshot"
)

// defaultSnapshotFileName is the output file name used when no explicit
// output path is specified.
const defaultSnapshotFileName = "treediff-snapshot.json"

// snapshotMain is the entry point for the snapshot command.
func snapshotMain(_ *cobra.Command, arguments []string) error {
	// Determine the scan root.
	root := "."
	if len(arguments) == 1 {
		root = arguments[0]
	} else if len(arguments) > 1 {
		return errors.New("too many arguments provided")
	}

	// Load the configuration file.
	config, err := configuration.Load(rootConfiguration.configurationFile)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}

	// Merge filter patterns from the configuration file and the command
	// line, then build the filter.
	includes := append(config.Filter.Include, snapshotConfiguration.include...)
	excludes := append(config.Filter.Exclude, snapshotConfiguration.exclude...)
	filter, err := filtering.New(includes, excludes)
	if err != nil {
		return fmt.Errorf("invalid filter pattern: %w", err)
	}

	// Determine scan depth, with the command line overriding the
	// configuration file.
	maxDepth := config.Scan.MaxDepth
	if snapshotConfiguration.maxDepth != 0 {
		maxDepth = snapshotConfiguration.maxDepth
	}

	// Set up a context that's cancelled on termination signals so that long
	// scans can be interrupted cleanly.
	ctx, cancel := signal.NotifyContext(context.Background(), cmd.TerminationSignals...)
	defer cancel()

	// Create the snapshot shell.
	result, err := snapshot.New(root, filter.Describe())
	if err != nil {
		return err
	}

	// Perform the scan.
	logger := rootLogger.Sublogger("scan")
	result.Nodes, err = snapshot.Scan(ctx, root, &snapshot.ScanOptions{
		MaxDepth:   maxDepth,
		CountLines: snapshotConfiguration.countLines || config.Scan.CountLines,
		CountWords: snapshotConfiguration.countWords || config.Scan.CountWords,
		Filter:     filter,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	// Determine the output path.
	output := snapshotConfiguration.output
	if output == "" {
		output = defaultSnapshotFileName
	}

	// Save the snapshot.
	if err := snapshot.Save(result, output); err != nil {
		return fmt.Errorf("unable to save snapshot: %w", err)
	}

	// Print a capture summary.
	fmt.Printf("Captured %d entries from %s to %s (%s)\n",
		len(result.Nodes), root, output, result.Identifier,
	)

	// Success.
	return nil
}

// snapshotCommand is the snapshot command.
var snapshotCommand = &cobra.Command{
	Use:          "snapshot [<root>]",
	Short:        "Capture a snapshot of a filesystem tree",
	RunE:         snapshotMain,
	SilenceUsage: true,
}

// snapshotConfiguration stores configuration for the snapshot command.
var snapshotConfiguration struct {
	// help indicates the presence of the -h/--help flag.
	help bool
	// output is the snapshot output path.
	output string
	// maxDepth is the maximum scan depth.
	maxDepth uint
	// countLines indicates whether or not to compute line counts.
	countLines bool
	// countWords indicates whether or not to compute word counts.
	countWords bool
	// include are additional inclusion patterns.
	include []string
	// exclude are additional exclusion patterns.
	exclude []string
}

func init() {
	// Grab a handle for the command line flags.
	flags := snapshotCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&snapshotConfiguration.help, "help", "h", false, "Show help information")

	// Wire up snapshot flags.
	flags.StringVarP(&snapshotConfiguration.output, "output", "o", "", "Write the snapshot to the specified path")
	flags.UintVar(&snapshotConfiguration.maxDepth, "max-depth", 0, "Limit the scan depth (0 for no limit)")
	flags.BoolVar(&snapshotConfiguration.countLines, "count-lines", false, "Record line counts for files")
	flags.BoolVar(&snapshotConfiguration.countWords, "count-words", false, "Record word counts for files")
	flags.StringSliceVar(&snapshotConfiguration.include, "include", nil, "Only record paths matching the specified pattern")
	flags.StringSliceVar(&snapshotConfiguration.exclude, "exclude", nil, "Skip paths matching the specified pattern")
}
