package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/treediff-io/treediff/cmd"
	"github.com/treediff-io/treediff/pkg/configuration"
	"github.com/treediff-io/treediff/pkg/diff"
	"github.com/treediff-io/treediff/pkg/diff/render"
	"github.com/treediff-io/treediff/pkg/filtering"
	"github.com/treediff-io/treediff/pkg/logging"
	"github.com/treediff-io/treediff/pkg/snapshot"
)

// watchDebounceInterval is the quiescence period applied to filesystem
// events before a rescan is triggered. Editors and build tools tend to
// generate event bursts, so individual events can't drive rescans directly.
const watchDebounceInterval = 500 * time.Millisecond

// watchDirectories registers the specified root and all directories beneath
// it with the watcher. Directories that can't be read are logged and skipped.
func watchDirectories(watcher *fsnotify.Watcher, root string, logger *logging.Logger) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn(fmt.Errorf("unable to watch %s: %w", path, err))
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			logger.Warn(fmt.Errorf("unable to watch %s: %w", path, err))
			return fs.SkipDir
		}
		return nil
	})
}

// watchMain is the entry point for the watch command.
func watchMain(_ *cobra.Command, arguments []string) error {
	// Determine the watch root.
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

	// Build the filter.
	filter, err := filtering.New(config.Filter.Include, config.Filter.Exclude)
	if err != nil {
		return fmt.Errorf("invalid filter pattern: %w", err)
	}

	// Validate diff options.
	options := config.Diff
	if err := options.EnsureValid(); err != nil {
		return fmt.Errorf("invalid diff options: %w", err)
	}

	// Set up a context that's cancelled on termination signals.
	ctx, cancel := signal.NotifyContext(context.Background(), cmd.TerminationSignals...)
	defer cancel()

	// Set up loggers.
	logger := rootLogger.Sublogger("watch")
	scanLogger := rootLogger.Sublogger("scan")

	// Set up scan options.
	scanOptions := &snapshot.ScanOptions{
		MaxDepth:   config.Scan.MaxDepth,
		CountLines: config.Scan.CountLines,
		CountWords: config.Scan.CountWords,
		Filter:     filter,
		Logger:     scanLogger,
	}

	// Capture the initial baseline.
	baseline, err := snapshot.Scan(ctx, root, scanOptions)
	if err != nil {
		return fmt.Errorf("unable to capture baseline: %w", err)
	}
	logger.Infof("Watching %s (%d entries)", root, len(baseline))

	// Create the watcher.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create watcher: %w", err)
	}
	defer watcher.Close()

	// Register the root and all directories beneath it. New directories are
	// registered as their creation events arrive.
	if err := watchDirectories(watcher, root, logger); err != nil {
		return fmt.Errorf("unable to establish watch: %w", err)
	}

	// Create the renderer used for change reports.
	renderer, err := render.NewRenderer(render.FormatText, render.ShouldColorize(os.Stdout))
	if err != nil {
		return err
	}

	// Create (and drain) the debounce timer.
	debounce := time.NewTimer(watchDebounceInterval)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	// Loop until cancelled, debouncing events into rescans.
	for {
		select {
		case <-ctx.Done():
			logger.Info("Watch terminated")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("event channel closed unexpectedly")
			}
			logger.Debugf("Event: %s", event)
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						logger.Warn(fmt.Errorf("unable to watch %s: %w", event.Name, err))
					}
				}
			}
			debounce.Reset(watchDebounceInterval)
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("error channel closed unexpectedly")
			}
			logger.Warn(err)
		case <-debounce.C:
			// Rescan and diff against the rolling baseline.
			current, err := snapshot.Scan(ctx, root, scanOptions)
			if err != nil {
				if ctx.Err() != nil {
					logger.Info("Watch terminated")
					return nil
				}
				logger.Warn(fmt.Errorf("rescan failed: %w", err))
				continue
			}
			metadata := diff.NewMetadata("watch", root, filter.Describe(), &options)
			result := diff.NewEngine(&options).Compare(baseline, current, metadata)
			if result.Summary.TotalChanges() > 0 {
				rendered, err := renderer.Render(result)
				if err != nil {
					logger.Warn(fmt.Errorf("unable to render diff: %w", err))
				} else {
					fmt.Print(rendered)
				}
				baseline = current
			}
		}
	}
}

// watchCommand is the watch command. It uses a Mainify-wrapped entry point so
// that the watcher's defer-based cleanup runs even on error exits.
var watchCommand = &cobra.Command{
	Use:          "watch [<root>]",
	Short:        "Watch a filesystem tree and report changes as they happen",
	Run:          cmd.Mainify(watchMain),
	SilenceUsage: true,
}

// watchConfiguration stores configuration for the watch command.
var watchConfiguration struct {
	// help indicates the presence of the -h/--help flag.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := watchCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&watchConfiguration.help, "help", "h", false, "Show help information")
}
