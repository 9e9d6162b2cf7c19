package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/treediff-io/treediff/pkg/diff/render"
	"github.com/treediff-io/treediff/pkg/logging"
	"github.com/treediff-io/treediff/pkg/treediff"
)

// Output formats are bindable as command line flags.
var _ pflag.Value = (*render.Format)(nil)

// maximumCommandDistance specifies the maximum Levenshtein distance at which
// an unknown command is considered a match for suggestion purposes.
const maximumCommandDistance = 4

// rootLogger is the logger from which commands derive their subloggers.
var rootLogger = logging.RootLogger

// rootMain is the entry point for the root command.
func rootMain(command *cobra.Command, arguments []string) error {
	// If no commands were given, then print help information and bail. We
	// don't have to worry about warning about arguments being present here
	// (since we do want to print out any unknown commands), because Cobra
	// will warn about them automatically.
	if len(arguments) == 0 {
		command.Help()
		return nil
	}

	// The first argument is an unknown command. Try to suggest near matches
	// before bailing.
	suggestions := commandSuggestions(command, arguments[0])
	if len(suggestions) > 0 {
		fmt.Fprintln(os.Stderr, "Did you mean this?")
		for _, suggestion := range suggestions {
			fmt.Fprintln(os.Stderr, "\t"+suggestion)
		}
	}
	return fmt.Errorf("unknown command: %s", arguments[0])
}

// commandSuggestions computes registered command names within the maximum
// Levenshtein distance of the specified name.
func commandSuggestions(command *cobra.Command, name string) []string {
	var suggestions []string
	for _, child := range command.Commands() {
		distance := levenshtein.DistanceForStrings(
			[]rune(name), []rune(child.Name()), levenshtein.DefaultOptions,
		)
		if distance <= maximumCommandDistance {
			suggestions = append(suggestions, child.Name())
		}
	}
	return suggestions
}

// rootCommand is the root command.
var rootCommand = &cobra.Command{
	Use:              "treediff",
	Version:          treediff.Version,
	Short:            "Capture filesystem tree snapshots and compare them",
	Args:             cobra.ArbitraryArgs,
	RunE:             rootMain,
	PersistentPreRun: rootPreRun,
	SilenceUsage:     true,
}

// rootConfiguration stores configuration for the root command.
var rootConfiguration struct {
	// help indicates the presence of the -h/--help flag.
	help bool
	// configurationFile is an alternate configuration file path.
	configurationFile string
	// logLevel is the logging verbosity level.
	logLevel string
}

// rootPreRun applies global flags before any command executes.
func rootPreRun(_ *cobra.Command, _ []string) {
	if level, ok := logging.NameToLevel(rootConfiguration.logLevel); ok {
		logging.SetRootLevel(level)
	}
}

func init() {
	// Disable Cobra's command sorting behavior. By default, it sorts commands
	// alphabetically in the help output.
	cobra.EnableCommandSorting = false

	// Set the template used by the version flag.
	rootCommand.SetVersionTemplate("treediff version {{ .Version }}\n")

	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Add persistent flags available to all commands.
	persistent := rootCommand.PersistentFlags()
	persistent.StringVarP(&rootConfiguration.configurationFile, "config", "c", "", "Use an alternate configuration file")
	persistent.StringVar(&rootConfiguration.logLevel, "log-level", "info", "Set the log level (disabled|error|warn|info|debug)")

	// Register commands. We do this here (rather than in individual init
	// functions) so that we can control the order.
	rootCommand.AddCommand(
		snapshotCommand,
		diffCommand,
		watchCommand,
		versionCommand,
	)
}

func main() {
	// Execute the root command.
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
