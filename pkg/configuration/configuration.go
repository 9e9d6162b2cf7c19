// Package configuration provides treediff's optional YAML configuration file
// handling.
package configuration

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/treediff-io/treediff/pkg/diff"
	"github.com/treediff-io/treediff/pkg/encoding"
)

// ConfigurationFileName is the name of the configuration file within the
// user's home directory.
const ConfigurationFileName = ".treediff.yaml"

// Configuration represents the treediff configuration file.
type Configuration struct {
	// Diff holds defaults for diff options.
	Diff diff.Options `yaml:"diff"`
	// Scan holds defaults for scan behavior.
	Scan struct {
		// MaxDepth is the maximum scan depth. A value of 0 indicates no
		// limit.
		MaxDepth uint `yaml:"maxDepth"`
		// CountLines indicates whether or not to compute line counts.
		CountLines bool `yaml:"countLines"`
		// CountWords indicates whether or not to compute word counts.
		CountWords bool `yaml:"countWords"`
	} `yaml:"scan"`
	// Filter holds default filter patterns.
	Filter struct {
		// Include are the inclusion patterns.
		Include []string `yaml:"include"`
		// Exclude are the exclusion patterns.
		Exclude []string `yaml:"exclude"`
	} `yaml:"filter"`
}

// defaultConfiguration returns a configuration with default values.
func defaultConfiguration() *Configuration {
	return &Configuration{
		Diff: *diff.DefaultOptions(),
	}
}

// loadFromPath is the internal loading function. It's kept separate from Load
// so that tests can exercise it with temporary files.
func loadFromPath(path string) (*Configuration, error) {
	// Create a configuration with default values. Nothing is modified in
	// this structure if the configuration file doesn't exist.
	result := defaultConfiguration()

	// Attempt to load the configuration from disk.
	if err := encoding.LoadAndUnmarshalYAML(path, result); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// Validate the result.
	if err := result.Diff.EnsureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid diff options")
	}

	// Success.
	return result, nil
}

// Load loads the configuration file from the specified path, or from the
// user's home directory if the path is empty. If the file doesn't exist, a
// configuration with default values is returned.
func Load(path string) (*Configuration, error) {
	// If no path was specified, compute the default location. If the home
	// directory can't be determined, fall back to defaults.
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return defaultConfiguration(), nil
		}
		path = filepath.Join(home, ConfigurationFileName)
	}

	// Perform the load.
	return loadFromPath(path)
}
