package snapshot

import (
	"bufio"
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"golang.org/x/text/unicode/norm"

	"github.com/treediff-io/treediff/pkg/filtering"
	"github.com/treediff-io/treediff/pkg/logging"
)

// ScanOptions controls the behavior of Scan.
type ScanOptions struct {
	// MaxDepth is the maximum depth to descend below the scan root. A value
	// of 0 indicates no limit.
	MaxDepth uint
	// CountLines indicates whether or not line counts should be computed for
	// files.
	CountLines bool
	// CountWords indicates whether or not word counts should be computed for
	// files.
	CountWords bool
	// Filter restricts the set of recorded paths. It may be nil.
	Filter *filtering.Filter
	// Logger is the logger to use for non-fatal scan problems. It may be nil.
	Logger *logging.Logger
}

// Scan walks the filesystem tree rooted at the specified path and produces a
// flat list of entries in depth-first order. Individual entries that can't be
// read are logged and skipped; the scan only fails if the root itself is
// inaccessible or the context is cancelled.
func Scan(ctx context.Context, root string, options *ScanOptions) ([]*NodeInfo, error) {
	// Use default options if none were provided.
	if options == nil {
		options = &ScanOptions{}
	}

	// Verify that the root exists and is a directory.
	if info, err := os.Stat(root); err != nil {
		return nil, errors.Wrap(err, "unable to probe scan root")
	} else if !info.IsDir() {
		return nil, errors.New("scan root is not a directory")
	}

	// Perform the walk.
	var nodes []*NodeInfo
	err := filepath.WalkDir(root, func(entryPath string, entry fs.DirEntry, walkErr error) error {
		// Check for cancellation.
		if err := ctx.Err(); err != nil {
			return err
		}

		// Skip the root itself; snapshots record its contents.
		if entryPath == root {
			if walkErr != nil {
				return walkErr
			}
			return nil
		}

		// Log and skip unreadable entries, pruning unreadable directories.
		if walkErr != nil {
			options.Logger.Warn(errors.Wrapf(walkErr, "unable to read %s", entryPath))
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		// Compute the slash-separated relative path and depth.
		relative, err := filepath.Rel(root, entryPath)
		if err != nil {
			options.Logger.Warn(errors.Wrapf(err, "unable to relativize %s", entryPath))
			return nil
		}
		relative = filepath.ToSlash(relative)
		depth := strings.Count(relative, "/") + 1

		// Enforce the depth limit.
		if options.MaxDepth != 0 && uint(depth) > options.MaxDepth {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		// Apply filtering. Excluded directories are pruned entirely.
		if options.Filter.Excluded(relative) {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !options.Filter.Included(relative, entry.IsDir()) {
			return nil
		}

		// Grab entry metadata. WalkDir doesn't follow symbolic links, so this
		// reports the link itself for link entries.
		info, err := entry.Info()
		if err != nil {
			options.Logger.Warn(errors.Wrapf(err, "unable to read metadata for %s", entryPath))
			return nil
		}

		// Determine the node type.
		nodeType := NodeTypeFile
		if entry.IsDir() {
			nodeType = NodeTypeDirectory
		} else if info.Mode()&fs.ModeSymlink != 0 {
			nodeType = NodeTypeSymlink
		}

		// Build the node. Names are normalized to NFC so that trees scanned
		// on Unicode-decomposing filesystems compare equal to trees scanned
		// elsewhere.
		node := &NodeInfo{
			Path:  entryPath,
			Name:  norm.NFC.String(entry.Name()),
			Type:  nodeType,
			Depth: depth,
			Mode:  info.Mode().String(),
		}
		if nodeType == NodeTypeFile {
			size := uint64(info.Size())
			node.Size = &size
		}
		mtime := info.ModTime()
		node.MTime = &mtime

		// Compute line and word counts for files if requested.
		if nodeType == NodeTypeFile && (options.CountLines || options.CountWords) {
			lines, words, err := countLinesAndWords(entryPath)
			if err != nil {
				options.Logger.Warn(errors.Wrapf(err, "unable to analyze %s", entryPath))
			} else {
				if options.CountLines {
					node.LineCount = &lines
				}
				if options.CountWords {
					node.WordCount = &words
				}
			}
		}

		// Record the node.
		nodes = append(nodes, node)

		// Continue the walk.
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Success.
	return nodes, nil
}

// countLinesAndWords computes the number of lines and words in the file at
// the specified path.
func countLinesAndWords(path string) (uint64, uint64, error) {
	// Read the file contents.
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}

	// Count lines. A trailing fragment without a newline still counts as a
	// line.
	lines := uint64(bytes.Count(data, []byte{'\n'}))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		lines++
	}

	// Count words.
	var words uint64
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		words++
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, err
	}

	// Done.
	return lines, words, nil
}
