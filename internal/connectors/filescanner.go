// Package connectors locates season tables on disk.
package connectors

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultExt is the extension of season tables.
const DefaultExt = "csv"

type FileMeta struct {
	Path     string
	Size     int64
	Modified time.Time
	Season   int // first year of the season parsed from the file name, 0 if none
}

type DiscoveryOptions struct {
	Recursive      bool
	MinSize        int64
	MaxSize        int64
	ModifiedAfter  time.Time
	ModifiedBefore time.Time
}

var seasonPattern = regexp.MustCompile(`(?:^|[^0-9])((?:19|20)[0-9]{2})(?:[^0-9]|$)`)

// SeasonFromName extracts a four digit season year from a file name such
// as "skaters_2023.csv" or "2023-24.csv".
func SeasonFromName(path string) int {
	m := seasonPattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0
	}
	year, _ := strconv.Atoi(m[1])
	return year
}

// DiscoverFiles walks root for files with the given extension. Results are
// ordered by season, then path.
func DiscoverFiles(root string, ext string, options DiscoveryOptions) ([]FileMeta, error) {
	// Validate root directory
	if root == "" {
		return nil, fmt.Errorf("root directory cannot be empty")
	}

	stat, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", root)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return nil, fmt.Errorf("file extension cannot be empty")
	}

	var files []FileMeta
	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if d.IsDir() {
			if path != root && !options.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), "."+ext) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("error getting file info for %s: %w", path, err)
		}

		// Apply filters
		if options.MinSize > 0 && info.Size() < options.MinSize {
			return nil
		}
		if options.MaxSize > 0 && info.Size() > options.MaxSize {
			return nil
		}
		if !options.ModifiedAfter.IsZero() && info.ModTime().Before(options.ModifiedAfter) {
			return nil
		}
		if !options.ModifiedBefore.IsZero() && info.ModTime().After(options.ModifiedBefore) {
			return nil
		}

		files = append(files, FileMeta{
			Path:     path,
			Size:     info.Size(),
			Modified: info.ModTime(),
			Season:   SeasonFromName(path),
		})
		return nil
	}

	if err := filepath.WalkDir(root, walkFunc); err != nil {
		return nil, fmt.Errorf("directory walk error: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no matching files found in %s", root)
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Season != files[j].Season {
			return files[i].Season < files[j].Season
		}
		return files[i].Path < files[j].Path
	})

	return files, nil
}

// ResolveDataPath returns path unchanged when it names a file. For a
// directory it picks the most recent season table inside it.
func ResolveDataPath(path string) (string, error) {
	stat, err := os.Stat(path)
	if err != nil {
		// Let the loader report missing files with its own error type.
		return path, nil
	}
	if !stat.IsDir() {
		return path, nil
	}

	files, err := DiscoverFiles(path, DefaultExt, DiscoveryOptions{})
	if err != nil {
		return "", err
	}
	return files[len(files)-1].Path, nil
}
