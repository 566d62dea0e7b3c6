package usda

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gousd/usda/internal/types"
)

// SearchPathEnv is the environment variable holding the default asset
// search path, a list of directories separated by os.PathListSeparator.
const SearchPathEnv = "PXR_AR_DEFAULT_SEARCH_PATH"

// SearchPath returns a Source over every existing directory of the
// default asset search path, each indexed recursively. Directories that
// do not exist are dropped, and duplicates are visited once. The result
// is empty, not an error, when the variable is unset.
func SearchPath(logger *slog.Logger, opts ...SourceOption) Source {
	log := types.Logger{L: logger}
	dirs := discoverSearchPaths(os.Getenv(SearchPathEnv))

	var sources []Source
	for _, d := range dirs {
		src, err := DirTree(d, opts...)
		if err != nil {
			log.Log(slog.LevelDebug, "skipping search path entry",
				slog.String("path", d), slog.Any("error", err))
			continue
		}
		sources = append(sources, src)
	}
	log.Log(slog.LevelDebug, "search path resolved", slog.Int("dirs", len(sources)))
	return Multi(sources...)
}

// discoverSearchPaths splits a search path value, deduplicated and
// filtered to directories that exist.
func discoverSearchPaths(value string) []string {
	return filterExistingDirs(dedup(splitPaths(value)))
}

func splitPaths(s string) []string {
	var result []string
	for _, p := range filepath.SplitList(s) {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func dedup(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var result []string
	for _, p := range paths {
		p = filepath.Clean(p)
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			result = append(result, p)
		}
	}
	return result
}

func filterExistingDirs(paths []string) []string {
	var result []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			result = append(result, p)
		}
	}
	return result
}
