package usda

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// DefaultExtensions are the file extensions recognized as USDA files.
var DefaultExtensions = []string{".usda"}

// Source enumerates and opens USDA files.
type Source interface {
	// ListFiles returns the paths of all files known to this source, in
	// the form accepted by Open.
	ListFiles() ([]string, error)

	// Open returns the content of a file listed by ListFiles, or an error
	// matching fs.ErrNotExist.
	Open(path string) (io.ReadCloser, error)
}

// SourceOption configures a source.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	extensions []string
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		extensions: DefaultExtensions,
	}
}

func newSourceConfig(opts []SourceOption) sourceConfig {
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithExtensions sets the file extensions to recognize for this source,
// for example ".usda" and ".usd".
func WithExtensions(exts ...string) SourceOption {
	return func(c *sourceConfig) {
		c.extensions = exts
	}
}

// --- Dir Source (single directory, lazy) ---

type dirSource struct {
	path   string
	config sourceConfig
}

// Dir creates a Source for the files of a single directory (no recursion).
// The directory is listed on each ListFiles call.
func Dir(path string, opts ...SourceOption) (Source, error) {
	if err := checkDir(path); err != nil {
		return nil, err
	}
	return &dirSource{path: path, config: newSourceConfig(opts)}, nil
}

// MustDir is like Dir but panics on error.
func MustDir(path string, opts ...SourceOption) Source {
	src, err := Dir(path, opts...)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *dirSource) ListFiles() ([]string, error) {
	extSet := makeExtensionSet(s.config.extensions)
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(s.path, entry.Name())
		if hasValidExtension(path, extSet) {
			files = append(files, path)
		}
	}
	return files, nil
}

func (s *dirSource) Open(path string) (io.ReadCloser, error) {
	if filepath.Dir(path) != filepath.Clean(s.path) {
		return nil, fs.ErrNotExist
	}
	return os.Open(path)
}

// --- DirTree Source (recursive directory, indexed) ---

type treeSource struct {
	files  []string
	known  map[string]struct{}
	config sourceConfig
}

// DirTree creates a Source that recursively indexes a directory tree.
// It walks the tree once at construction; unreadable subdirectories are
// skipped.
func DirTree(root string, opts ...SourceOption) (Source, error) {
	if err := checkDir(root); err != nil {
		return nil, err
	}
	cfg := newSourceConfig(opts)
	extSet := makeExtensionSet(cfg.extensions)
	s := &treeSource{known: make(map[string]struct{}), config: cfg}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !hasValidExtension(path, extSet) {
			return nil
		}
		s.files = append(s.files, path)
		s.known[path] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// MustDirTree is like DirTree but panics on error.
func MustDirTree(root string, opts ...SourceOption) Source {
	src, err := DirTree(root, opts...)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *treeSource) ListFiles() ([]string, error) {
	return slices.Clone(s.files), nil
}

func (s *treeSource) Open(path string) (io.ReadCloser, error) {
	if _, ok := s.known[path]; !ok {
		return nil, fs.ErrNotExist
	}
	return os.Open(path)
}

// --- FS Source (for embed.FS, testing, http filesystems) ---

type fsSource struct {
	name   string
	fsys   fs.FS
	config sourceConfig

	once  sync.Once
	files []string
	err   error
}

// FS creates a Source backed by an fs.FS (e.g., embed.FS).
// The name prefixes reported paths as "name:path". The filesystem is
// indexed lazily on first use.
func FS(name string, fsys fs.FS, opts ...SourceOption) Source {
	return &fsSource{
		name:   name,
		fsys:   fsys,
		config: newSourceConfig(opts),
	}
}

func (s *fsSource) index() error {
	s.once.Do(func() {
		extSet := makeExtensionSet(s.config.extensions)
		s.err = fs.WalkDir(s.fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if !d.IsDir() && hasValidExtension(path, extSet) {
				s.files = append(s.files, path)
			}
			return nil
		})
	})
	return s.err
}

func (s *fsSource) ListFiles() ([]string, error) {
	if err := s.index(); err != nil {
		return nil, err
	}
	files := make([]string, len(s.files))
	for i, path := range s.files {
		files[i] = s.name + ":" + path
	}
	return files, nil
}

func (s *fsSource) Open(path string) (io.ReadCloser, error) {
	rel, ok := strings.CutPrefix(path, s.name+":")
	if !ok {
		return nil, fs.ErrNotExist
	}
	return s.fsys.Open(rel)
}

// --- Files Source (explicit list) ---

type fileSource struct {
	paths []string
}

// Files creates a Source for an explicit list of files. Extensions are
// not checked.
func Files(paths ...string) Source {
	return &fileSource{paths: paths}
}

func (s *fileSource) ListFiles() ([]string, error) {
	return slices.Clone(s.paths), nil
}

func (s *fileSource) Open(path string) (io.ReadCloser, error) {
	if !slices.Contains(s.paths, path) {
		return nil, fs.ErrNotExist
	}
	return os.Open(path)
}

// --- Multi Source (combines multiple sources) ---

type multiSource struct {
	sources []Source
}

// Multi combines multiple sources into one. Open tries each source in
// order and returns the first match.
func Multi(sources ...Source) Source {
	return &multiSource{sources: sources}
}

func (s *multiSource) ListFiles() ([]string, error) {
	var files []string
	for _, src := range s.sources {
		f, err := src.ListFiles()
		if err != nil {
			return nil, err
		}
		files = append(files, f...)
	}
	return files, nil
}

func (s *multiSource) Open(path string) (io.ReadCloser, error) {
	for _, src := range s.sources {
		r, err := src.Open(path)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fs.ErrNotExist
}

// --- Helpers ---

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	return nil
}

func makeExtensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

func hasValidExtension(path string, extSet map[string]struct{}) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := extSet[ext]
	return ok
}
