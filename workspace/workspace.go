// Package workspace keeps the parsed CVARINFO files of a directory tree.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/doomfront/config"
	"github.com/dhamidi/doomfront/cvarinfo"
	"github.com/dhamidi/doomfront/green"
	"github.com/dhamidi/doomfront/red"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

// ErrNotCVarInfo is returned for paths the configuration does not consider
// CVARINFO files.
var ErrNotCVarInfo = errors.New("not a CVARINFO file")

var log = commonlog.GetLogger("doomfront.workspace")

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	cfg     *config.Config
	files   map[string]*File
}

// File is one parsed document. Files are replaced, never modified, so a
// File obtained from a Workspace may be read without locking.
type File struct {
	Path    string
	Content string
	Tree    *green.ParseTree
	// Errors are the diagnostics to report. In strict mode only the first
	// error is kept.
	Errors []green.ParseError
}

// Cursor returns a fresh navigable view of the file's tree. Views are not
// safe for concurrent use; build one per goroutine.
func (f *File) Cursor() *red.Tree {
	return red.NewTree(f.Tree)
}

func (f *File) Declarations() []cvarinfo.Decl {
	return cvarinfo.Declarations(f.Cursor().Root())
}

type Option func(*Workspace)

// WithConfig replaces the default configuration.
func WithConfig(cfg *config.Config) Option {
	return func(w *Workspace) {
		w.cfg = cfg
	}
}

func New(rootDir string, opts ...Option) *Workspace {
	w := &Workspace{
		rootDir: rootDir,
		cfg:     config.Default(),
		files:   make(map[string]*File),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) Config() *config.Config {
	return w.cfg
}

// Discover lists the CVARINFO files below the root directory, skipping
// hidden and excluded paths.
func (w *Workspace) Discover() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(w.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debugf("walk %s: %s", path, err)
			return nil
		}
		if d.IsDir() {
			if path != w.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if w.cfg.Matches(path) && !w.cfg.Excluded(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", w.rootDir, err)
	}
	return paths, nil
}

// ScanAll parses every discovered file, using up to the configured number
// of workers.
func (w *Workspace) ScanAll(ctx context.Context) error {
	paths, err := w.Discover()
	if err != nil {
		return err
	}
	if err := w.ScanPaths(ctx, paths); err != nil {
		return err
	}
	log.Infof("scanned %d files under %s", len(paths), w.rootDir)
	return nil
}

// ScanPaths reads and parses paths in parallel, whatever their names. A file
// that cannot be read is skipped and its error joined into the result;
// cancellation stops the scan.
func (w *Workspace) ScanPaths(ctx context.Context, paths []string) error {
	var (
		mu   sync.Mutex
		errs []error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers())
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				log.Warningf("skipping %s: %s", path, err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return nil
			}
			w.UpdateFile(path, string(content))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return errors.Join(errs...)
}

func (w *Workspace) workers() int {
	if w.cfg.Workers > 0 {
		return w.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// ScanFile reads and parses the file at path.
func (w *Workspace) ScanFile(path string) (*File, error) {
	if !w.cfg.Matches(path) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotCVarInfo)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, string(content)), nil
}

// UpdateFile parses content as the new text of path, whatever its name.
func (w *Workspace) UpdateFile(path, content string) *File {
	f := w.parse(filepath.Clean(path), content)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[f.Path] = f
	log.Debugf("updated %s: %d errors", f.Path, len(f.Errors))
	return f
}

func (w *Workspace) parse(path, content string) *File {
	tree := cvarinfo.ParseRecov(content)
	f := &File{Path: path, Content: content, Tree: tree, Errors: tree.Errors()}
	if w.cfg.Strict && len(f.Errors) > 0 {
		f.Errors = f.Errors[:1]
	}
	return f
}

// RemoveFile forgets path and reports whether it was known.
func (w *Workspace) RemoveFile(path string) bool {
	path = filepath.Clean(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[path]
	delete(w.files, path)
	return ok
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[filepath.Clean(path)]
}

// Files returns all known files ordered by path.
func (w *Workspace) Files() []*File {
	w.mu.RLock()
	files := make([]*File, 0, len(w.files))
	for _, f := range w.files {
		files = append(files, f)
	}
	w.mu.RUnlock()

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// ErrorCount is the number of diagnostics across all files.
func (w *Workspace) ErrorCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n := 0
	for _, f := range w.files {
		n += len(f.Errors)
	}
	return n
}
