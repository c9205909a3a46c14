package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/syncthing/notify"
)

// DefaultDebounce is how long a Watcher waits for events to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher keeps a Workspace in sync with the file system.
type Watcher struct {
	ws       *Workspace
	debounce time.Duration
	onChange func(path string, f *File)
}

// NewWatcher returns a watcher that reparses changed files of ws. onChange,
// if not nil, is called after each update with the new File, or with nil
// when the file was removed.
func NewWatcher(ws *Workspace, onChange func(path string, f *File)) *Watcher {
	return &Watcher{ws: ws, debounce: DefaultDebounce, onChange: onChange}
}

// Run watches the workspace root recursively until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	// Buffered so bursts are not dropped while a batch is applied.
	c := make(chan notify.EventInfo, 64)
	root := filepath.Join(w.ws.RootDir(), "...")
	if err := notify.Watch(root, c, notify.Create, notify.Write, notify.Remove, notify.Rename); err != nil {
		return fmt.Errorf("watch %s: %w", w.ws.RootDir(), err)
	}
	defer notify.Stop(c)

	log.Infof("watching %s", w.ws.RootDir())
	w.loop(ctx, c)
	return nil
}

// loop batches events: a batch is applied once no event has arrived for
// the debounce interval.
func (w *Watcher) loop(ctx context.Context, c <-chan notify.EventInfo) {
	pending := make(map[string]bool)
	var timer *time.Timer
	timeout := func() <-chan time.Time {
		if timer != nil {
			return timer.C
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case ev := <-c:
			log.Debugf("%s %s", ev.Event(), ev.Path())
			pending[ev.Path()] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
		case <-timeout():
			w.apply(pending)
			pending = make(map[string]bool)
			timer = nil
		}
	}
}

func (w *Watcher) apply(pending map[string]bool) {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		w.Sync(path)
	}
}

// Sync brings the workspace entry for path up to date with the disk.
func (w *Watcher) Sync(path string) {
	cfg := w.ws.Config()
	if !cfg.Matches(path) || cfg.Excluded(path) {
		return
	}

	f, err := w.ws.ScanFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if w.ws.RemoveFile(path) {
			log.Infof("removed %s", path)
			w.notify(path, nil)
		}
	case err != nil:
		log.Warningf("rescan %s: %s", path, err)
	default:
		log.Infof("reparsed %s: %d errors", path, len(f.Errors))
		w.notify(path, f)
	}
}

func (w *Watcher) notify(path string, f *File) {
	if w.onChange != nil {
		w.onChange(filepath.Clean(path), f)
	}
}
