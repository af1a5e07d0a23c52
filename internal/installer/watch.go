package installer

import (
	"os"
	"path/filepath"
	"sync"

	clog "github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// progressWatcher logs milestones of the setup script as files appear on
// disk.
type progressWatcher struct {
	w   *fsnotify.Watcher
	log *clog.Logger

	mu      sync.Mutex
	pending map[string]string // path -> message
	seen    chan string

	stop sync.Once
	done chan struct{}
}

// watchProgress starts watching for each target path. Targets whose
// directory does not exist yet are picked up once the directory is created
// inside a watched parent.
func watchProgress(log *clog.Logger, targets map[string]string) (*progressWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	pw := &progressWatcher{
		w:       w,
		log:     log,
		pending: map[string]string{},
		seen:    make(chan string, len(targets)),
		done:    make(chan struct{}),
	}
	for path, msg := range targets {
		path = filepath.Clean(path)
		pw.pending[path] = msg
		dir := filepath.Dir(path)
		if isDir(dir) {
			pw.add(dir)
		} else if parent := filepath.Dir(dir); isDir(parent) {
			pw.add(parent)
		}
	}
	go pw.loop()
	return pw, nil
}

func (pw *progressWatcher) add(dir string) {
	if err := pw.w.Add(dir); err != nil {
		pw.log.Debug("watch failed", "dir", dir, "err", err)
	}
}

func (pw *progressWatcher) loop() {
	defer close(pw.done)
	for {
		select {
		case ev, ok := <-pw.w.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) {
				pw.created(filepath.Clean(ev.Name))
			}
		case err, ok := <-pw.w.Errors:
			if !ok {
				return
			}
			pw.log.Debug("watch error", "err", err)
		}
	}
}

func (pw *progressWatcher) created(path string) {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if msg, ok := pw.pending[path]; ok {
		delete(pw.pending, path)
		pw.log.Info(msg)
		select {
		case pw.seen <- msg:
		default:
		}
	}
	// a parent of a pending target was created; start watching it
	for target := range pw.pending {
		if filepath.Dir(target) == path && isDir(path) {
			pw.add(path)
			break
		}
	}
}

// Close stops the watcher. Safe to call more than once.
func (pw *progressWatcher) Close() {
	if pw == nil {
		return
	}
	pw.stop.Do(func() {
		_ = pw.w.Close()
		<-pw.done
	})
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
