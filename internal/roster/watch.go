package roster

import (
	"context"
	"os"
	"time"
)

// FileWatcher reports roster files whose modification time moves forward.
// A file that is missing at first and created later counts as changed, and
// so does a file that is deleted and recreated.
type FileWatcher struct {
	files    []string
	every    time.Duration
	onChange func(path string)
	mtimes   map[string]time.Time
}

func NewFileWatcher(files []string, every time.Duration, onChange func(path string)) *FileWatcher {
	return &FileWatcher{
		files:    files,
		every:    every,
		onChange: onChange,
		mtimes:   make(map[string]time.Time, len(files)),
	}
}

// Run records the current state, then polls until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) {
	w.poll(false)
	tick := time.NewTicker(w.every)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			w.poll(true)
		}
	}
}

func (w *FileWatcher) poll(notify bool) {
	for _, path := range w.files {
		info, err := os.Stat(path)
		if err != nil {
			delete(w.mtimes, path)
			continue
		}
		seen, known := w.mtimes[path]
		if known && !info.ModTime().After(seen) {
			continue
		}
		w.mtimes[path] = info.ModTime()
		if notify && w.onChange != nil {
			w.onChange(path)
		}
	}
}
