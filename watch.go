package envcmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Snapshot is an Environment version emitted by Watch.
type Snapshot struct {
	Env      Environment
	Version  int64 // Increments on reload (starts at 1)
	LoadedAt time.Time
	Cause    string // What triggered the load
}

// Watch loads the env file at path and then monitors it for changes,
// re-emitting a Snapshot after each change. The file's directory is watched
// rather than the file itself so editors that replace-on-save are seen.
// Changes are debounced (100ms). Reload failures go to the error channel and
// the previous snapshot stays current. Both channels close when ctx is done.
func (l *Loader) Watch(ctx context.Context, path string) (<-chan Snapshot, <-chan error, error) {
	initial, err := l.GetEnvFileVars(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("initial load failed: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve env file path %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	snapshotCh := make(chan Snapshot, 1)
	errorCh := make(chan error, 1)

	go l.watchLoop(ctx, watcher, path, absPath, initial, snapshotCh, errorCh)

	return snapshotCh, errorCh, nil
}

// watchLoop emits the initial snapshot and then reloads on debounced file
// events until the context is cancelled.
func (l *Loader) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path, absPath string, initial Environment, snapshotCh chan<- Snapshot, errorCh chan<- error) {
	defer close(snapshotCh)
	defer close(errorCh)
	defer watcher.Close()

	version := int64(1)
	select {
	case snapshotCh <- Snapshot{Env: initial, Version: version, LoadedAt: time.Now(), Cause: "initial"}:
	case <-ctx.Done():
		return
	}

	const debounceDelay = 100 * time.Millisecond
	debounce := time.NewTimer(debounceDelay)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false
	cause := ""

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// Only events for the watched file matter; the whole directory
			// is under watch.
			if filepath.Base(event.Name) != filepath.Base(absPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			cause = "file-changed"
			if pending {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
			}
			debounce.Reset(debounceDelay)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			select {
			case errorCh <- fmt.Errorf("watch env file %s: %w", path, err):
			case <-ctx.Done():
				return
			}

		case <-debounce.C:
			pending = false
			env, err := l.GetEnvFileVars(ctx, path)
			if err != nil {
				select {
				case errorCh <- fmt.Errorf("reload failed: %w", err):
				case <-ctx.Done():
					return
				}
				continue
			}
			version++
			select {
			case snapshotCh <- Snapshot{Env: env, Version: version, LoadedAt: time.Now(), Cause: cause}:
			case <-ctx.Done():
				return
			}
		}
	}
}
