package script

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/dshills/spacedlist/internal/logging"
)

// WatchDebounce is how long Watch waits after the last write before calling
// back, so editors saving in several steps trigger one rerun.
var WatchDebounce = 100 * time.Millisecond

// Watch calls fn each time the file at path is written, until ctx is
// cancelled. The parent directory is watched so editors that replace the file
// on save are still seen.
func Watch(ctx context.Context, path string, log *logging.Logger, fn func(context.Context)) error {
	log = logging.OrNop(log).WithComponent("watch")

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watching %s", filepath.Dir(abs))
	}
	log.Info("watching %s", abs)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(WatchDebounce)
			} else {
				timer.Reset(WatchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch %s: %v", abs, err)
		case <-fire:
			fire = nil
			log.Debug("%s changed", abs)
			fn(ctx)
		}
	}
}
