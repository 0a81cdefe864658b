package annotate

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/temirov/pathstamp/internal/walker"
)

const (
	errorCreateWatcherFormat = "annotate: creating watcher: %w"
	errorWatchRootFormat     = "annotate: watching %s: %w"

	logWatchAddFailed = "failed to watch directory"
	logWatcherError   = "watcher error"
	logWatching       = "watching for changes"
	logAwaitContent   = "waiting for content"
)

// Watch annotates files as they are created or written until ctx is cancelled.
// A changed file is processed only after no event arrived for the quiet interval, so a file
// still being written by another program is read once it has settled. Empty files are left
// for their next write. Processing happens one file at a time on the calling goroutine;
// writes made by the annotator itself come back as events that resolve to UNCHANGED.
func (annotator *Annotator) Watch(ctx context.Context) error {
	fileWatcher, creationError := fsnotify.NewWatcher()
	if creationError != nil {
		return fmt.Errorf(errorCreateWatcherFormat, creationError)
	}
	defer fileWatcher.Close()

	if addError := fileWatcher.Add(annotator.root); addError != nil {
		return fmt.Errorf(errorWatchRootFormat, annotator.root, addError)
	}
	walker.Walk(annotator.root, annotator.filter, func(entry walker.DirEntry) {
		if entry.IsDirectory {
			annotator.watchDirectory(fileWatcher, entry.FullPath)
		}
	})
	annotator.logger.Info(logWatching, zap.String(logFieldPath, annotator.root))

	pending := newDebouncer(annotator.watchQuietInterval)
	defer pending.stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fileWatcher.Events:
			if !ok {
				return nil
			}
			annotator.handleEvent(fileWatcher, pending, event)
		case <-pending.ready():
			for _, settledPath := range pending.drain() {
				annotator.processSettled(settledPath)
			}
		case watchError, ok := <-fileWatcher.Errors:
			if !ok {
				return nil
			}
			annotator.logger.Warn(logWatcherError, zap.Error(watchError))
		}
	}
}

// handleEvent queues a created or written file, or starts watching a new directory and queues its files.
func (annotator *Annotator) handleEvent(fileWatcher *fsnotify.Watcher, pending *debouncer, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	fileInfo, statError := os.Lstat(event.Name)
	if statError != nil {
		return
	}
	entry := walker.DirEntry{
		Name:        fileInfo.Name(),
		IsDirectory: fileInfo.IsDir(),
		IsRegular:   fileInfo.Mode().IsRegular(),
		FullPath:    event.Name,
	}
	if annotator.filter.Excludes(entry) {
		return
	}
	if entry.IsDirectory {
		if !event.Has(fsnotify.Create) {
			return
		}
		annotator.watchDirectory(fileWatcher, entry.FullPath)
		walker.Walk(entry.FullPath, annotator.filter, func(nested walker.DirEntry) {
			if nested.IsDirectory {
				annotator.watchDirectory(fileWatcher, nested.FullPath)
				return
			}
			pending.add(nested.FullPath)
		})
		return
	}
	if entry.IsRegular {
		pending.add(entry.FullPath)
	}
}

// processSettled annotates path in its current state. Paths that vanished, stopped being regular
// files, or are still empty are skipped.
func (annotator *Annotator) processSettled(path string) {
	fileInfo, statError := os.Lstat(path)
	if statError != nil || !fileInfo.Mode().IsRegular() {
		return
	}
	if fileInfo.Size() == 0 {
		annotator.logger.Debug(logAwaitContent, zap.String(logFieldPath, path))
		return
	}
	annotator.ProcessFile(path)
}

func (annotator *Annotator) watchDirectory(fileWatcher *fsnotify.Watcher, directory string) {
	if addError := fileWatcher.Add(directory); addError != nil {
		annotator.logger.Warn(logWatchAddFailed, zap.String(logFieldPath, directory), zap.Error(addError))
	}
}
