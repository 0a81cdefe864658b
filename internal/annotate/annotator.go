package annotate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/pathstamp/internal/comments"
	"github.com/temirov/pathstamp/internal/types"
	"github.com/temirov/pathstamp/internal/utils"
	"github.com/temirov/pathstamp/internal/walker"
)

const (
	errorRootRequired       = "annotate: root directory is empty"
	errorAbsoluteRootFormat = "annotate: resolving root %s: %w"
	errorReadFileFormat     = "reading %s: %w"
	errorStatFileFormat     = "stat %s: %w"
	errorRelativePathFormat = "relative path of %s: %w"

	logProcessingFailed  = "failed to process file"
	logDirectorySkipped  = "skipping unreadable directory"
	logReporterFailed    = "failed to report outcome"
	logOutcomeRecorded   = "annotation outcome"
	logFieldPath         = "path"
	logFieldAction       = "action"
	logFieldRelativePath = "relative_path"
)

// ErrPendingAnnotations is returned by callers running in check mode when files need changes.
var ErrPendingAnnotations = errors.New("files need path annotations")

// Reporter receives each outcome as soon as it is known.
type Reporter interface {
	Handle(outcome types.Outcome) error
}

// Options configures an Annotator.
type Options struct {
	Root     string
	Comments comments.Table
	Filter   walker.Filter
	// Writer defaults to InPlaceWriter.
	Writer FileWriter
	// DryRun computes outcomes without writing.
	DryRun   bool
	Logger   *zap.Logger
	Reporter Reporter
	// WatchQuietInterval defaults to DefaultWatchQuietInterval.
	WatchQuietInterval time.Duration
}

// Annotator inserts and refreshes path annotations beneath a root directory.
type Annotator struct {
	root     string
	comments comments.Table
	filter   walker.Filter
	writer   FileWriter
	dryRun   bool
	logger   *zap.Logger
	reporter Reporter

	watchQuietInterval time.Duration
}

// New validates options and returns an Annotator.
func New(options Options) (*Annotator, error) {
	if options.Root == "" {
		return nil, errors.New(errorRootRequired)
	}
	absoluteRoot, absoluteError := filepath.Abs(options.Root)
	if absoluteError != nil {
		return nil, fmt.Errorf(errorAbsoluteRootFormat, options.Root, absoluteError)
	}
	annotator := &Annotator{
		root:     absoluteRoot,
		comments: options.Comments,
		filter:   options.Filter,
		writer:   options.Writer,
		dryRun:   options.DryRun,
		logger:   options.Logger,
		reporter: options.Reporter,

		watchQuietInterval: options.WatchQuietInterval,
	}
	if annotator.writer == nil {
		annotator.writer = InPlaceWriter{}
	}
	if annotator.watchQuietInterval <= 0 {
		annotator.watchQuietInterval = DefaultWatchQuietInterval
	}
	if annotator.logger == nil {
		annotator.logger = zap.NewNop()
	}
	annotator.filter.Root = absoluteRoot
	if annotator.filter.OnReadError == nil {
		annotator.filter.OnReadError = annotator.logUnreadableDirectory
	}
	return annotator, nil
}

// Root returns the absolute root directory.
func (annotator *Annotator) Root() string {
	return annotator.root
}

// Run annotates every kept regular file beneath the root and returns the outcomes in visit order.
// Cancellation is honoured between files; a file is never left half processed by it.
func (annotator *Annotator) Run(ctx context.Context) ([]types.Outcome, error) {
	var outcomes []types.Outcome
	var cancelled error
	walker.Walk(annotator.root, annotator.filter, func(entry walker.DirEntry) {
		if cancelled != nil || entry.IsDirectory {
			return
		}
		if contextError := ctx.Err(); contextError != nil {
			cancelled = contextError
			return
		}
		outcomes = append(outcomes, annotator.ProcessFile(entry.FullPath))
	})
	return outcomes, cancelled
}

// ProcessFile inserts, updates, or leaves alone the annotation of one file.
// Failures are reported through the outcome and the logger, never returned.
func (annotator *Annotator) ProcessFile(fullPath string) types.Outcome {
	outcome := annotator.processFile(fullPath)
	annotator.report(outcome)
	return outcome
}

func (annotator *Annotator) processFile(fullPath string) types.Outcome {
	outcome := types.Outcome{Path: fullPath}
	prefix, supported := annotator.comments.LookupPath(fullPath)
	if !supported {
		outcome.Action = types.ActionSkip
		return outcome
	}

	relativePath, relativeError := utils.RelativePath(annotator.root, fullPath)
	if relativeError != nil {
		return annotator.fail(outcome, fmt.Errorf(errorRelativePathFormat, fullPath, relativeError))
	}
	outcome.RelativePath = relativePath

	fileInfo, statError := os.Stat(fullPath)
	if statError != nil {
		return annotator.fail(outcome, fmt.Errorf(errorStatFileFormat, fullPath, statError))
	}
	// #nosec G304
	content, readError := os.ReadFile(fullPath)
	if readError != nil {
		return annotator.fail(outcome, fmt.Errorf(errorReadFileFormat, fullPath, readError))
	}

	annotatedContent, action := Annotate(string(content), prefix, relativePath)
	outcome.Action = action
	if action == types.ActionUnchanged || annotator.dryRun {
		return outcome
	}
	if writeError := annotator.writer.WriteFile(fullPath, []byte(annotatedContent), fileInfo.Mode().Perm()); writeError != nil {
		return annotator.fail(outcome, writeError)
	}
	return outcome
}

func (annotator *Annotator) fail(outcome types.Outcome, failure error) types.Outcome {
	annotator.logger.Warn(logProcessingFailed, zap.String(logFieldPath, outcome.Path), zap.Error(failure))
	outcome.Action = types.ActionFail
	outcome.Reason = failure.Error()
	return outcome
}

func (annotator *Annotator) report(outcome types.Outcome) {
	annotator.logger.Debug(logOutcomeRecorded,
		zap.String(logFieldRelativePath, outcome.RelativePath),
		zap.String(logFieldAction, string(outcome.Action)),
	)
	if annotator.reporter == nil {
		return
	}
	if reportError := annotator.reporter.Handle(outcome); reportError != nil {
		annotator.logger.Warn(logReporterFailed, zap.String(logFieldPath, outcome.Path), zap.Error(reportError))
	}
}

func (annotator *Annotator) logUnreadableDirectory(directory string, readError error) {
	annotator.logger.Debug(logDirectorySkipped, zap.String(logFieldPath, directory), zap.Error(readError))
}
