package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pathstamp/internal/annotate"
	"github.com/temirov/pathstamp/internal/config"
	"github.com/temirov/pathstamp/internal/matcher"
	"github.com/temirov/pathstamp/internal/output"
	"github.com/temirov/pathstamp/internal/types"
	"github.com/temirov/pathstamp/internal/walker"
)

const (
	annotateUse              = "annotate [path]"
	annotateAlias            = "a"
	annotateShortDescription = "insert or update path annotations (" + annotateAlias + ")"
	annotateLongDescription  = `Walk the directory tree and make sure the first line of every supported source file
is "<comment> File: <relative path>". Running it twice changes nothing the second time.
Files with unknown extensions are never opened.`
	annotateUsageExample = `  # Annotate the current project
  pathstamp annotate

  # Fail in CI when any file lacks an up-to-date annotation
  pathstamp annotate --check ./backend

  # Keep annotating while you work, writing through temporary files
  pathstamp annotate --watch --atomic -e "generated/**"`

	checkFlagDescription  = "report files that need annotations without writing; exit non-zero if any"
	atomicFlagDescription = "write through a temporary file and rename it into place"
	watchFlagDescription  = "keep running and annotate files as they are created or changed"

	errorPendingFormat = "%w: %d file(s)"
	logAnnotating      = "annotating"
)

// createAnnotateCommand returns the annotate subcommand.
func createAnnotateCommand(dependencies Dependencies) *cobra.Command {
	var sharedFlags scanFlags
	var checkEnabled, atomicEnabled, watchEnabled bool

	annotateCommand := &cobra.Command{
		Use:     annotateUse,
		Aliases: []string{annotateAlias},
		Short:   annotateShortDescription,
		Long:    annotateLongDescription,
		Example: annotateUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			options, optionsError := config.LoadAnnotateOptions(command.Flags())
			if optionsError != nil {
				return optionsError
			}
			root, rootError := rootDirectory(arguments)
			if rootError != nil {
				return rootError
			}
			return runAnnotate(command, dependencies.Logger, root.AbsolutePath, options)
		},
	}

	addScanFlags(annotateCommand, &sharedFlags)
	registerBooleanFlag(annotateCommand.Flags(), &checkEnabled, config.CheckFlagName, checkFlagDescription)
	registerBooleanFlag(annotateCommand.Flags(), &atomicEnabled, config.AtomicFlagName, atomicFlagDescription)
	registerBooleanFlag(annotateCommand.Flags(), &watchEnabled, config.WatchFlagName, watchFlagDescription)
	return annotateCommand
}

// runAnnotate performs one annotation pass over root, then keeps watching when requested.
func runAnnotate(command *cobra.Command, logger *zap.Logger, root string, options config.AnnotateOptions) (err error) {
	configuration := config.DefaultAnnotateConfiguration()
	nameMatcher, matcherError := configuration.NameMatcher()
	if matcherError != nil {
		return matcherError
	}
	pathFilter, filterError := matcher.NewPathFilter(matcher.PathFilterOptions{
		RootDirectory:   root,
		ExcludePatterns: options.ExcludePatterns,
		UseGitignore:    options.UseGitignore,
	})
	if filterError != nil {
		return filterError
	}
	renderer, rendererError := output.NewOutcomeRenderer(command.OutOrStdout(), options.Format, root, options.Check)
	if rendererError != nil {
		return rendererError
	}

	var writer annotate.FileWriter = annotate.InPlaceWriter{}
	if options.Atomic {
		writer = annotate.AtomicWriter{}
	}
	annotator, annotatorError := annotate.New(annotate.Options{
		Root:     root,
		Comments: configuration.CommentTable(),
		Filter:   walker.NewFilter(root, nameMatcher, pathFilter),
		Writer:   writer,
		DryRun:   options.Check,
		Logger:   logger,
		Reporter: renderer,
	})
	if annotatorError != nil {
		return annotatorError
	}

	defer func() {
		if flushError := renderer.Flush(); flushError != nil && err == nil {
			err = flushError
		}
	}()

	logger.Debug(logAnnotating, zap.String(logFieldPath, root))
	ctx := command.Context()
	outcomes, runError := annotator.Run(ctx)
	if runError != nil {
		if errors.Is(runError, context.Canceled) && options.Watch {
			return nil
		}
		return runError
	}
	if options.Watch {
		return annotator.Watch(ctx)
	}
	if options.Check {
		if pending := countChanged(outcomes); pending > 0 {
			return fmt.Errorf(errorPendingFormat, annotate.ErrPendingAnnotations, pending)
		}
	}
	return nil
}

func countChanged(outcomes []types.Outcome) int {
	changed := 0
	for _, outcome := range outcomes {
		if outcome.Changed() {
			changed++
		}
	}
	return changed
}
