// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pathstamp/internal/config"
	"github.com/temirov/pathstamp/internal/services/clipboard"
	"github.com/temirov/pathstamp/internal/types"
	"github.com/temirov/pathstamp/internal/utils"
)

const (
	defaultPath          = "."
	rootUse              = utils.ApplicationName
	rootShortDescription = "pathstamp annotates source files with their path and renders project trees"
	rootLongDescription  = `pathstamp keeps a "<comment> File: <relative path>" line at the top of every
recognised source file and prints a filtered tree of the project.
Both commands accept --format raw, json, or yaml. Every flag can also be set
through a PATHSTAMP_<FLAG> environment variable, for example PATHSTAMP_FORMAT=json.`

	logLevelFlagDescription  = "log verbosity: debug, info, warn, or error"
	formatFlagDescription    = "output format: raw, json, or yaml"
	excludeFlagDescription   = "exclude paths matching a glob, relative to the root (repeatable)"
	gitignoreFlagDescription = "also skip paths ignored by the root .gitignore"

	errorAbsolutePathFormat = "abs failed for '%s': %w"
	errorPathMissingFormat  = "path '%s' does not exist"
	errorStatFormat         = "stat failed for '%s': %w"
	errorNotDirectoryFormat = "path '%s' is not a directory"
	errorLogLevelFormat     = "applying log level: %w"

	logFieldPath = "path"
)

// Dependencies are the collaborators shared by every command.
type Dependencies struct {
	Logger *zap.Logger
	// Level must come from zap.NewAtomicLevel; --log-level adjusts it.
	Level     zap.AtomicLevel
	Clipboard clipboard.Copier
}

// Execute runs the pathstamp application with the given command line arguments.
func Execute(ctx context.Context, dependencies Dependencies, arguments []string) error {
	rootCommand := NewRootCommand(dependencies)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, arguments))
	return fang.Execute(
		ctx,
		rootCommand,
		fang.WithVersion(utils.GetApplicationVersion()),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
}

// NewRootCommand builds the root Cobra command with the annotate, tree, and defaults subcommands.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.NewService()
	}
	var logLevel string

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			levelName, levelError := config.LoadLogLevel(command.Flags())
			if levelError != nil {
				return levelError
			}
			if unmarshalError := dependencies.Level.UnmarshalText([]byte(levelName)); unmarshalError != nil {
				return fmt.Errorf(errorLogLevelFormat, unmarshalError)
			}
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&logLevel, config.LogLevelFlagName, utils.DefaultLogLevel, logLevelFlagDescription)
	rootCommand.AddCommand(
		createAnnotateCommand(dependencies),
		createTreeCommand(dependencies),
		createDefaultsCommand(),
	)
	return rootCommand
}

// scanFlags holds the flags shared by annotate and tree.
type scanFlags struct {
	format            string
	exclusionPatterns []string
	useGitignore      bool
}

// addScanFlags registers the shared flags on command.
func addScanFlags(command *cobra.Command, flags *scanFlags) {
	command.Flags().StringVar(&flags.format, config.FormatFlagName, types.FormatRaw, formatFlagDescription)
	command.Flags().StringArrayVarP(&flags.exclusionPatterns, config.ExcludeFlagName, "e", nil, excludeFlagDescription)
	registerBooleanFlag(command.Flags(), &flags.useGitignore, config.GitignoreFlagName, gitignoreFlagDescription)
}

// rootDirectory returns the first argument, or the working directory when none is given.
func rootDirectory(arguments []string) (types.ValidatedPath, error) {
	inputPath := defaultPath
	if len(arguments) > 0 {
		inputPath = arguments[0]
	}
	return resolveDirectory(inputPath)
}

// resolveDirectory converts inputPath to absolute form and checks that it is an existing directory.
func resolveDirectory(inputPath string) (types.ValidatedPath, error) {
	absolutePath, absolutePathError := filepath.Abs(inputPath)
	if absolutePathError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return types.ValidatedPath{}, fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !info.IsDir() {
		return types.ValidatedPath{}, fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	return types.ValidatedPath{AbsolutePath: cleanPath, IsDir: true}, nil
}

// debugUnreadableDirectory returns a walker read-error hook that logs at debug level.
func debugUnreadableDirectory(logger *zap.Logger) func(directory string, readError error) {
	return func(directory string, readError error) {
		logger.Debug("skipping unreadable directory", zap.String(logFieldPath, directory), zap.Error(readError))
	}
}
