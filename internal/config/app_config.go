package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/temirov/pathstamp/internal/types"
	"github.com/temirov/pathstamp/internal/utils"
)

// Flag names shared by the CLI and the option resolver.
const (
	FormatFlagName    = "format"
	ExcludeFlagName   = "exclude"
	GitignoreFlagName = "gitignore"
	CheckFlagName     = "check"
	AtomicFlagName    = "atomic"
	WatchFlagName     = "watch"
	ClipboardFlagName = "clipboard"
	LogLevelFlagName  = "log-level"
)

const (
	errorBindFlagsFormat     = "binding flags: %w"
	errorInvalidFormatFormat = "invalid format value '%s'"
	errorInvalidLevelFormat  = "invalid log level '%s'"
	errorWatchCheckConflict  = "--" + WatchFlagName + " cannot be combined with --" + CheckFlagName
)

// CommonOptions are the options shared by every scanning command.
type CommonOptions struct {
	Format          string
	ExcludePatterns []string
	UseGitignore    bool
}

// AnnotateOptions are the resolved options of the annotate command.
type AnnotateOptions struct {
	CommonOptions
	Check  bool
	Atomic bool
	Watch  bool
}

// TreeOptions are the resolved options of the tree command.
type TreeOptions struct {
	CommonOptions
	Clipboard bool
}

// NewReader binds flags into a viper instance. Every flag may be overridden by a
// PATHSTAMP_<FLAG> environment variable; explicitly set flags take precedence.
func NewReader(flags *pflag.FlagSet) (*viper.Viper, error) {
	reader := viper.New()
	reader.SetEnvPrefix(utils.EnvironmentPrefix)
	reader.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	reader.AutomaticEnv()
	if flags != nil {
		if bindError := reader.BindPFlags(flags); bindError != nil {
			return nil, fmt.Errorf(errorBindFlagsFormat, bindError)
		}
	}
	return reader, nil
}

// LoadAnnotateOptions resolves annotate options from flags and environment.
func LoadAnnotateOptions(flags *pflag.FlagSet) (AnnotateOptions, error) {
	reader, readerError := NewReader(flags)
	if readerError != nil {
		return AnnotateOptions{}, readerError
	}
	common, commonError := loadCommonOptions(reader)
	if commonError != nil {
		return AnnotateOptions{}, commonError
	}
	options := AnnotateOptions{
		CommonOptions: common,
		Check:         reader.GetBool(CheckFlagName),
		Atomic:        reader.GetBool(AtomicFlagName),
		Watch:         reader.GetBool(WatchFlagName),
	}
	if options.Watch && options.Check {
		return AnnotateOptions{}, fmt.Errorf(errorWatchCheckConflict)
	}
	return options, nil
}

// LoadTreeOptions resolves tree options from flags and environment.
func LoadTreeOptions(flags *pflag.FlagSet) (TreeOptions, error) {
	reader, readerError := NewReader(flags)
	if readerError != nil {
		return TreeOptions{}, readerError
	}
	common, commonError := loadCommonOptions(reader)
	if commonError != nil {
		return TreeOptions{}, commonError
	}
	return TreeOptions{
		CommonOptions: common,
		Clipboard:     reader.GetBool(ClipboardFlagName),
	}, nil
}

// LoadLogLevel resolves the log level from flags and environment.
func LoadLogLevel(flags *pflag.FlagSet) (string, error) {
	reader, readerError := NewReader(flags)
	if readerError != nil {
		return "", readerError
	}
	level := strings.ToLower(strings.TrimSpace(reader.GetString(LogLevelFlagName)))
	if level == "" {
		return utils.DefaultLogLevel, nil
	}
	switch level {
	case "debug", "info", "warn", "error":
		return level, nil
	default:
		return "", fmt.Errorf(errorInvalidLevelFormat, level)
	}
}

func loadCommonOptions(reader *viper.Viper) (CommonOptions, error) {
	format := strings.ToLower(strings.TrimSpace(reader.GetString(FormatFlagName)))
	if format == "" {
		format = types.FormatRaw
	}
	if !isSupportedFormat(format) {
		return CommonOptions{}, fmt.Errorf(errorInvalidFormatFormat, format)
	}
	return CommonOptions{
		Format:          format,
		ExcludePatterns: utils.DeduplicatePatterns(reader.GetStringSlice(ExcludeFlagName)),
		UseGitignore:    reader.GetBool(GitignoreFlagName),
	}, nil
}

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatYAML:
		return true
	default:
		return false
	}
}
