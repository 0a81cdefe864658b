package cli

import (
	"github.com/spf13/cobra"

	"github.com/temirov/pathstamp/internal/config"
	"github.com/temirov/pathstamp/internal/matcher"
	"github.com/temirov/pathstamp/internal/output"
	"github.com/temirov/pathstamp/internal/tree"
	"github.com/temirov/pathstamp/internal/types"
	"github.com/temirov/pathstamp/internal/walker"
)

const (
	treeUse              = "tree [path]"
	treeAlias            = "t"
	treeShortDescription = "display the project tree (" + treeAlias + ")"
	treeLongDescription  = `Print directories and files below path, directories first, with remarks
for well-known files. Dotfiles, dependency and build folders are left out.
Use --format to select raw, json, or yaml output.`
	treeUsageExample = `  # Render the current project
  pathstamp tree

  # Render a service as YAML, skipping what git ignores
  pathstamp tree --format yaml --gitignore ./backend

  # Copy the tree for pasting into a document
  pathstamp tree --clipboard`

	clipboardFlagDescription = "also copy the raw tree to the system clipboard"
)

// createTreeCommand returns the tree subcommand.
func createTreeCommand(dependencies Dependencies) *cobra.Command {
	var sharedFlags scanFlags
	var clipboardEnabled bool

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			options, optionsError := config.LoadTreeOptions(command.Flags())
			if optionsError != nil {
				return optionsError
			}
			root, rootError := rootDirectory(arguments)
			if rootError != nil {
				return rootError
			}
			return runTree(command, dependencies, root.AbsolutePath, options)
		},
	}

	addScanFlags(treeCommand, &sharedFlags)
	registerBooleanFlag(treeCommand.Flags(), &clipboardEnabled, config.ClipboardFlagName, clipboardFlagDescription)
	return treeCommand
}

// runTree renders root and writes it to the command output, copying the raw text when requested.
func runTree(command *cobra.Command, dependencies Dependencies, root string, options config.TreeOptions) error {
	configuration := config.DefaultTreeConfiguration()
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
	filter := walker.NewFilter(root, nameMatcher, pathFilter)
	filter.OnReadError = debugUnreadableDirectory(dependencies.Logger)
	renderer := tree.NewRenderer(filter, configuration.Remarks)

	rawText := renderer.RenderRoot(root)
	var node *types.TreeNode
	if options.Format != types.FormatRaw {
		node = renderer.Build(root)
	}
	if writeError := output.WriteTree(command.OutOrStdout(), options.Format, rawText, node); writeError != nil {
		return writeError
	}
	if options.Clipboard {
		return dependencies.Clipboard.Copy(rawText)
	}
	return nil
}
