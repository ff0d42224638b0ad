// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tvaleev/gitstructure/internal/commands"
	"github.com/tvaleev/gitstructure/internal/config"
	"github.com/tvaleev/gitstructure/internal/gitfiles"
	"github.com/tvaleev/gitstructure/internal/gitrepo"
	"github.com/tvaleev/gitstructure/internal/pathtree"
	"github.com/tvaleev/gitstructure/internal/render"
	"github.com/tvaleev/gitstructure/internal/services/clipboard"
	"github.com/tvaleev/gitstructure/internal/tokenizer"
	"github.com/tvaleev/gitstructure/internal/types"
	"github.com/tvaleev/gitstructure/internal/utils"
)

const (
	rootUse              = "gitstructure [directories...]"
	rootShortDescription = "render Git repository structure as YAML or a tree"
	rootLongDescription  = `gitstructure renders a Git repository's file listing as an indented
YAML document or a box-drawing tree diagram. Files are enumerated with
git ls-files, filtered by file-state toggles and exclusion patterns.`
	rootUsageExample = `  # Render the repository structure as YAML to stdout
  gitstructure

  # Render a tree diagram of two subdirectories to a file
  gitstructure src docs --format tree --output structure.txt

  # Exclude build artifacts and untracked files
  gitstructure -x "*.log" -x node_modules --others=false`

	repoFlagName            = "repo"
	outputFlagName          = "output"
	formatFlagName          = "format"
	verboseFlagName         = "verbose"
	excludeFlagName         = "exclude"
	othersFlagName          = "others"
	stageFlagName           = "stage"
	cachedFlagName          = "cached"
	excludeStandardFlagName = "exclude-standard"
	repoAsRootFlagName      = "repo-as-root"
	copyFlagName            = "copy"
	tokensFlagName          = "tokens"
	modelFlagName           = "model"
	indentFlagName          = "indent"
	indentWidthFlagName     = "indent-width"
	configFlagName          = "config"
	versionFlagName         = "version"

	repoFlagDescription            = "path to the Git repository root (default: current directory)"
	outputFlagDescription          = "output file (default: print to stdout)"
	formatFlagDescription          = "output format: yaml or tree"
	verboseFlagDescription         = "enable verbose output"
	excludeFlagDescription         = "pattern to exclude (repeatable)"
	othersFlagDescription          = "show untracked files"
	stageFlagDescription           = "show staged files"
	cachedFlagDescription          = "show cached/tracked files"
	excludeStandardFlagDescription = "use standard Git exclusions"
	repoAsRootFlagDescription      = "use the repository root as the root directory"
	copyFlagDescription            = "copy the rendered output to the clipboard"
	tokensFlagDescription          = "include token counts in tree format"
	modelFlagDescription           = "tokenizer model to use for token counting"
	indentFlagDescription          = "indentation type for yaml format: spaces or tabs"
	indentWidthFlagDescription     = "spaces per indentation level in yaml format"
	configFlagDescription          = "path to a configuration file"
	versionFlagDescription         = "display application version"

	versionTemplate          = "gitstructure version: %s\n"
	invalidFormatMessage     = "invalid format value '%s'"
	invalidIndentMessage     = "invalid indent value '%s'"
	workingDirectoryFormat   = "unable to determine working directory: %w"
	writeOutputFormat        = "writing output to %s: %w"
	copyOutputFormat         = "copying output to clipboard: %w"
	emptyResultCommentFormat = "# Nothing found that matched the specified options: %s\n"
	emptyResultLogMessage    = "no matching files found in the repository with the specified options"
	outputWrittenLogMessage  = "output written"
	tokenSummaryFormat       = "Summary: %d %s, %d tokens\n"
	singularFileLabel        = "file"
	pluralFileLabel          = "files"
	outputFilePermissionBits = 0o644
)

type structureOptions struct {
	repositoryPath  string
	outputPath      string
	format          string
	verbose         bool
	excludePatterns []string
	others          bool
	stage           bool
	cached          bool
	excludeStandard bool
	repoAsRoot      bool
	copyToClipboard bool
	tokensEnabled   bool
	tokenModel      string
	indentType      string
	indentWidth     int
	configPath      string
}

// Execute runs the gitstructure application.
func Execute() error {
	rootCommand := createRootCommand()
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command. The tool has a single
// command; directories are positional arguments.
func createRootCommand() *cobra.Command {
	var options structureOptions
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return runStructure(command, arguments, &options)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVar(&options.repositoryPath, repoFlagName, "", repoFlagDescription)
	flagSet.StringVarP(&options.outputPath, outputFlagName, "o", "", outputFlagDescription)
	flagSet.StringVarP(&options.format, formatFlagName, "f", types.FormatYAML, formatFlagDescription)
	flagSet.BoolVarP(&options.verbose, verboseFlagName, "v", false, verboseFlagDescription)
	flagSet.StringArrayVarP(&options.excludePatterns, excludeFlagName, "x", nil, excludeFlagDescription)
	registerBooleanFlag(flagSet, &options.others, othersFlagName, true, othersFlagDescription)
	registerBooleanFlag(flagSet, &options.stage, stageFlagName, true, stageFlagDescription)
	registerBooleanFlag(flagSet, &options.cached, cachedFlagName, false, cachedFlagDescription)
	registerBooleanFlag(flagSet, &options.excludeStandard, excludeStandardFlagName, true, excludeStandardFlagDescription)
	registerBooleanFlag(flagSet, &options.repoAsRoot, repoAsRootFlagName, true, repoAsRootFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	registerBooleanFlag(flagSet, &options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	flagSet.StringVar(&options.indentType, indentFlagName, types.IndentSpaces, indentFlagDescription)
	flagSet.IntVar(&options.indentWidth, indentWidthFlagName, types.DefaultIndentWidth, indentWidthFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// applyConfigurationDefaults overlays configuration-file values onto options
// whose flags were not explicitly set on the command line.
func applyConfigurationDefaults(command *cobra.Command, options *structureOptions, configuration config.StructureConfiguration) {
	flagSet := command.Flags()
	if !flagSet.Changed(formatFlagName) && configuration.Format != "" {
		options.format = configuration.Format
	}
	if !flagSet.Changed(indentFlagName) && configuration.Indent.Type != "" {
		options.indentType = configuration.Indent.Type
	}
	if !flagSet.Changed(indentWidthFlagName) && configuration.Indent.Width != nil {
		options.indentWidth = *configuration.Indent.Width
	}
	if len(configuration.Exclude) > 0 {
		options.excludePatterns = utils.DeduplicatePatterns(append(append([]string{}, configuration.Exclude...), options.excludePatterns...))
	}
	if !flagSet.Changed(othersFlagName) && configuration.Enumerate.Others != nil {
		options.others = *configuration.Enumerate.Others
	}
	if !flagSet.Changed(stageFlagName) && configuration.Enumerate.Stage != nil {
		options.stage = *configuration.Enumerate.Stage
	}
	if !flagSet.Changed(cachedFlagName) && configuration.Enumerate.Cached != nil {
		options.cached = *configuration.Enumerate.Cached
	}
	if !flagSet.Changed(excludeStandardFlagName) && configuration.Enumerate.ExcludeStandard != nil {
		options.excludeStandard = *configuration.Enumerate.ExcludeStandard
	}
	if !flagSet.Changed(copyFlagName) && configuration.Clipboard != nil {
		options.copyToClipboard = *configuration.Clipboard
	}
	if !flagSet.Changed(tokensFlagName) && configuration.Tokens.Enabled != nil {
		options.tokensEnabled = *configuration.Tokens.Enabled
	}
	if !flagSet.Changed(modelFlagName) && configuration.Tokens.Model != "" {
		options.tokenModel = configuration.Tokens.Model
	}
}

func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatYAML, types.FormatTree:
		return true
	default:
		return false
	}
}

func isSupportedIndentType(indentType string) bool {
	switch indentType {
	case types.IndentSpaces, types.IndentTabs:
		return true
	default:
		return false
	}
}

// runStructure executes the structure command with the provided options.
func runStructure(command *cobra.Command, directoryArguments []string, options *structureOptions) error {
	logger, loggerError := utils.NewApplicationLogger(options.verbose)
	if loggerError != nil {
		return loggerError
	}
	defer func() {
		_ = logger.Sync()
	}()

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: options.configPath})
	if configurationError != nil {
		return configurationError
	}
	applyConfigurationDefaults(command, options, applicationConfiguration.Structure)

	if !isSupportedFormat(options.format) {
		return fmt.Errorf(invalidFormatMessage, options.format)
	}
	if !isSupportedIndentType(options.indentType) {
		return fmt.Errorf(invalidIndentMessage, options.indentType)
	}

	basePath := options.repositoryPath
	if basePath == "" {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return fmt.Errorf(workingDirectoryFormat, workingDirectoryError)
		}
		basePath = workingDirectory
	}
	resolvedBasePath, resolveError := gitrepo.ResolvePath(basePath)
	if resolveError != nil {
		return resolveError
	}
	repositoryRoot, discoverError := gitrepo.Discover(resolvedBasePath)
	if discoverError != nil {
		return discoverError
	}
	logger.Debug("repository discovered", zap.String("root", repositoryRoot))

	treeRoot := repositoryRoot
	if !options.repoAsRoot {
		treeRoot = resolvedBasePath
	}

	scanDirectories := make([]string, 0, len(directoryArguments))
	for _, directoryArgument := range directoryArguments {
		resolvedDirectory, directoryError := gitrepo.ResolvePath(directoryArgument)
		if directoryError != nil {
			return directoryError
		}
		scanDirectories = append(scanDirectories, resolvedDirectory)
	}
	if len(scanDirectories) == 0 {
		scanDirectories = append(scanDirectories, treeRoot)
	}
	if validationError := gitrepo.ValidateDirectories(scanDirectories); validationError != nil {
		return validationError
	}

	enumeratorOptions := gitfiles.Options{
		Others:          options.others,
		Stage:           options.stage,
		Cached:          options.cached,
		ExcludeStandard: options.excludeStandard,
		Exclude:         utils.DeduplicatePatterns(options.excludePatterns),
	}

	forest, structureError := commands.GetStructureData(context.Background(), logger, commands.StructureRequest{
		RepositoryRoot: repositoryRoot,
		TreeRoot:       treeRoot,
		Directories:    scanDirectories,
		RepoAsRoot:     options.repoAsRoot,
		Options:        enumeratorOptions,
	})
	if structureError != nil {
		return structureError
	}
	logger.Debug("structure collected", zap.String("title", forest.Title()), zap.Int("nodes", forest.Len()))

	renderedContent, renderError := renderForest(forest, options, enumeratorOptions, logger)
	if renderError != nil {
		return renderError
	}

	return writeOutput(renderedContent, options, logger)
}

// renderForest produces the output document in the requested format,
// substituting the informational comment for an empty YAML result.
func renderForest(forest *pathtree.Forest, options *structureOptions, enumeratorOptions gitfiles.Options, logger *zap.Logger) (string, error) {
	if options.format == types.FormatTree {
		branchOptions := render.BranchOptions{}
		summarySuffix := ""
		if options.tokensEnabled {
			tokenCounter, _, counterError := tokenizer.NewCounter(options.tokenModel)
			if counterError != nil {
				return "", counterError
			}
			branchOptions.Tokens = commands.CollectTokenCounts(forest, tokenCounter, logger)
			summarySuffix = tokenSummaryLine(branchOptions.Tokens)
		}
		return render.Branches(forest, branchOptions) + summarySuffix, nil
	}

	renderedList := render.List(forest, render.ListOptions{
		IndentType:  options.indentType,
		IndentWidth: options.indentWidth,
	})
	if renderedList == "" {
		logger.Info(emptyResultLogMessage)
		return fmt.Sprintf(emptyResultCommentFormat, gitfiles.OptionsSet(enumeratorOptions)), nil
	}
	return renderedList, nil
}

func tokenSummaryLine(tokenCounts map[string]int) string {
	totalTokens := 0
	for _, tokenCount := range tokenCounts {
		totalTokens += tokenCount
	}
	fileLabel := pluralFileLabel
	if len(tokenCounts) == 1 {
		fileLabel = singularFileLabel
	}
	return fmt.Sprintf(tokenSummaryFormat, len(tokenCounts), fileLabel, totalTokens)
}

// writeOutput delivers the rendered content to the configured sinks: a file
// or stdout, plus optionally the system clipboard.
func writeOutput(renderedContent string, options *structureOptions, logger *zap.Logger) error {
	if options.outputPath != "" {
		if writeError := os.WriteFile(options.outputPath, []byte(renderedContent), outputFilePermissionBits); writeError != nil {
			return fmt.Errorf(writeOutputFormat, options.outputPath, writeError)
		}
		logger.Info(outputWrittenLogMessage, zap.String("path", options.outputPath))
	} else {
		fmt.Print(renderedContent)
	}

	if options.copyToClipboard {
		if copyError := clipboard.NewService().Copy(renderedContent); copyError != nil {
			return fmt.Errorf(copyOutputFormat, copyError)
		}
	}
	return nil
}
