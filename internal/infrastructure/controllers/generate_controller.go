package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/autochangeset/internal/domain/commands"
	"github.com/rios0rios0/autochangeset/internal/domain/entities"
)

// GenerateController handles the "generate" subcommand (the main flow).
type GenerateController struct {
	command commands.Generate
}

// NewGenerateController creates a new GenerateController.
func NewGenerateController(command commands.Generate) *GenerateController {
	return &GenerateController{command: command}
}

// GetBind returns the Cobra command metadata for the generate controller.
func (it *GenerateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "generate [path]",
		Short: "Generate changesets for dependency changes in a commit range",
		Long: `Compare the dependency manifests of two Git refs and write one
changeset per workspace package whose dependencies changed.

Private packages never receive changesets. Changesets written by an
earlier run for the same packages are replaced; hand-authored ones are
left untouched.`,
	}
}

// Execute runs the changeset generation.
func (it *GenerateController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	opts, err := it.buildOptions(cmd, args)
	if err != nil {
		return err
	}

	result, runErr := it.command.Execute(ctx, opts)
	if runErr != nil {
		return runErr
	}

	printGenerateReport(cmd.OutOrStdout(), result)
	return nil
}

// AddFlags adds the generate-specific flags to the given Cobra command.
func (it *GenerateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("base", "",
		"Base ref of the commit range (branch, tag, or hash)")
	cmd.Flags().String("head", "HEAD",
		"Head ref of the commit range")
	cmd.Flags().String("bump", "",
		"Release bump type: patch, minor, or major (default from config)")
	cmd.Flags().StringSlice("scope", nil,
		"Extra dependency scopes to inspect: dev, peer, optional (prod is always on)")
	cmd.Flags().Bool("skip-committed", false,
		"Skip generation when the range already contains a changeset commit")
	_ = cmd.MarkFlagRequired("base")
}

// buildOptions merges file settings and CLI flags, flags winning.
func (it *GenerateController) buildOptions(
	cmd *cobra.Command,
	args []string,
) (commands.GenerateOptions, error) {
	repoDir := "."
	if len(args) > 0 {
		repoDir = args[0]
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return commands.GenerateOptions{}, err
	}

	baseRef, _ := cmd.Flags().GetString("base")
	headRef, _ := cmd.Flags().GetString("head")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	bump, bumpErr := resolveBump(cmd, settings)
	if bumpErr != nil {
		return commands.GenerateOptions{}, bumpErr
	}

	scopes, scopesErr := resolveScopes(cmd, settings)
	if scopesErr != nil {
		return commands.GenerateOptions{}, scopesErr
	}

	skipIfCommitted := settings.SkipIfCommitted
	if cmd.Flags().Changed("skip-committed") {
		skipIfCommitted, _ = cmd.Flags().GetBool("skip-committed")
	}

	return commands.GenerateOptions{
		RepoDir:         repoDir,
		BaseRef:         baseRef,
		HeadRef:         headRef,
		Bump:            bump,
		Scopes:          scopes,
		ChangesetDir:    settings.ChangesetDir,
		DryRun:          dryRun,
		Verbose:         verbose,
		SkipIfCommitted: skipIfCommitted,
	}, nil
}
