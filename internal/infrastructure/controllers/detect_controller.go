package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/autochangeset/internal/domain/commands"
	"github.com/rios0rios0/autochangeset/internal/domain/entities"
)

// DetectController handles the "detect" subcommand (inspection only).
type DetectController struct {
	command commands.Detect
}

// NewDetectController creates a new DetectController.
func NewDetectController(command commands.Detect) *DetectController {
	return &DetectController{command: command}
}

// GetBind returns the Cobra command metadata for the detect controller.
func (it *DetectController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "detect [path]",
		Short: "Show dependency changes in a commit range without writing anything",
		Long: `Compare the dependency manifests of two Git refs and print every
dependency change per workspace package. No changeset is written; use
this to preview what "generate" would pick up.`,
	}
}

// Execute runs the detection and prints the findings.
func (it *DetectController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	repoDir := "."
	if len(args) > 0 {
		repoDir = args[0]
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	baseRef, _ := cmd.Flags().GetString("base")
	headRef, _ := cmd.Flags().GetString("head")
	verbose, _ := cmd.Flags().GetBool("verbose")

	scopes, scopesErr := resolveScopes(cmd, settings)
	if scopesErr != nil {
		return scopesErr
	}

	result, runErr := it.command.Execute(ctx, commands.DetectOptions{
		RepoDir: repoDir,
		BaseRef: baseRef,
		HeadRef: headRef,
		Scopes:  scopes,
		Verbose: verbose,
	})
	if runErr != nil {
		return runErr
	}

	printDetectReport(cmd.OutOrStdout(), result)
	return nil
}

// AddFlags adds the detect-specific flags to the given Cobra command.
func (it *DetectController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("base", "",
		"Base ref of the commit range (branch, tag, or hash)")
	cmd.Flags().String("head", "HEAD",
		"Head ref of the commit range")
	cmd.Flags().StringSlice("scope", nil,
		"Extra dependency scopes to inspect: dev, peer, optional (prod is always on)")
	_ = cmd.MarkFlagRequired("base")
}
