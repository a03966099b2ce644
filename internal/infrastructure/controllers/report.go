package controllers

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/rios0rios0/autochangeset/internal/domain/commands"
	"github.com/rios0rios0/autochangeset/internal/domain/entities"
)

// printGenerateReport writes the outcome of a generate run: what was
// created, what was skipped as private, or that nothing changed at all.
func printGenerateReport(out io.Writer, result *commands.GenerateResult) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if result.Skipped {
		fmt.Fprintf(out, "%s\n",
			yellow("Changesets were already committed for this range, nothing to do."))
		return
	}

	for _, record := range result.Detection.Records {
		if private, ok := record.(entities.PrivatePackage); ok {
			fmt.Fprintf(out, "%s %s\n",
				yellow("-"), dim(displayName(private.Package())+" skipped (private)"))
		}
	}

	for _, written := range result.Written {
		suffix := ""
		if written.WasRecreated {
			suffix = " " + dim("(replaced an earlier changeset)")
		}
		if written.Path == "" {
			fmt.Fprintf(out, "%s %s%s\n", yellow("~"),
				cyan("Would create changeset for "+written.Package), suffix)
			continue
		}
		fmt.Fprintf(out, "%s %s%s\n", green("✓"),
			cyan(fmt.Sprintf("Created changeset %s for %s", written.ID, written.Package)), suffix)
	}

	if len(result.Written) == 0 && result.Detection.PrivateCount() == 0 {
		fmt.Fprintf(out, "%s\n", dim("No changes found."))
		return
	}

	fmt.Fprintf(out, "%s\n", dim(fmt.Sprintf(
		"%d changesets created, %d packages skipped (private)",
		len(result.Written), result.Detection.PrivateCount(),
	)))
}

// printDetectReport writes every detected change per package, without
// touching anything on disk.
func printDetectReport(out io.Writer, result *commands.DetectionResult) {
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if len(result.Records) == 0 {
		fmt.Fprintf(out, "%s\n", dim("No dependency changes found."))
		return
	}

	for _, record := range result.Records {
		switch typed := record.(type) {
		case entities.PrivatePackage:
			fmt.Fprintf(out, "%s %s\n",
				white(displayName(typed.Package())), yellow("(private, skipped)"))
		case entities.PublicPackage:
			fmt.Fprintf(out, "%s %s\n", white(displayName(typed.Package())),
				dim(fmt.Sprintf("(%d changes)", len(typed.Changes()))))
			for _, change := range typed.Changes() {
				fmt.Fprintf(out, "    %s\n", formatChange(change))
			}
		}
	}

	fmt.Fprintf(out, "%s\n", dim(fmt.Sprintf(
		"%d manifests inspected, %d unmatched, %d recovered",
		result.ManifestFiles, result.Unmatched, result.Recovered,
	)))
}

// formatChange renders one change as an aligned report line.
func formatChange(change entities.DependencyChange) string {
	scope := ""
	if change.Scope != entities.ScopeProd {
		scope = fmt.Sprintf(" (%s)", change.Scope)
	}

	switch change.Kind {
	case entities.ChangeUpdated:
		return fmt.Sprintf("%-8s %s  %s → %s%s",
			change.Kind, change.Name, change.OldVersion, change.NewVersion, scope)
	case entities.ChangeAdded:
		return fmt.Sprintf("%-8s %s  %s%s",
			change.Kind, change.Name, change.NewVersion, scope)
	case entities.ChangeRemoved:
		return fmt.Sprintf("%-8s %s  was %s%s",
			change.Kind, change.Name, change.OldVersion, scope)
	default:
		return string(change.Kind) + " " + change.Name
	}
}

// displayName falls back to the package directory when the manifest carries
// no name.
func displayName(pkg entities.WorkspacePackage) string {
	if pkg.Name() != "" {
		return pkg.Name()
	}
	return pkg.RelDir
}
