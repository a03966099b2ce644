package commands

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/autochangeset/internal/domain/entities"
	"github.com/rios0rios0/autochangeset/internal/domain/repositories"
)

// Detect is the interface for the change detection step.
type Detect interface {
	Execute(ctx context.Context, opts DetectOptions) (*DetectionResult, error)
}

// DetectOptions holds runtime options for a single detection run.
type DetectOptions struct {
	RepoDir string
	BaseRef string
	HeadRef string
	Scopes  []entities.DependencyScope // unioned onto the production scope
	Verbose bool
}

// DetectionResult is the outcome of one detection run.
type DetectionResult struct {
	Records       []entities.ChangedPackage
	ManifestFiles int // manifest files considered from the range diff
	Unmatched     int // changed manifests with no owning workspace package
	Recovered     int // manifests skipped after a read or parse failure
}

// PublicPackages returns the records that need a changeset.
func (r *DetectionResult) PublicPackages() []entities.PublicPackage {
	var packages []entities.PublicPackage
	for _, record := range r.Records {
		if public, ok := record.(entities.PublicPackage); ok {
			packages = append(packages, public)
		}
	}
	return packages
}

// PrivateCount returns how many changed packages were excluded as private.
func (r *DetectionResult) PrivateCount() int {
	count := 0
	for _, record := range r.Records {
		if _, ok := record.(entities.PrivatePackage); ok {
			count++
		}
	}
	return count
}

// DetectCommand compares the dependency manifests of two Git refs and maps
// the deltas onto workspace packages.
type DetectCommand struct {
	git       repositories.GitRepository
	workspace repositories.WorkspaceRepository
}

// NewDetectCommand creates a new DetectCommand with the given repositories.
func NewDetectCommand(
	git repositories.GitRepository,
	workspace repositories.WorkspaceRepository,
) *DetectCommand {
	return &DetectCommand{
		git:       git,
		workspace: workspace,
	}
}

// Execute runs the detection pipeline for one commit range.
func (it *DetectCommand) Execute(
	ctx context.Context,
	opts DetectOptions,
) (*DetectionResult, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	repoDir, err := filepath.Abs(opts.RepoDir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	changed, diffErr := it.git.ChangedFiles(ctx, repoDir, opts.BaseRef, opts.HeadRef)
	if diffErr != nil {
		return nil, fmt.Errorf("failed to diff %s..%s: %w", opts.BaseRef, opts.HeadRef, diffErr)
	}

	manifests := manifestFiles(changed)
	//nolint:exhaustruct // counters start at zero
	result := &DetectionResult{ManifestFiles: len(manifests)}
	if len(manifests) == 0 {
		logger.Info("No manifest changes in range, nothing to do.")
		return result, nil
	}
	logger.Infof("Found %d changed manifests between %s and %s",
		len(manifests), opts.BaseRef, opts.HeadRef)

	workspace, workspaceErr := it.workspace.ListPackages(repoDir)
	if workspaceErr != nil {
		return nil, workspaceErr
	}
	logger.Infof("Resolved %d workspace packages", len(workspace.All()))

	scopes := entities.NormalizeScopes(opts.Scopes)

	for _, file := range manifests {
		pkg, found := workspace.FindByManifestPath(file.Path)
		if !found {
			logger.Warnf("Changed manifest %q does not belong to any workspace package, skipping", file.Path)
			result.Unmatched++
			continue
		}

		if pkg.IsPrivate() {
			logger.Debugf("Package %q is private, excluded from changesets", pkg.Name())
			result.Records = append(result.Records, entities.NewPrivatePackage(pkg))
			continue
		}

		if pkg.Name() == "" {
			logger.Warnf("Changed manifest %q declares no package name, skipping", file.Path)
			result.Recovered++
			continue
		}

		changes, manifestErr := it.diffManifest(ctx, repoDir, file, opts, scopes)
		if manifestErr != nil {
			logger.Warnf("Failed to read manifest %q in range, skipping: %v", file.Path, manifestErr)
			result.Recovered++
			continue
		}
		if len(changes) == 0 {
			logger.Debugf("Manifest %q changed without dependency changes", file.Path)
			continue
		}

		warnDowngrades(pkg, changes)
		result.Records = append(result.Records, entities.NewPublicPackage(pkg, changes))
	}

	logger.Infof(
		"Detection complete: %d packages with dependency changes, %d private, %d skipped",
		len(result.PublicPackages()), result.PrivateCount(), result.Unmatched+result.Recovered,
	)
	return result, nil
}

// diffManifest loads both sides of one manifest concurrently and diffs them.
// A manifest added within the range has no base side; it diffs against an
// empty manifest, so every entry classifies as added.
func (it *DetectCommand) diffManifest(
	ctx context.Context,
	repoDir string,
	file entities.ChangedFile,
	opts DetectOptions,
	scopes []entities.DependencyScope,
) ([]entities.DependencyChange, error) {
	var base, head entities.ManifestSnapshot

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if file.Status == entities.StatusAdded {
			return nil
		}
		var baseErr error
		base, baseErr = it.manifestAt(groupCtx, repoDir, opts.BaseRef, file.Path)
		return baseErr
	})
	group.Go(func() error {
		var headErr error
		head, headErr = it.manifestAt(groupCtx, repoDir, opts.HeadRef, file.Path)
		return headErr
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return entities.DiffManifests(base, head, scopes), nil
}

// manifestAt fetches and parses one manifest at one ref.
func (it *DetectCommand) manifestAt(
	ctx context.Context,
	repoDir, ref, path string,
) (entities.ManifestSnapshot, error) {
	data, err := it.git.FileContent(ctx, repoDir, ref, path)
	if err != nil {
		return entities.ManifestSnapshot{}, err
	}
	return entities.ParseManifest(data)
}

// manifestFiles filters a range diff down to the manifests worth diffing.
func manifestFiles(changed []entities.ChangedFile) []entities.ChangedFile {
	var manifests []entities.ChangedFile
	for _, file := range changed {
		if file.IsManifest() {
			manifests = append(manifests, file)
		}
	}
	return manifests
}

// warnDowngrades logs a warning for every updated dependency whose version
// range moved backwards.
func warnDowngrades(pkg entities.WorkspacePackage, changes []entities.DependencyChange) {
	for _, change := range changes {
		if change.Delta() == entities.DeltaDowngrade {
			logger.Warnf("Package %q downgrades %q from %q to %q",
				pkg.Name(), change.Name, change.OldVersion, change.NewVersion)
		}
	}
}
