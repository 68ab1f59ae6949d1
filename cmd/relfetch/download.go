package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ZebulonRouseFrantzich/relfetch/internal/download"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/installer"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/release"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/selector"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/verify"
)

// downloadOptions holds command-line flags for download
type downloadOptions struct {
	repo           release.Repository
	selectName     string
	automatic      bool
	tag            string
	output         string
	install        bool
	installName    string
	script         string
	verifyChecksum bool
	verifyKey      string
}

func newDownloadCmd(a *app) *cobra.Command {
	opts := &downloadOptions{}

	cmd := &cobra.Command{
		Use:   "download [flags] <owner/repo>",
		Short: "Download an asset of a release",
		Long: `Download an asset of the latest release, or of --tag.

The asset is picked interactively unless --select names it or --automatic
matches it against this system. A name given to --select may contain
"{tag}" where the release embeds its version:

  relfetch download -s 'tool-{tag}-x86_64-linux.tar.gz' acme/tool

With --install the executable inside the asset is installed into --output,
the configured install_dir or the working directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := release.ParseRepository(args[0])
			if err != nil {
				return err
			}
			opts.repo = repo

			if cmd.Flags().Changed("install-name") {
				opts.install = true
			}
			return runDownload(cmd.Context(), a, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.selectName, "select", "s", "", "Asset to download, with {tag} standing for the version")
	flags.BoolVarP(&opts.automatic, "automatic", "a", false, "Pick the asset that matches this system")
	flags.StringVarP(&opts.tag, "tag", "t", "", "Release tag (default latest)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file or directory")
	flags.BoolVarP(&opts.install, "install", "i", false, "Install the executable contained in the asset")
	flags.StringVar(&opts.installName, "install-name", "", "Name of the installed executable (default repository name, implies --install)")
	flags.StringVar(&opts.script, "script", "", "Lua script choosing the asset (implies --automatic)")
	flags.BoolVar(&opts.verifyChecksum, "verify-checksum", false, "Verify the asset against its published SHA256 checksum")
	flags.StringVar(&opts.verifyKey, "verify-key", "", "Verify the asset's detached signature with this OpenPGP keyring")
	return cmd
}

func runDownload(ctx context.Context, a *app, opts *downloadOptions) error {
	// Everything that can fail locally is checked before any download
	var destination string
	if opts.install {
		dir, err := installDestination(opts.output, a.settings.InstallDir)
		if err != nil {
			return err
		}
		destination = dir
	}
	if opts.verifyKey != "" {
		if _, err := verify.LoadKeyring(opts.verifyKey); err != nil {
			return err
		}
	}

	source, err := a.newSource(a.settings.GitHubToken, a.logger)
	if err != nil {
		return err
	}

	rel, err := fetchRelease(ctx, source, opts.repo, opts.tag)
	if err != nil {
		return err
	}

	asset, err := a.selectAsset(ctx, rel, opts)
	if err != nil {
		return err
	}
	a.logger.Debug("asset selected", zap.String("asset", asset.Name), zap.Stringer("tag", rel.Tag))

	outputPath := chooseOutputPath(opts.output, opts.install, asset.Name, isDir)
	if err := a.saveAsset(ctx, source, opts.repo, asset, outputPath, a.progress()); err != nil {
		return err
	}

	var artifact *installer.Artifact
	if opts.install {
		artifact = installer.Acquire(outputPath, a.logger)
		defer artifact.Release()
	}

	if err := a.verifyAsset(ctx, source, opts, rel, asset, outputPath); err != nil {
		// An unverified download is not kept
		if !opts.install {
			_ = installer.Acquire(outputPath, a.logger).Release()
		}
		return err
	}

	if !opts.install {
		fmt.Fprintf(a.stdout, "Saved %s to %s\n", asset.Name, outputPath)
		return nil
	}

	exe := installer.Executable{Name: opts.installName}
	if exe.Name == "" {
		exe.Name = opts.repo.Repo
	}

	inst := installer.New(installer.WithLogger(a.logger))
	installed, err := inst.InstallArtifact(ctx, artifact, asset.Name, destination, exe)
	if err != nil {
		return err
	}

	if installed == "" {
		fmt.Fprintf(a.stdout, "Installed %s\n", asset.Name)
	} else {
		fmt.Fprintf(a.stdout, "Installed %s to %s\n", exe.Name, installed)
	}
	return nil
}

func fetchRelease(ctx context.Context, source releaseSource, repo release.Repository, tag string) (*release.Release, error) {
	var t *release.Tag
	if tag != "" {
		t = &release.Tag{Value: tag}
	}

	rel, err := source.FetchRelease(ctx, repo, t)
	if err != nil {
		return nil, fmt.Errorf("fetch release: %w", err)
	}
	return rel, nil
}

func (a *app) selectAsset(ctx context.Context, rel *release.Release, opts *downloadOptions) (release.Asset, error) {
	switch {
	case opts.selectName != "":
		return release.FindTagged(rel, opts.selectName)
	case opts.automatic || opts.script != "":
		return a.automaticAsset(ctx, rel, opts)
	default:
		return askSelectAsset(a.stdin, a.stdout, "Pick the asset to download", rel.Assets)
	}
}

// automaticAsset matches the release against this system, through the
// selection script when one is given or configured.
func (a *app) automaticAsset(ctx context.Context, rel *release.Release, opts *downloadOptions) (release.Asset, error) {
	info, err := a.detector.Detect(ctx)
	if err != nil {
		return release.Asset{}, fmt.Errorf("detect platform: %w", err)
	}

	script := opts.script
	if script == "" {
		script = a.settings.SelectScript
	}

	if script != "" {
		a.logger.Debug("running selection script", zap.String("script", script), zap.Stringer("platform", info))
		name, ok, err := selector.SelectFile(ctx, script, info, rel.AssetNames())
		if err != nil {
			return release.Asset{}, err
		}
		if !ok {
			return release.Asset{}, fmt.Errorf("%s selected no asset: %w", script, release.ErrAssetNotFound)
		}
		return rel.FindByName(name)
	}

	asset, ok := release.MatchBySystem(info, rel.Assets)
	if !ok {
		return release.Asset{}, &release.NoMatchError{
			Repository:  opts.repo,
			Tag:         rel.Tag,
			OS:          info.OS,
			Arch:        info.Arch,
			ToolVersion: Version,
		}
	}
	return asset, nil
}

func (a *app) saveAsset(ctx context.Context, source releaseSource, repo release.Repository, asset release.Asset, path string, progress download.Progress) error {
	stream, body, err := source.DownloadAsset(ctx, repo, asset)
	if err != nil {
		return fmt.Errorf("download asset: %w", err)
	}
	defer body.Close()

	return download.Save(ctx, stream, path, progress)
}
