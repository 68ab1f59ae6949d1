package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ZebulonRouseFrantzich/relfetch/internal/download"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/installer"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/release"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/verify"
)

// verifyAsset runs the verifications requested by opts against the saved
// asset at path.
func (a *app) verifyAsset(ctx context.Context, source releaseSource, opts *downloadOptions, rel *release.Release, asset release.Asset, path string) error {
	if opts.verifyChecksum {
		candidates := verify.ChecksumCandidates(asset.Name, rel.AssetNames())
		if len(candidates) == 0 {
			return fmt.Errorf("no checksum file published for %s", asset.Name)
		}

		err := a.withSupplemental(ctx, source, opts.repo, rel, candidates[0], func(checksums string) error {
			result, err := verify.Checksum(path, asset.Name, checksums)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Checksum of %s verified (%s)\n", asset.Name, candidates[0])
			a.logger.Debug("checksum verified", zap.String("method", string(result.Method)))
			return nil
		})
		if err != nil {
			return err
		}
	}

	if opts.verifyKey != "" {
		candidates := verify.SignatureCandidates(asset.Name, rel.AssetNames())
		if len(candidates) == 0 {
			return fmt.Errorf("no signature published for %s", asset.Name)
		}

		err := a.withSupplemental(ctx, source, opts.repo, rel, candidates[0], func(signature string) error {
			result, err := verify.Signature(path, signature, opts.verifyKey)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Signature of %s verified (%s)\n", asset.Name, result.Signer)
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// withSupplemental downloads the asset called name to a temporary file,
// passes its path to fn and removes it afterwards.
func (a *app) withSupplemental(ctx context.Context, source releaseSource, repo release.Repository, rel *release.Release, name string, fn func(path string) error) error {
	asset, err := rel.FindByName(name)
	if err != nil {
		return err
	}

	artifact := installer.Acquire(download.TempPath(), a.logger)
	defer artifact.Release()

	if err := a.saveAsset(ctx, source, repo, asset, artifact.Path(), download.NoProgress{}); err != nil {
		return err
	}
	return fn(artifact.Path())
}
