package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/relfetch/internal/release"
)

func newUntagCmd(a *app) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "untag [flags] <owner/repo>",
		Short: "Print asset names with the version replaced by {tag}",
		Long: `Print the asset names of a release with its version replaced by {tag}.

The output is suitable for download --select and keeps working for later
releases that follow the same naming.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := release.ParseRepository(args[0])
			if err != nil {
				return err
			}

			source, err := a.newSource(a.settings.GitHubToken, a.logger)
			if err != nil {
				return err
			}

			rel, err := fetchRelease(cmd.Context(), source, repo, tag)
			if err != nil {
				return err
			}

			for _, asset := range rel.Assets {
				fmt.Fprintln(a.stdout, release.Untag(rel.Tag, asset.Name))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Release tag (default latest)")
	return cmd
}
