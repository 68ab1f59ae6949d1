package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "relfetch",
		Short: "Download and install assets from GitHub releases",
		Long: `relfetch downloads assets from GitHub releases, picking the right one
for this system or by name, and optionally installs the executable inside.

GITHUB_TOKEN (or RELFETCH_GITHUB_TOKEN) is used for API requests when set.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Flags(), configFile)
		},
	}

	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().Bool("debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/relfetch/config.yaml)")

	root.AddCommand(newDownloadCmd(a), newUntagCmd(a))
	return root
}
