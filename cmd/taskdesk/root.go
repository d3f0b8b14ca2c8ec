package main

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command. Resources opened by the
// commands are released by a.close.
func NewRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "taskdesk",
		Short:         "Manage todos on a remote task service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoSetup] == "true" {
				return nil
			}
			a.out, a.errOut = cmd.OutOrStdout(), cmd.ErrOrStderr()
			if err := a.setup(cmd.Context()); err != nil {
				return err
			}
			cmd.SetContext(a.withSession(cmd.Context()))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file path")

	rootCmd.AddCommand(
		NewLoginCommand(a),
		NewLogoutCommand(a),
		NewWhoamiCommand(a),
		NewListCommand(a),
		NewAssigneesCommand(a),
		NewShowCommand(a),
		NewAddCommand(a),
		NewEditCommand(a),
		NewRevokeCommand(a),
		NewDeleteCommand(a),
		NewShellCommand(a),
		NewVersionCommand(),
	)

	return rootCmd
}

// annotationNoSetup marks commands that run without configuration.
const annotationNoSetup = "taskdesk/no-setup"
