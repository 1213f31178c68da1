package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dastanaron/bookmarks-flatten/internal/commands"
)

func newBrowseCommand(a *app) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the merged bookmarks by label in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewBrowseCommand(a.logger).Execute(cmd.Context(), input)
		},
	}
	cmd.Flags().StringVarP(&input, "bookmarks", "b", "", "read browser bookmarks from `FILE`")
	return cmd
}

func newDoublesCommand(a *app) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "doubles",
		Short: "List addresses bookmarked more than once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewDoublesCommand(a.logger, a.stdout, a.cfg.Output.Colors).Execute(cmd.Context(), input)
		},
	}
	cmd.Flags().StringVarP(&input, "bookmarks", "b", "", "read browser bookmarks from `FILE`")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bookmarks-flatten %s\n", version)
		},
	}
}
