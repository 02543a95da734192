package main

import (
	"github.com/spf13/cobra"
)

func newShowsCommand(ctx *commandContext) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "shows",
		Short: "List shows, optionally filtered by a search term",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.ensureSession(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			b := sess.browser
			if err := b.LoadShows(cmd.Context()); err != nil {
				return describeFetchError(err)
			}
			b.SetShowSearch(search)

			vm := b.ViewModel()
			if handled, err := writeStructured(cmd, ctx.outputFormat(), newListOutput(vm)); handled {
				return err
			}
			renderer{colorize: shouldColorize(cmd.OutOrStdout())}.render(cmd.OutOrStdout(), vm)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive text to match in name, summary, or genres")
	return cmd
}
