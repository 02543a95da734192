package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tvbrowse/internal/state"
)

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var search string
	var episode string
	var listOptions bool

	cmd := &cobra.Command{
		Use:   "episodes SHOW_ID",
		Short: "List the episodes of a show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			showID, err := parseShowID(args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(search) != "" && strings.TrimSpace(episode) != "" {
				return errors.New("--search and --episode are mutually exclusive")
			}

			sess, err := ctx.ensureSession(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			b := sess.browser
			// The show name is cosmetic; a catalog failure must not block the episode list.
			name := ""
			if err := b.LoadShows(cmd.Context()); err == nil {
				if show, ok := b.FindShow(showID); ok {
					name = show.Name
				}
			}
			if err := b.LoadShow(cmd.Context(), showID, name); err != nil {
				return describeFetchError(err)
			}
			if search != "" {
				b.SetEpisodeSearch(search)
			}
			if episode != "" {
				b.SelectEpisode(episode)
			}

			out := cmd.OutOrStdout()
			if listOptions {
				if handled, err := writeStructured(cmd, ctx.outputFormat(), b.EpisodeOptions()); handled {
					return err
				}
				renderer{}.renderOptions(out, b.EpisodeOptions(), b.Snapshot().SelectedEpisodeCode)
				return nil
			}

			vm := b.ViewModel()
			if handled, err := writeStructured(cmd, ctx.outputFormat(), newListOutput(vm)); handled {
				return err
			}
			renderer{colorize: shouldColorize(out)}.render(out, vm)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive text to match in episode name or summary")
	cmd.Flags().StringVarP(&episode, "episode", "e", "", "Show a single episode by code, e.g. S01E02 ("+state.AllEpisodes+" for every episode)")
	cmd.Flags().BoolVar(&listOptions, "codes", false, "List the episode selector codes instead of episodes")
	return cmd
}

func parseShowID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid show id %q: must be a positive integer", raw)
	}
	return id, nil
}
