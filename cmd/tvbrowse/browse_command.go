package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tvbrowse/internal/browser"
	"tvbrowse/internal/state"
)

const browseHelp = `Commands:
  search TEXT    filter the current list (empty TEXT clears the filter)
  open ID        show the episodes of show ID
  select CODE    show one episode, e.g. S01E02 ("all" for every episode)
  codes          list the episode codes of the current show
  back           return to the show list
  list           redraw the current list
  help           show this help
  quit           leave the session`

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse shows and episodes interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.ensureSession(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			out := cmd.OutOrStdout()
			r := renderer{colorize: shouldColorize(out)}
			if err := sess.browser.LoadShows(cmd.Context()); err != nil {
				r.renderError(out, describeFetchError(err))
			}
			r.render(out, sess.browser.ViewModel())

			repl := &browseSession{browser: sess.browser, out: out, render: r}
			return repl.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

type browseSession struct {
	browser *browser.Browser
	out     io.Writer
	render  renderer
}

var errQuit = errors.New("quit")

func (s *browseSession) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	s.prompt()
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.handle(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			s.render.renderError(s.out, err)
		}
		s.prompt()
	}
	return scanner.Err()
}

func (s *browseSession) prompt() {
	fmt.Fprint(s.out, "tvbrowse> ")
}

// handle applies one input line: at most one state change, then a redraw.
func (s *browseSession) handle(ctx context.Context, line string) error {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	view := s.browser.Snapshot().View

	switch strings.ToLower(verb) {
	case "":
		return nil
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		fmt.Fprintln(s.out, browseHelp)
		return nil
	case "list", "ls":
	case "search", "/":
		if view == state.ViewShows {
			s.browser.SetShowSearch(arg)
		} else {
			s.browser.SetEpisodeSearch(arg)
		}
	case "open":
		id, err := parseShowID(arg)
		if err != nil {
			return err
		}
		if err := s.browser.OpenShow(ctx, id); err != nil && !errors.Is(err, browser.ErrStale) {
			s.render.render(s.out, s.browser.ViewModel())
			return describeFetchError(err)
		}
	case "select":
		if view != state.ViewEpisodes {
			return errors.New("select works in the episode list; open a show first")
		}
		s.browser.SelectEpisode(arg)
	case "codes":
		if view != state.ViewEpisodes {
			return errors.New("codes works in the episode list; open a show first")
		}
		s.render.renderOptions(s.out, s.browser.EpisodeOptions(), s.browser.Snapshot().SelectedEpisodeCode)
		return nil
	case "back":
		s.browser.BackToShows()
	default:
		return fmt.Errorf("unknown command %q (type help)", verb)
	}
	s.render.render(s.out, s.browser.ViewModel())
	return nil
}
