package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"tvbrowse/internal/browser"
	"tvbrowse/internal/state"
	"tvbrowse/internal/textutil"
)

const summaryLimit = 160

// listOutput is the structured (json/yaml) form of a list view.
type listOutput struct {
	View        state.View            `json:"view"`
	Count       string                `json:"count"`
	Displayed   int                   `json:"displayed"`
	Total       int                   `json:"total"`
	Search      string                `json:"search,omitempty"`
	CurrentShow *state.ShowRef        `json:"current_show,omitempty"`
	Selected    string                `json:"selected_episode,omitempty"`
	Shows       []browser.ShowCard    `json:"shows,omitempty"`
	Episodes    []browser.EpisodeCard `json:"episodes,omitempty"`
}

func newListOutput(vm browser.ViewModel) listOutput {
	out := listOutput{
		View:      vm.View,
		Count:     vm.CountLabel(),
		Displayed: vm.Displayed,
		Total:     vm.Total,
		Search:    vm.HighlightTerm,
	}
	if vm.View == state.ViewShows {
		out.Shows = make([]browser.ShowCard, 0, len(vm.Shows))
		for _, show := range vm.Shows {
			out.Shows = append(out.Shows, browser.NewShowCard(show).Mark(vm.HighlightTerm))
		}
		return out
	}
	current := vm.CurrentShow
	out.CurrentShow = &current
	if vm.SelectedEpisode != state.AllEpisodes {
		out.Selected = vm.SelectedEpisode
	}
	out.Episodes = make([]browser.EpisodeCard, 0, len(vm.Episodes))
	for _, ep := range vm.Episodes {
		out.Episodes = append(out.Episodes, browser.NewEpisodeCard(ep).Mark(vm.HighlightTerm))
	}
	return out
}

type renderer struct {
	colorize bool
}

func (r renderer) highlight(text, term string) string {
	if !r.colorize || term == "" {
		return text
	}
	return textutil.HighlightFunc(text, term, ansiMark)
}

func (r renderer) paint(code, text string) string {
	if !r.colorize {
		return text
	}
	return code + text + ansiReset
}

// render projects vm onto w as a title, a table, and the count line.
func (r renderer) render(w io.Writer, vm browser.ViewModel) {
	if vm.View == state.ViewShows {
		r.renderShows(w, vm)
	} else {
		r.renderEpisodes(w, vm)
	}
	fmt.Fprintln(w, r.paint(ansiCyan, vm.CountLabel()))
}

func (r renderer) renderShows(w io.Writer, vm browser.ViewModel) {
	title := "Shows"
	if vm.HighlightTerm != "" {
		title = fmt.Sprintf("Shows matching %q", vm.HighlightTerm)
	}
	fmt.Fprintln(w, r.paint(ansiBold, title))

	rows := make([][]string, 0, len(vm.Shows))
	for _, show := range vm.Shows {
		card := browser.NewShowCard(show)
		rows = append(rows, []string{
			strconv.FormatInt(card.ID, 10),
			r.highlight(card.Title, vm.HighlightTerm),
			card.Genres,
			card.Status,
			card.Rating,
			card.Runtime,
			r.highlight(textutil.Truncate(card.Summary, summaryLimit), vm.HighlightTerm),
			card.Image,
		})
	}
	fmt.Fprintln(w, renderTable(tableSpec{
		headers:   []string{"ID", "Name", "Genres", "Status", "Rating", "Runtime", "Summary", "Image"},
		aligns:    []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
		maxWidths: []int{0, 30, 24, 0, 0, 0, 60, 0},
	}, rows))
}

func (r renderer) renderEpisodes(w io.Writer, vm browser.ViewModel) {
	title := fmt.Sprintf("Episodes of %s (show %d)", vm.CurrentShow.Name, vm.CurrentShow.ID)
	if strings.TrimSpace(vm.CurrentShow.Name) == "" {
		title = fmt.Sprintf("Episodes of show %d", vm.CurrentShow.ID)
	}
	fmt.Fprintln(w, r.paint(ansiBold, title))
	if vm.Loading {
		fmt.Fprintln(w, "Loading episodes...")
		return
	}

	rows := make([][]string, 0, len(vm.Episodes))
	for _, ep := range vm.Episodes {
		card := browser.NewEpisodeCard(ep)
		rows = append(rows, []string{
			card.Code,
			r.highlight(card.Title, vm.HighlightTerm),
			r.highlight(textutil.Truncate(card.Summary, summaryLimit), vm.HighlightTerm),
			card.Link,
			card.Image,
		})
	}
	fmt.Fprintln(w, renderTable(tableSpec{
		headers:   []string{"Code", "Title", "Summary", "Link", "Image"},
		maxWidths: []int{0, 40, 60, 0, 0},
	}, rows))
}

// renderOptions lists the episode selector entries.
func (r renderer) renderOptions(w io.Writer, opts []browser.EpisodeOption, selected string) {
	for _, opt := range opts {
		marker := "  "
		if opt.Value == selected {
			marker = "> "
		}
		fmt.Fprintln(w, marker+opt.Label)
	}
}

func (r renderer) renderError(w io.Writer, err error) {
	fmt.Fprintln(w, r.paint(ansiRed, "error: "+err.Error()))
}
