package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tvbrowse/internal/cache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the response cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheSweepCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	cacheCmd.AddCommand(newCacheForgetCommand(ctx))
	cacheCmd.AddCommand(newCacheWarmCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.ensureSession(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			entries, err := sess.cache.Entries(cmd.Context())
			if err != nil {
				return err
			}
			if handled, err := writeStructured(cmd, ctx.outputFormat(), entries); handled {
				return err
			}

			out := cmd.OutOrStdout()
			if !sess.cache.Persistent() {
				fmt.Fprintln(out, "Persistent cache unavailable: showing this run only")
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}
			fmt.Fprintln(out, renderTable(tableSpec{
				headers: []string{"URL", "Size", "Cached", "Expires", "State"},
				aligns:  []columnAlignment{alignLeft, alignRight},
			}, cacheRows(entries)))
			return nil
		},
	}
}

func cacheRows(entries []cache.EntryInfo) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		stateLabel := "fresh"
		if entry.Expired {
			stateLabel = "expired"
		}
		rows = append(rows, []string{
			entry.Key,
			humanize.Bytes(uint64(entry.Size)),
			humanize.Time(entry.CreatedAt),
			humanize.Time(entry.ExpiresAt),
			stateLabel,
		})
	}
	return rows
}

func newCacheSweepCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove expired cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.ensureSession(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			result, err := sess.cache.SweepExpired(cmd.Context())
			if err != nil {
				return err
			}
			if handled, err := writeStructured(cmd, ctx.outputFormat(), result); handled {
				return err
			}
			out := cmd.OutOrStdout()
			if result.Skipped {
				fmt.Fprintln(out, "Sweep skipped: another tvbrowse process is sweeping the cache")
				return nil
			}
			fmt.Fprintf(out, "Removed %d expired of %d cached entries\n", result.Removed, result.Scanned)
			if result.Malformed > 0 {
				fmt.Fprintf(out, "Skipped %d unreadable entries\n", result.Malformed)
			}
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.ensureSession(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			if err := sess.cache.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
			return nil
		},
	}
}

func newCacheForgetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "forget URL...",
		Short: "Remove specific cached responses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.ensureSession(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			for _, key := range args {
				if err := sess.cache.Forget(cmd.Context(), key); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Forgot %s\n", key)
			}
			return nil
		},
	}
}

func newCacheWarmCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var concurrency int

	cmd := &cobra.Command{
		Use:   "warm [SHOW_ID...]",
		Short: "Prefetch the show list and episode lists into the cache",
		Long: "Prefetch the show list plus the episode lists of the given shows. " +
			"Without ids, the first --limit shows of the sorted catalog are warmed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseShowID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sess, err := ctx.ensureSession(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			b := sess.browser
			if err := b.LoadShows(cmd.Context()); err != nil {
				return describeFetchError(err)
			}
			if len(ids) == 0 {
				for i, show := range b.FilteredShows() {
					if limit > 0 && i >= limit {
						break
					}
					ids = append(ids, show.ID)
				}
			}

			urls := make([]string, 0, len(ids))
			for _, id := range ids {
				urls = append(urls, sess.client.EpisodesURL(id))
			}
			if concurrency <= 0 {
				concurrency = cfg.Cache.WarmConcurrency
			}

			start := time.Now()
			warmErr := sess.fetcher.Warm(cmd.Context(), urls, concurrency)
			fmt.Fprintf(cmd.OutOrStdout(), "Warmed %d episode lists in %s\n",
				len(urls), time.Since(start).Round(time.Millisecond))
			if warmErr != nil {
				return fmt.Errorf("some episode lists failed: %w", warmErr)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of shows to warm when no ids are given (0 = all)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Parallel requests (defaults to cache.warm_concurrency)")
	return cmd
}
