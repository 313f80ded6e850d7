package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/toddlburns/yt-tracker/internal/artist"
	"github.com/toddlburns/yt-tracker/internal/config"
	"github.com/toddlburns/yt-tracker/internal/database"
	"github.com/toddlburns/yt-tracker/internal/ingest"
	"github.com/toddlburns/yt-tracker/internal/knowledge"
	"github.com/toddlburns/yt-tracker/internal/output"
	"github.com/toddlburns/yt-tracker/internal/pipeline"
	"github.com/toddlburns/yt-tracker/internal/provider"
	"github.com/toddlburns/yt-tracker/internal/provider/wikipedia"
	"github.com/toddlburns/yt-tracker/internal/record"
	"github.com/toddlburns/yt-tracker/internal/scraped"
)

func newScrapeCommand(cc *commandContext) *cobra.Command {
	var fromRoster bool
	var limit int

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Look up missing artist birthdays on Wikipedia and Wikidata",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := cc.cfg
			logger := cc.logger.With(slog.String("command", "scrape"))

			db, err := database.Open(ctx, cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck
			if err := database.Migrate(ctx, db); err != nil {
				return err
			}
			svc := scraped.NewService(db)

			if err := importScraped(cmd, svc, cfg.Inputs.Scraped, logger); err != nil {
				return err
			}

			targets, err := scrapeTargets(cmd, cc, svc, fromRoster)
			if err != nil {
				return err
			}
			if limit > 0 && len(targets) > limit {
				targets = targets[:limit]
			}
			if len(targets) == 0 {
				logger.Info("no artists to look up")
				return nil
			}

			resolver := newResolver(cfg.Knowledge, cc)
			run, err := svc.StartRun(ctx)
			if err != nil {
				return err
			}
			logger.Info("scrape started", slog.String("run_id", run.ID), slog.Int("targets", len(targets)))

			results := resolver.ResolveAll(ctx, targets)
			entries, found := scrapeEntries(results)
			interrupted := ctx.Err()
			// Partial results are stored even when the run was interrupted.
			ctx = context.WithoutCancel(ctx)
			if err := svc.Save(ctx, run.ID, entries); err != nil {
				return err
			}
			if err := svc.FinishRun(ctx, run, len(results), found); err != nil {
				return err
			}
			stored, err := svc.GetRun(ctx, run.ID)
			if err != nil {
				return err
			}
			logger.Info("scrape finished",
				slog.String("run_id", stored.ID),
				slog.Int("targets", stored.Targets),
				slog.Int("found", stored.Found),
				slog.Duration("elapsed", stored.FinishedAt.Sub(stored.StartedAt)))

			all, err := svc.Entries(ctx)
			if err != nil {
				return err
			}
			rows := make([]record.ScrapedBirthday, 0, len(all))
			for _, e := range all {
				rows = append(rows, e.ScrapedBirthday)
			}
			if err := output.WriteScrapedCSV(cfg.Output.ScrapedCSV, rows); err != nil {
				return err
			}
			logger.Info("scraped birthdays written",
				slog.String("path", cfg.Output.ScrapedCSV),
				slog.Int("rows", len(rows)))
			cc.metrics.MarkRun(time.Now().Unix())

			fmt.Fprintln(cmd.OutOrStdout(), scrapeSummary(results))
			return interrupted
		},
	}

	cmd.Flags().BoolVar(&fromRoster, "from-roster", false, "Look up every roster artist without a known birthday instead of the stored missing list")
	cmd.Flags().IntVar(&limit, "limit", 0, "Look up at most this many artists (0 means no limit)")
	return cmd
}

// importScraped loads an existing scraped table into the store.
func importScraped(cmd *cobra.Command, svc *scraped.Service, path string, logger *slog.Logger) error {
	rows, err := ingest.ReadKeyedCSV(path)
	if err != nil {
		return err
	}
	if rows == nil {
		return nil
	}
	n, err := svc.Import(cmd.Context(), rows)
	if err != nil {
		return err
	}
	logger.Info("scraped table imported", slog.String("path", path), slog.Int("rows", n))
	return nil
}

// scrapeTargets returns the stored entries without a birthday, or, with
// fromRoster, every roster artist the extracted dataset leaves uncovered.
func scrapeTargets(cmd *cobra.Command, cc *commandContext, svc *scraped.Service, fromRoster bool) ([]record.MissingArtist, error) {
	if fromRoster {
		src, err := readSources(cc.cfg, cc.logger)
		if err != nil {
			return nil, err
		}
		p := pipeline.New(artist.DefaultRoster(), cc.cfg.Discovery.HostMarker, cc.logger, cc.metrics)
		ds, err := p.Run(src)
		if err != nil {
			return nil, err
		}
		return ds.MissingBirthdays(), nil
	}

	entries, err := svc.Entries(cmd.Context())
	if err != nil {
		return nil, err
	}
	return missingTargets(entries), nil
}

// missingTargets lists the artists whose stored rows carry no birthday, once
// each and in store order.
func missingTargets(entries []scraped.Entry) []record.MissingArtist {
	seen := make(map[string]bool)
	var out []record.MissingArtist
	for _, e := range entries {
		if e.Found() || seen[e.ArtistName] {
			continue
		}
		seen[e.ArtistName] = true
		out = append(out, record.MissingArtist{ArtistName: e.ArtistName, ArtistPageURL: e.ArtistPageURL})
	}
	return out
}

func newResolver(kc config.KnowledgeConfig, cc *commandContext) *knowledge.Resolver {
	limits := make(map[provider.ProviderName]float64)
	for _, name := range provider.AllProviderNames() {
		limits[name] = kc.RateLimit
	}
	limiter := provider.NewRateLimiterMapWithLimits(limits)
	client := wikipedia.NewWithEndpoints(limiter, cc.logger, kc.APIEndpoint, kc.EntityEndpoint).
		WithTimeout(kc.Timeout)
	return knowledge.NewResolver(client, cc.logger,
		knowledge.WithConfig(knowledge.Config{
			SearchLimit:    kc.SearchLimit,
			CandidateLimit: kc.CandidateLimit,
			MemberCap:      kc.MemberCap,
			CallDelay:      kc.CallDelay,
			ArtistDelay:    kc.ArtistDelay,
		}),
		knowledge.WithObserver(func(res knowledge.Result, elapsed time.Duration) {
			cc.metrics.RecordKnowledge(res.Resolution.Outcome.String(), elapsed.Seconds())
		}))
}

// scrapeEntries flattens results into store entries and counts the artists
// with at least one birthday.
func scrapeEntries(results []knowledge.Result) ([]scraped.Entry, int) {
	var entries []scraped.Entry
	found := 0
	for _, r := range results {
		if r.Resolution.Outcome == knowledge.OutcomeFound {
			found++
		}
		for _, row := range pipeline.ScrapedRows(r.Target, r.Resolution) {
			entries = append(entries, scraped.Entry{
				ScrapedBirthday: row,
				Note:            r.Resolution.Note,
				Outcome:         r.Resolution.Outcome.String(),
			})
		}
	}
	return entries, found
}

func scrapeSummary(results []knowledge.Result) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Target.ArtistName,
			r.Resolution.Outcome.String(),
			formatCount(len(r.Resolution.Members)),
			r.Resolution.Note,
		})
	}
	return renderTable("Scrape", []string{"Artist", "Outcome", "Birthdays", "Note"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft})
}
