package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/toddlburns/yt-tracker/internal/artist"
	"github.com/toddlburns/yt-tracker/internal/database"
	"github.com/toddlburns/yt-tracker/internal/output"
	"github.com/toddlburns/yt-tracker/internal/pipeline"
	"github.com/toddlburns/yt-tracker/internal/scraped"
)

func newExtractCommand(cc *commandContext) *cobra.Command {
	var fromDB bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Build the editorial dataset from the source files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := cc.cfg
			logger := cc.logger.With(slog.String("command", "extract"))

			src, err := readSources(cfg, logger)
			if err != nil {
				return err
			}

			if fromDB {
				db, err := database.Open(ctx, cfg.Database.Path)
				if err != nil {
					return err
				}
				defer db.Close() //nolint:errcheck
				if err := database.Migrate(ctx, db); err != nil {
					return err
				}
				rows, err := scraped.NewService(db).List(ctx)
				if err != nil {
					return err
				}
				logger.Info("scraped birthdays loaded from database", slog.Int("rows", len(rows)))
				src.Scraped = rows
			}

			p := pipeline.New(artist.DefaultRoster(), cfg.Discovery.HostMarker, cc.logger, cc.metrics)
			ds, err := p.Run(src)
			if err != nil {
				return err
			}

			if err := output.WriteDataset(cfg.Output.Dataset, ds); err != nil {
				return err
			}
			logger.Info("dataset written", slog.String("path", cfg.Output.Dataset))

			if len(ds.StillMissing) > 0 {
				if err := output.WriteMissing(cfg.Output.StillMissing, ds.StillMissing); err != nil {
					return err
				}
				logger.Info("still-missing artists written",
					slog.String("path", cfg.Output.StillMissing),
					slog.Int("artists", len(ds.StillMissing)))
			}
			cc.metrics.MarkRun(time.Now().Unix())

			fmt.Fprintln(cmd.OutOrStdout(), extractSummary(ds))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromDB, "scraped-from-db", false, "Read previously-scraped birthdays from the database instead of the CSV file")
	return cmd
}

func extractSummary(ds *pipeline.Dataset) string {
	st := ds.Stats
	dropped := 0
	for _, d := range st.Dropped {
		dropped += d.Total()
	}
	rows := [][]string{
		{"Roster", formatCount(ds.Roster.Len())},
		{"Roster added by best-of", formatCount(st.RosterAdded)},
		{"Events", fmt.Sprintf("%d (of %d)", len(ds.Events), st.EventsBefore)},
		{"Chart events kept", formatCount(st.Chart.Kept)},
		{"Chart events removed", formatCount(st.Chart.Removed)},
		{"Events with artist page", formatCount(st.EventPages)},
		{"Videos", fmt.Sprintf("%d (of %d)", len(ds.Videos), st.VideosBefore)},
		{"Social groups", formatCount(ds.SocialPosts.Len())},
		{"Best-of articles", formatCount(ds.BestOf.Len())},
		{"Birthdays", formatCount(ds.Birthdays.Len())},
		{"Still missing", formatCount(len(ds.StillMissing))},
		{"Rows dropped", formatCount(dropped)},
	}
	return renderTable("Extract", []string{"Item", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}
