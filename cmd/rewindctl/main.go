// rewindctl is the operator CLI: it computes and prints wrapped reports
// straight from the local database, without going through the HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"sound-rewind/internal/analytics"
	"sound-rewind/internal/domain"
	"sound-rewind/internal/repository/sqlite"
	"sound-rewind/internal/seed"
)

var databasePath string

var rootCmd = &cobra.Command{
	Use:   "rewindctl",
	Short: "Inspects wrapped listening reports from the local database",
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Lists registered accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAccounts(cmd)
	},
}

var wrappedCmd = &cobra.Command{
	Use:   "wrapped [account-handle]",
	Short: "Computes and prints the wrapped report for an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWrapped(cmd, args[0])
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Installs the demo account fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./data/sound-rewind.db", "Path to the SQLite database")
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(wrappedCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func openRepos() (*sqlite.DB, error) {
	db, err := sqlite.NewDB(databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := sqlite.Migrate(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func runAccounts(cmd *cobra.Command) error {
	db, err := openRepos()
	if err != nil {
		return err
	}
	defer db.Close()

	accounts, err := sqlite.NewAccountRepository(db).List(context.Background(), 100)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header([]string{"ID", "Handle", "Name", "Created"})
	for _, a := range accounts {
		if err := table.Append([]string{a.ID, a.Handle, a.Name, a.CreatedAt.Format("2006-01-02")}); err != nil {
			return err
		}
	}
	return table.Render()
}

func runSeed(cmd *cobra.Command) error {
	db, err := openRepos()
	if err != nil {
		return err
	}
	defer db.Close()

	seeder := seed.NewSeeder(
		sqlite.NewAccountRepository(db),
		sqlite.NewTrackRepository(db),
		sqlite.NewActivityEventRepository(db),
		sqlite.NewFollowedAccountRepository(db),
	)
	result, err := seeder.SeedDemoAccount(context.Background())
	if err != nil {
		return err
	}
	if !result.Created {
		fmt.Fprintf(cmd.OutOrStdout(), "Demo account already present (id %s)\n", result.AccountID)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded demo account %s: %d tracks, %d events, %d followed accounts\n",
		result.AccountID, result.Tracks, result.Events, result.Followed)
	return nil
}

func runWrapped(cmd *cobra.Command, handle string) error {
	db, err := openRepos()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	account, err := sqlite.NewAccountRepository(db).GetByHandle(ctx, handle)
	if err != nil {
		return fmt.Errorf("failed to look up account %q: %w", handle, err)
	}

	tracks, err := sqlite.NewTrackRepository(db).GetByAccountID(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("failed to load tracks: %w", err)
	}
	events, err := sqlite.NewActivityEventRepository(db).GetByAccountID(ctx, account.ID, time.Time{})
	if err != nil {
		return fmt.Errorf("failed to load activity events: %w", err)
	}
	followed, err := sqlite.NewFollowedAccountRepository(db).GetByAccountID(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("failed to load followed accounts: %w", err)
	}

	aggregator, err := analytics.NewAggregator(analytics.DefaultConfig())
	if err != nil {
		return err
	}
	summary := aggregator.Summarize(analytics.Snapshot{
		AccountID: account.ID,
		Tracks:    tracks,
		Events:    events,
		Followed:  followed,
		Now:       time.Now(),
	})

	return printSummary(cmd, account, summary)
}

func printSummary(cmd *cobra.Command, account *domain.Account, summary *domain.WrappedSummary) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrapped report for %s (%s)\n", account.Name, account.Handle)
	fmt.Fprintf(out, "%d tracks, %d activity events\n\n", summary.TrackCount, summary.EventCount)

	if summary.Genres != nil {
		fmt.Fprintf(out, "Top genres (%d discovered)\n", summary.Genres.DiscoveryCount)
		table := tablewriter.NewWriter(out)
		table.Header([]string{"Genre", "Tracks", "Listening", "Share"})
		for _, stat := range summary.Genres.TopByCount {
			row := []string{
				stat.Key,
				fmt.Sprintf("%d", stat.TrackCount),
				stat.ListeningTime.Round(time.Second).String(),
				fmt.Sprintf("%.1f%%", stat.Share),
			}
			if err := table.Append(row); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	if summary.Listening != nil {
		fmt.Fprintf(out, "Listening persona: %s (peak hour %02d:00, peak day %s)\n\n",
			summary.Listening.Persona, summary.Listening.PeakHour, summary.Listening.PeakDay)
	}

	if summary.Underground != nil {
		fmt.Fprintf(out, "Underground support: %.1f%% of listening time across %d tracks\n\n",
			summary.Underground.Percent, summary.Underground.TracksConsidered)
	}

	if summary.Trendsetter != nil {
		fmt.Fprintf(out, "Trendsetter badge: %s (score %.1f, %d visionary picks, %d early plays)\n  %s\n\n",
			summary.Trendsetter.Badge, summary.Trendsetter.Score,
			summary.Trendsetter.VisionaryTracks, summary.Trendsetter.EarlyAdopterTracks,
			summary.Trendsetter.Description)
	}

	if summary.Reposts != nil {
		fmt.Fprintf(out, "Repost badge: %s (%d reposts, %d went trending, %.1f%% hit rate)\n  %s\n\n",
			summary.Reposts.Badge, summary.Reposts.RepostedTracks,
			summary.Reposts.TrendingTracks, summary.Reposts.SuccessRate,
			summary.Reposts.Description)
	}

	if summary.Doppelganger != nil {
		if summary.Doppelganger.Matched {
			fmt.Fprintf(out, "Taste doppelganger: %s (similarity %.3f; %d shared tracks, %d shared artists, %d shared genres)\n",
				summary.Doppelganger.Name, summary.Doppelganger.Similarity,
				summary.Doppelganger.SharedTracks, summary.Doppelganger.SharedArtists,
				summary.Doppelganger.SharedGenres)
		} else {
			reason := strings.ReplaceAll(string(summary.Doppelganger.Reason), "_", " ")
			fmt.Fprintf(out, "Taste doppelganger: no match (%s)\n", reason)
		}
	}

	return nil
}
