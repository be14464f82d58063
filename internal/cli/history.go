package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sqliteadapter "github.com/ericfisherdev/reviewsync/internal/adapter/driven/sqlite"
)

// newHistoryCommand constructs the "history" subcommand, which prints recent
// sync journal records without touching GitHub.
func newHistoryCommand(_ *Options) *cobra.Command {
	var (
		dbPath   string
		prNumber int
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print recent sync outcomes from the local journal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				dbPath = os.Getenv("REVIEWSYNC_DB_PATH")
			}
			if dbPath == "" {
				dbPath = "reviewsync.db"
			}

			db, err := sqliteadapter.NewDB(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
				return err
			}

			records, err := sqliteadapter.NewJournalRepo(db).ListRecent(cmd.Context(), prNumber, limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no sync records")
				return nil
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-20s  %6s  %-24s  %-18s  %7s  %7s  %6s\n",
				"SYNCED AT", "PR", "BRANCH", "OUTCOME", "VERSION", "POSTED", "ISSUE")
			for _, rec := range records {
				fmt.Fprintf(w, "%-20s  %6d  %-24s  %-18s  %7d  %3d/%-3d  %6d\n",
					rec.SyncedAt.UTC().Format("2006-01-02 15:04:05"),
					rec.PRNumber, rec.Branch, rec.Outcome, rec.Version,
					rec.Posted, rec.Total, rec.IssueNumber,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Journal database path (default REVIEWSYNC_DB_PATH or reviewsync.db)")
	cmd.Flags().IntVar(&prNumber, "pr", 0, "Filter records to one pull request number")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records to print")

	return cmd
}
