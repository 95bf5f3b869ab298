package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"lifeplan/internal/audit"
	"lifeplan/internal/currency"
	"lifeplan/internal/db"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent recommendation requests (requires DATABASE_URL)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is not set")
		}

		pool, err := db.ConnectPostgres(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		subs, err := audit.NewPostgresRecorder(pool).Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tAGE\tINCOME\tDEPENDENTS\tRISK\tOUTCOME\tRESULTS\tDURATION")
		for _, s := range subs {
			outcome := s.Outcome
			if s.StatusCode != nil {
				outcome = fmt.Sprintf("%s (%d)", outcome, *s.StatusCode)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
				s.CreatedAt.Format("2006-01-02 15:04:05"),
				s.Data.Age,
				currency.Format(s.Data.Income),
				s.Data.Dependents,
				s.Data.Risk,
				outcome,
				s.ResultCount,
				s.Duration,
			)
		}
		return tw.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of requests to show")
}
