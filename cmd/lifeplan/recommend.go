package main

import (
	"fmt"
	"io"

	"lifeplan/internal/currency"
	"lifeplan/internal/form"
	"lifeplan/internal/recommendation"

	"github.com/spf13/cobra"
)

var formInput recommendation.FormData

var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Short:   "Ask for plan recommendations from the terminal",
	Example: `  lifeplan recommend --age 30 --income 50000 --dependents 1 --risk Low`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := recommendation.NewHTTPClient(cfg.APIURL, cfg.APIKey, cfg.RequestTimeout)

		f := form.New(client, logger)
		if err := f.Update(formInput); err != nil {
			return err
		}

		if err := f.Submit(cmd.Context()); err != nil {
			return fmt.Errorf("%s: %w", f.TakeNotice(), err)
		}

		snap := f.Snapshot()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Age %s, income %s, %s dependents, %s risk\n\n",
			snap.Data.Age, currency.Format(snap.Data.Income), snap.Data.Dependents, snap.Data.Risk)
		printRecommendations(out, snap.Recommendations)
		return nil
	},
}

func printRecommendations(w io.Writer, recs []recommendation.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No plans matched.")
		return
	}
	for i, r := range recs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Recommended Plan: %s\n", r.Plan)
		fmt.Fprintf(w, "Coverage: %s\n", r.Coverage)
		fmt.Fprintf(w, "Term: %s\n", r.TermLength)
		fmt.Fprintf(w, "%s\n", r.Explanation)
	}
}

func init() {
	flags := recommendCmd.Flags()
	flags.StringVar(&formInput.Age, "age", "", "Your age")
	flags.StringVar(&formInput.Income, "income", "", "Annual income")
	flags.StringVar(&formInput.Dependents, "dependents", "", "Number of dependents")
	flags.StringVar(&formInput.Risk, "risk", "", "Risk tolerance (Low, Medium, High)")

	for _, name := range []string{"age", "income", "dependents", "risk"} {
		_ = recommendCmd.MarkFlagRequired(name)
	}
}
