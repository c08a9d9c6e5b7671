package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/cadence/internal/model"
	"github.com/teemow/cadence/internal/oneonone"
)

func newLastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last <username|email>",
		Short: "Show the most recent 1:1 with a person",
		Long: `Search the lookback window for the most recent 1:1 with a person.
A bare username is qualified with the configured email domain.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, a *app) error {
				engine, err := a.Engine(ctx)
				if err != nil {
					return err
				}
				email := engine.Config().QualifyEmail(args[0])
				ev, err := engine.LastOneOnOne(ctx, email, a.settings.DaysBack)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if ev == nil {
					fmt.Fprintf(out, "No 1:1 with %s in the last %d days\n", email, a.settings.DaysBack)
					return nil
				}
				fmt.Fprintf(out, "%s  %s\n", ev.Start.Local().Format("Mon Jan 2 2006 15:04"), ev.Title)
				return nil
			})
		},
	}
}

func newDueCmd() *cobra.Command {
	var forecast int

	cmd := &cobra.Command{
		Use:   "due <username|email>",
		Short: "Show when a person's next 1:1 is due",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, a *app) error {
				engine, err := a.Engine(ctx)
				if err != nil {
					return err
				}
				email := engine.Config().QualifyEmail(args[0])
				next, err := engine.NextDue(ctx, email, a.settings.DaysBack)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s  %s\n", model.DateOnly(next).Format(model.DateLayout), email)
				if forecast <= 0 {
					return nil
				}

				dates, err := forecastDates(engine, email, next, forecast)
				if err != nil {
					return err
				}
				for _, d := range dates[1:] {
					fmt.Fprintf(out, "%s\n", model.DateOnly(d).Format(model.DateLayout))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&forecast, "forecast", 0, "Also print the following N due dates at the person's cadence")
	return cmd
}

// forecastDates returns the due date followed by count further dates.
func forecastDates(engine *oneonone.Engine, email string, next time.Time, count int) ([]time.Time, error) {
	p, err := engine.Person(email)
	if err != nil {
		return nil, err
	}
	weeks, err := oneonone.CadenceWeeks(p, engine.Config())
	if err != nil {
		return nil, err
	}
	return oneonone.Forecast(next, weeks, count+1)
}
