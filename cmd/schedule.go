package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/cadence/internal/model"
	"github.com/teemow/cadence/internal/oneonone"
	"github.com/teemow/cadence/internal/prompt"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Recompute every due date and replace the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, a *app) error {
				engine, err := a.Engine(ctx)
				if err != nil {
					return err
				}
				store, err := a.Snapshot()
				if err != nil {
					return err
				}
				defer store.Close()

				due, err := engine.RefreshDueDates(ctx, a.settings.DaysBack, store)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				writeDueList(cmd, due.Sorted())
				fmt.Fprintf(out, "Saved %d due date(s) to %s\n", len(due), a.settings.SnapshotPath)
				return nil
			})
		},
	}
}

func newSlotsCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List free 1:1 slots in a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseRange(start, end, time.Local)
			if err != nil {
				return err
			}
			return run(cmd.Context(), func(ctx context.Context, a *app) error {
				engine, err := a.Engine(ctx)
				if err != nil {
					return err
				}
				slots, err := engine.FreeSlots(ctx, from, to)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(slots) == 0 {
					fmt.Fprintln(out, "No free slots")
					return nil
				}
				for _, slot := range slots {
					fmt.Fprintln(out, slot.Local().Format("Mon Jan 2 2006 15:04"))
				}
				return nil
			})
		},
	}

	addRangeFlags(cmd, &start, &end)
	return cmd
}

func newAvailableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "available <username|email> <RFC3339 time>",
		Short: "Check whether a person can meet at a given time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseInstant("time", args[1])
			if err != nil {
				return err
			}
			return run(cmd.Context(), func(ctx context.Context, a *app) error {
				engine, err := a.Engine(ctx)
				if err != nil {
					return err
				}
				email := engine.Config().QualifyEmail(args[0])
				ok, err := engine.IsAvailable(ctx, at, email)
				if err != nil {
					return err
				}

				answer := "not available"
				if ok {
					answer = "available"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is %s at %s\n", email, answer, at.Format(time.RFC3339))
				return nil
			})
		},
	}
}

func newRecommendCmd() *cobra.Command {
	var (
		start, end string
		yes        bool
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Match free slots to people who are due and book them",
		Long: `Walk the free slots in the range in order and, for each one, offer the
person with the earliest due date who is available. Confirm to book the 1:1,
skip to offer the slot to the next person or stop to end the run.

Due dates come from the snapshot written by "cadence refresh". People due
after the end of the range are not offered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseRange(start, end, time.Local)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return run(ctx, func(ctx context.Context, a *app) error {
				return runRecommend(ctx, cmd, a, from, to, yes, dryRun)
			})
		},
	}

	addRangeFlags(cmd, &start, &end)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Book every match without asking")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the matches without creating events")
	return cmd
}

func runRecommend(ctx context.Context, cmd *cobra.Command, a *app, from, to time.Time, yes, dryRun bool) error {
	engine, err := a.Engine(ctx)
	if err != nil {
		return err
	}

	store, err := a.Snapshot()
	if err != nil {
		return err
	}
	defer store.Close()

	due, err := store.Load(ctx)
	if err != nil {
		if oneonone.IsNotFound(err) {
			return fmt.Errorf("%w (run \"cadence refresh\" first)", err)
		}
		return err
	}
	if savedAt, err := store.SavedAt(ctx); err == nil {
		a.logger.Debug("snapshot loaded",
			slog.Int("people", len(due)),
			slog.Time("saved_at", savedAt),
			slog.Duration("age", time.Since(savedAt).Round(time.Second)))
	}

	slots, err := engine.FreeSlots(ctx, from, to)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No free slots")
		return nil
	}

	colorEnabled := !flags.noColor
	var decider oneonone.Decider
	if yes {
		decider = prompt.NewAutoConfirm(cmd.OutOrStdout(), colorEnabled)
	} else {
		decider = prompt.NewTerminalDecider(colorEnabled)
	}

	result, err := oneonone.NewRecommender(engine, decider, dryRun).Run(ctx, to, due.Sorted(), slots)
	if err != nil {
		return err
	}
	prompt.WriteResult(cmd.OutOrStdout(), result, dryRun, colorEnabled)
	return nil
}

func addRangeFlags(cmd *cobra.Command, start, end *string) {
	cmd.Flags().StringVar(start, "start", "", "Start of the range: YYYY-MM-DD or RFC3339")
	cmd.Flags().StringVar(end, "end", "", "End of the range: YYYY-MM-DD or RFC3339")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func writeDueList(cmd *cobra.Command, entries []model.DueEntry) {
	out := cmd.OutOrStdout()
	for _, entry := range entries {
		fmt.Fprintf(out, "%s  %s\n", entry.Due.Format(model.DateLayout), entry.Email)
	}
}
