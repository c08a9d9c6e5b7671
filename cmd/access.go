package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/teemow/cadence/internal/calendar"
	"github.com/teemow/cadence/internal/config"
)

func newValidateAccessCmd() *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "validate-access",
		Short: "Check that cadence can read your calendars",
		Long: `Read one day of events from the primary calendar, the organizer's slot
calendar (when the frequency config can be loaded) and any calendar named
with --calendar. Exits non-zero if any of them is unreadable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), func(ctx context.Context, a *app) error {
				return runValidateAccess(ctx, cmd, a, names)
			})
		},
	}

	cmd.Flags().StringSliceVar(&names, "calendar", nil, "Additional calendar names to check")
	return cmd
}

func runValidateAccess(ctx context.Context, cmd *cobra.Command, a *app, names []string) error {
	cal, err := a.Calendar(ctx)
	if err != nil {
		return err
	}

	if cfg, err := config.LoadMeetingFrequency(a.settings.ConfigPath); err == nil {
		if slot := cfg.Organizer().SlotCalendarName; slot != "" {
			names = append(names, slot)
		}
	} else {
		a.logger.Debug("frequency config not loaded, checking primary calendar only")
	}

	ids := []string{calendar.PrimaryCalendar}
	for _, name := range names {
		id, err := cal.CalendarIDByName(ctx, name)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	out := cmd.OutOrStdout()
	ok, failed := color.New(color.FgGreen), color.New(color.FgRed)
	if flags.noColor {
		ok.DisableColor()
		failed.DisableColor()
	}

	var failures int
	for _, r := range cal.ValidateAccess(ctx, ids, time.Now()) {
		if r.OK() {
			ok.Fprintf(out, "OK      %s\n", r.CalendarID)
			continue
		}
		failures++
		failed.Fprintf(out, "FAILED  %s: %v\n", r.CalendarID, r.Err)
	}
	if failures > 0 {
		return fmt.Errorf("%d calendar(s) not accessible", failures)
	}
	return nil
}
