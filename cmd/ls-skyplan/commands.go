package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-skyplan/internal/plan"
	"github.com/litescript/ls-skyplan/internal/state"
	"github.com/litescript/ls-skyplan/internal/ui"
	"github.com/litescript/ls-skyplan/internal/version"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newSurveyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Show every target's position and visibility at one instant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return fmt.Errorf("failed to get json flag: %w", err)
			}
			targets, err := a.cfg.PlanTargets()
			if err != nil {
				return err
			}

			s, err := a.planner.Survey(cmd.Context(), a.site, targets, a.at, a.minAlt)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				return plan.ExportSurvey(s).WriteJSON(out)
			case isTerminal(out):
				fmt.Fprintln(out, ui.RenderSurveySummary(s))
				fmt.Fprintln(out, ui.RenderMoonPanel(s.Moon))
				fmt.Fprintln(out)
				fmt.Fprintln(out, ui.RenderSurveyTable(s, -1, 0))
			default:
				plan.WriteSurveyTable(out, s)
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Write the survey as JSON")
	return cmd
}

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <target>",
		Short: "Show whether a target rises, stays up or never rises",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := a.cfg.FindTarget(args[0])
			if err != nil {
				return err
			}

			s, err := a.planner.Survey(cmd.Context(), a.site, []plan.Target{target}, a.at, a.minAlt)
			if err != nil {
				return err
			}
			r := s.Reports[0]

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s from %s (lat %+.4f°)\n", r.Name, a.site.Name, a.site.LatDeg)
			fmt.Fprintf(out, "  RA %.4fh  Dec %+.4f°  %s\n", r.Coordinates.RAHours, r.Coordinates.DecDeg, r.Coordinates.Epoch)
			fmt.Fprintf(out, "  Altitude %.1f°  Azimuth %.1f°  (%s)\n", r.Position.AltDeg, r.Position.AzDeg, r.Tier)
			fmt.Fprintf(out, "  Rises:                    %s\n", yesNo(r.Rises))
			fmt.Fprintf(out, "  Circumpolar:              %s\n", yesNo(r.Circumpolar))
			fmt.Fprintf(out, "  Circumpolar above %4.1f°:  %s\n", s.MinAltitude, yesNo(r.CircumpolarMin))
			fmt.Fprintf(out, "  Moon separation:          %.1f°\n", r.MoonSeparation)
			if s.AbovePolarCircle {
				fmt.Fprintln(out, "  Site is inside the polar circle")
			}
			return nil
		},
	}
}

func newTraceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <target>",
		Short: "Trace a target's altitude and list its visibility windows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := cmd.Flags().GetFloat64("hours")
			if err != nil {
				return fmt.Errorf("failed to get hours flag: %w", err)
			}
			step, err := cmd.Flags().GetDuration("step")
			if err != nil {
				return fmt.Errorf("failed to get step flag: %w", err)
			}
			if hours <= 0 {
				return fmt.Errorf("--hours must be positive")
			}
			target, err := a.cfg.FindTarget(args[0])
			if err != nil {
				return err
			}

			end := a.at.Add(time.Duration(hours * float64(time.Hour)))
			tr, err := a.planner.Trace(cmd.Context(), a.site, target, a.at, end, step)
			if err != nil {
				return err
			}
			ws := plan.Windows(tr, a.minAlt, a.at)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s from %s, %s to %s, every %s\n", target.Name, a.site.Name,
				tr.Start.Local().Format("Jan 02 15:04"), tr.End.Local().Format("Jan 02 15:04"), step)
			fmt.Fprintln(out, ui.RenderTraceSparkline(tr, a.at, ui.SparklineWidth))
			fmt.Fprintf(out, "Peak %.1f° at %s\n\n", tr.Peak.AltDeg, tr.Peak.Time.Local().Format("15:04"))
			fmt.Fprintf(out, "Windows above %.0f°:\n", a.minAlt)
			fmt.Fprintln(out, ui.RenderWindows(ws, time.Local))
			return nil
		},
	}
	cmd.Flags().Float64("hours", 24, "Length of the trace in hours")
	cmd.Flags().Duration("step", 10*time.Minute, "Sampling interval")
	return cmd
}

func newMoonCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moon",
		Short: "Show the Moon's phase and illumination over the coming days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := cmd.Flags().GetInt("days")
			if err != nil {
				return fmt.Errorf("failed to get days flag: %w", err)
			}
			step, err := cmd.Flags().GetDuration("step")
			if err != nil {
				return fmt.Errorf("failed to get step flag: %w", err)
			}
			if days <= 0 {
				return fmt.Errorf("--days must be positive")
			}

			phase, err := a.planner.Calculator().MoonPhase(a.at)
			if err != nil {
				return err
			}
			samples, err := a.planner.MoonSweep(cmd.Context(), a.at, a.at.AddDate(0, 0, days), step)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.RenderMoonPanel(phase))
			fmt.Fprintln(out, ui.RenderMoonSweep(samples, ui.SparklineWidth))
			return nil
		},
	}
	cmd.Flags().Int("days", 30, "Length of the sweep in days")
	cmd.Flags().Duration("step", 6*time.Hour, "Sampling interval")
	return cmd
}

func newNightCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "night",
		Short: "Show sunset and the following sunrise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dateFlag, err := cmd.Flags().GetString("date")
			if err != nil {
				return fmt.Errorf("failed to get date flag: %w", err)
			}

			date := a.at
			if dateFlag != "" {
				date, err = time.Parse(time.DateOnly, dateFlag)
				if err != nil {
					return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", dateFlag)
				}
			}

			n, err := a.planner.NightWindow(a.site, date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%+.4f, %+.4f)\n", a.site.Name, a.site.LatDeg, a.site.LonDeg)
			fmt.Fprintln(out, ui.RenderNight(n, time.Local))
			return nil
		},
	}
	cmd.Flags().String("date", "", "Date of the evening, YYYY-MM-DD (default: date of --at)")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Interactive view that re-surveys on the configured refresh interval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := a.cfg.PlanTargets()
			if err != nil {
				return err
			}

			if !isTerminal(os.Stdout) {
				a.logger.Warn("stdout is not a terminal, printing a single survey")
				s, err := a.planner.Survey(cmd.Context(), a.site, targets, a.at, a.minAlt)
				if err != nil {
					return err
				}
				plan.WriteSurveyTable(cmd.OutOrStdout(), s)
				return nil
			}

			stateCfg := state.DefaultConfig()
			stateCfg.RefreshInterval = a.cfg.Refresh
			mgr := state.NewManager(stateCfg)

			// Bubble Tea owns the terminal; keep log lines off it.
			a.logger.SetOutput(io.Discard)

			// A fixed --at shifts the clock; the view still advances in real time.
			offset := time.Duration(0)
			if cmd.Flags().Changed("at") {
				offset = time.Until(a.at)
			}
			now := func() time.Time {
				return time.Now().Add(offset)
			}

			model := ui.New(a.planner, mgr, ui.Options{
				Site:        a.site,
				Targets:     targets,
				MinAltitude: a.minAlt,
				Now:         now,
			})

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("running TUI: %w", err)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Printing the version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ls-skyplan %s\n", version.Version)
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
