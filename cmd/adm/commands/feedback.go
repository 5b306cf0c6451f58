package commands

import (
	"fmt"
	"time"

	"bandly/internal/config"
	"bandly/internal/feedback"
	"bandly/internal/observability"

	"github.com/spf13/cobra"
)

// FeedbackCommands returns the feedback policy inspection commands
func FeedbackCommands(cfg *config.Config, logger *observability.Logger) *cobra.Command {
	fbCmd := &cobra.Command{
		Use:   "feedback",
		Short: "Feedback prompt policy commands",
		Long: `Commands for inspecting the feedback prompt policy.

Available commands:
  simulate - Evaluate the prompt gates for a hypothetical visitor`,
	}

	fbCmd.AddCommand(simulateCmd(cfg, logger))

	return fbCmd
}

func simulateCmd(cfg *config.Config, _ *observability.Logger) *cobra.Command {
	var (
		submitted     bool
		dismissals    int
		lastShownDays float64
		dwellSeconds  float64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Evaluate the prompt gates for a hypothetical visitor",
		Long: `Evaluate the prompt gates for a hypothetical visitor state and
print which gate, if any, blocks the prompt. The probabilistic gate is
reported as a probability, not rolled.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			now := time.Now()

			state := feedback.State{
				HasSubmitted: submitted,
				DismissCount: dismissals,
			}
			if lastShownDays >= 0 {
				state.HasShown = true
				state.LastShown = now.Add(-time.Duration(lastShownDays * float64(24*time.Hour))).UnixMilli()
			}
			sessionStart := now.Add(-time.Duration(dwellSeconds * float64(time.Second)))

			engine := feedback.NewEngine(cfg.ShowProbability())

			fmt.Printf("%-28s %v\n", "Already submitted", submitted)
			fmt.Printf("%-28s %d (cap %d)\n", "Dismissals", dismissals, feedback.MaxDismissals)
			if lastShownDays >= 0 {
				fmt.Printf("%-28s %.1f days ago (cooldown %s)\n", "Last shown", lastShownDays, feedback.Cooldown)
			} else {
				fmt.Printf("%-28s never\n", "Last shown")
			}
			fmt.Printf("%-28s %.0fs (minimum %s)\n", "Session dwell", dwellSeconds, feedback.MinSessionTime)

			if engine.ShouldShow(state, sessionStart, now) {
				fmt.Printf("\nEligible: prompt opens with probability %.0f%%\n", cfg.ShowProbability()*100)
			} else {
				fmt.Printf("\nNot eligible: %s\n", blockingGate(state, sessionStart, now))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&submitted, "submitted", false, "visitor has already submitted feedback")
	cmd.Flags().IntVar(&dismissals, "dismissals", 0, "how many times the visitor dismissed the prompt")
	cmd.Flags().Float64Var(&lastShownDays, "last-shown-days", -1, "days since the prompt was last shown (-1 for never)")
	cmd.Flags().Float64Var(&dwellSeconds, "dwell-seconds", 60, "seconds the visitor has been in the session")

	return cmd
}

// blockingGate names the first gate that blocks the prompt, mirroring
// the engine's evaluation order.
func blockingGate(state feedback.State, sessionStart, now time.Time) string {
	switch {
	case state.HasSubmitted:
		return "visitor already submitted feedback"
	case state.DismissCount >= feedback.MaxDismissals:
		return fmt.Sprintf("dismissal cap reached (%d)", feedback.MaxDismissals)
	case state.HasShown && now.Sub(time.UnixMilli(state.LastShown)) < feedback.Cooldown:
		return fmt.Sprintf("cooldown active, %s remaining", (feedback.Cooldown - now.Sub(time.UnixMilli(state.LastShown))).Round(time.Minute))
	case now.Sub(sessionStart) < feedback.MinSessionTime:
		return fmt.Sprintf("session younger than %s", feedback.MinSessionTime)
	default:
		return "unknown"
	}
}
