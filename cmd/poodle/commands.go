package main

import (
	"fmt"

	"github.com/Ba4bes/moodpoodle/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed the mood state document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := buildService(cmd.Context(), cfg, clockwork.NewRealClock(), nil)
			if err != nil {
				return err
			}
			if err := svc.Seed(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Seeded state document at %s\n", cfg.StatePath)
			return nil
		},
	}
}

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Run one scheduled mood cycle: fetch activity, decay, recompute",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := buildService(cmd.Context(), cfg, clockwork.NewRealClock(), nil)
			if err != nil {
				return err
			}
			view, err := svc.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Mood: %s (%d/100)\n", view.Mood, view.Score)
			return nil
		},
	}
}

func newInteractCmd() *cobra.Command {
	var (
		user     string
		body     string
		issue    int
		newIssue bool
	)

	cmd := &cobra.Command{
		Use:   "interact",
		Short: "Process one pet/feed interaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := buildService(cmd.Context(), cfg, clockwork.NewRealClock(), nil)
			if err != nil {
				return err
			}

			result, err := svc.ProcessInteraction(cmd.Context(), domain.Interaction{
				Username:     user,
				Body:         body,
				IssueNumber:  issue,
				FromNewIssue: newIssue,
			})
			if err != nil {
				return err
			}

			switch result.Outcome {
			case domain.OutcomeAccepted:
				fmt.Printf("Accepted %s from %s (+%d bonus, %d left today)\n",
					result.Kind, user, result.Bonus, result.Remaining)
			case domain.OutcomeRateLimited:
				fmt.Printf("Rate limited: %s has no interactions left\n", user)
			default:
				fmt.Println("Unrecognized command, help response posted")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "username of the interacting visitor")
	cmd.Flags().StringVar(&body, "body", "", "comment text to classify")
	cmd.Flags().IntVar(&issue, "issue", 0, "issue number the interaction arrived on")
	cmd.Flags().BoolVar(&newIssue, "new-issue", false, "interaction arrived as a freshly opened issue")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("body")
	_ = cmd.MarkFlagRequired("issue")

	return cmd
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Resolve an active ecstatic cooldown",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := buildService(cmd.Context(), cfg, clockwork.NewRealClock(), nil)
			if err != nil {
				return err
			}
			resolved, err := svc.ResolveCooldown(cmd.Context())
			if err != nil {
				return err
			}
			if resolved {
				fmt.Println("Cooldown resolved")
			} else {
				fmt.Println("No active cooldown")
			}
			return nil
		},
	}
}

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Re-render the mood section from the committed state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := buildService(cmd.Context(), cfg, clockwork.NewRealClock(), nil)
			if err != nil {
				return err
			}
			view, err := svc.Render(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Rendered mood %s (%d/100) into %s\n", view.Mood, view.Score, cfg.ReadmePath)
			return nil
		},
	}
}
