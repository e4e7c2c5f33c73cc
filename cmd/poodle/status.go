package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

type statusOutput struct {
	Score            int    `json:"score"`
	State            string `json:"state"`
	InteractionBonus int    `json:"interactionBonus"`
	TotalPets        int    `json:"totalPets"`
	TotalFeeds       int    `json:"totalFeeds"`
	CooldownActive   bool   `json:"cooldownActive"`
	LastCalculated   string `json:"lastCalculated"`
}

func newStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current mood state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := buildService(cmd.Context(), cfg, clockwork.NewRealClock(), nil)
			if err != nil {
				return err
			}

			doc, err := svc.Status(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				out := statusOutput{
					Score:            doc.Mood.Score,
					State:            string(doc.Mood.State),
					InteractionBonus: doc.Decay.InteractionBonus,
					TotalPets:        doc.Interactions.TotalPets,
					TotalFeeds:       doc.Interactions.TotalFeeds,
					CooldownActive:   doc.Cooldown.Active,
					LastCalculated:   doc.Mood.LastCalculated.Format(time.RFC3339),
				}
				b, err := json.Marshal(out)
				if err != nil {
					return fmt.Errorf("marshal status: %w", err)
				}
				fmt.Println(string(b))
				return nil
			}

			fmt.Printf("Mood     : %s (%d/100)\n", doc.Mood.State, doc.Mood.Score)
			fmt.Printf("Bonus    : %d\n", doc.Decay.InteractionBonus)
			fmt.Printf("Pets     : %d\n", doc.Interactions.TotalPets)
			fmt.Printf("Feeds    : %d\n", doc.Interactions.TotalFeeds)
			fmt.Printf("Cooldown : %v\n", doc.Cooldown.Active)
			fmt.Printf("Updated  : %s\n", doc.Mood.LastCalculated.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status in JSON format")
	return cmd
}
