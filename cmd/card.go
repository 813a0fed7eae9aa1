package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pokeprice/engine/internal/gateways/database/models"
)

var cardFlags models.Card

var cardCMD = &cobra.Command{
	Use:   "card",
	Short: "register or show a card",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEngine(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		if cardFlags.Name != "" {
			if err := e.cards.Upsert(ctx, &cardFlags); err != nil {
				return err
			}
		}
		card, err := e.cards.GetByID(ctx, cardFlags.ID)
		if err != nil {
			return describe(err, cardFlags.ID)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s #%s\n", card.ID, card.Name, card.SetName, card.Number)
		return nil
	},
}

func init() {
	cardCMD.Flags().StringVar(&cardFlags.ID, "id", "", "card id")
	cardCMD.Flags().StringVar(&cardFlags.Name, "name", "", "card name; set to create or update the card")
	cardCMD.Flags().StringVar(&cardFlags.SetName, "set", "", "set name")
	cardCMD.Flags().StringVar(&cardFlags.Number, "number", "", "number in set")
	_ = cardCMD.MarkFlagRequired("id")
	rootCmd.AddCommand(cardCMD)
}
