package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pokeprice/engine/internal/domain/pricing"
)

var (
	priceCard     string
	priceCurrency string
)

var priceCMD = &cobra.Command{
	Use:   "price",
	Short: "show the representative price and value tags of a card",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEngine(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.pricing.PokePrice(ctx, priceCard, priceCurrency)
		if err != nil {
			return err
		}
		printPokePrice(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	priceCMD.Flags().StringVar(&priceCard, "card", "", "card id")
	priceCMD.Flags().StringVar(&priceCurrency, "currency", "GBP", "currency code")
	_ = priceCMD.MarkFlagRequired("card")
	rootCmd.AddCommand(priceCMD)
}

func printPokePrice(w io.Writer, p *pricing.PokePrice) {
	fmt.Fprintf(w, "card %s (%s)\n", p.CardID, p.CurrencyCode)
	if p.Empty() {
		fmt.Fprintln(w, "  no price data")
		return
	}
	printAggregate(w, "sold", p.Sold)
	printAggregate(w, "listing", p.Listing)
	for _, tag := range p.Tags.Sorted() {
		fmt.Fprintf(w, "  tag  %s\n", tag)
	}
}

func printAggregate(w io.Writer, label string, a *pricing.Aggregate) {
	if a == nil {
		fmt.Fprintf(w, "  %-8s -\n", label)
		return
	}
	period := "all time"
	if a.PeriodSizeDays != nil {
		period = fmt.Sprintf("%dd", *a.PeriodSizeDays)
	}
	fmt.Fprintf(w, "  %-8s price=%s low=%s high=%s volume=%d period=%s\n",
		label, minor(a.Price), minor(a.LowPrice), minor(a.HighPrice), a.Volume, period)
}

func minor(amount int64) string {
	sign := ""
	if amount < 0 {
		sign, amount = "-", -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
