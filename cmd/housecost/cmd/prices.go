package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/housecost/internal/pricing"
	"github.com/Simplici0/housecost/internal/report"
)

func newPricesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Print default package prices and add-on rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			prices := pricing.DefaultPrices()
			for _, tier := range pricing.Tiers() {
				price, err := prices.Price(tier)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-10s %s/m²\n", tier, report.VND(price))
			}
			fmt.Fprintf(out, "%-10s %s (+ %s per stop above %d)\n", "elevator",
				report.VND(pricing.ElevatorBaseCost), report.VND(pricing.ElevatorStopCost), pricing.ElevatorIncludedStops)
			fmt.Fprintf(out, "%-10s %s/m²\n", "pool", report.VND(pricing.PoolUnitCost))
			return nil
		},
	}
}
