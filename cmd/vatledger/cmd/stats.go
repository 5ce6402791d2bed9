package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate figures over all invoices",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	l, err := openLedger()
	if err != nil {
		return err
	}
	stats := l.Statistics()

	fmt.Printf("Número de faturas: %d\n", stats.Invoices)
	fmt.Printf("Número de produtos: %d\n", stats.Products)
	fmt.Printf("Valor total sem IVA: %s\n", stats.TotalExVAT.StringFixed(2))
	fmt.Printf("Valor total do IVA: %s\n", stats.TotalVAT.StringFixed(2))
	fmt.Printf("Valor total com IVA: %s\n", stats.TotalIncVAT.StringFixed(2))
	return nil
}
