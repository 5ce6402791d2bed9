package ledger

import (
	"github.com/shopspring/decimal"
)

// Stats aggregates the whole ledger: invoice count, total product quantity
// and the three monetary totals summed over every invoice.
type Stats struct {
	Invoices    int             `json:"invoices"`
	Products    int             `json:"products"`
	TotalExVAT  decimal.Decimal `json:"total_ex_vat"`
	TotalVAT    decimal.Decimal `json:"total_vat"`
	TotalIncVAT decimal.Decimal `json:"total_inc_vat"`
}

// Statistics computes aggregate figures over all invoices.
func (l *Ledger) Statistics() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := Stats{
		Invoices:    len(l.invoices),
		TotalExVAT:  decimal.Zero,
		TotalVAT:    decimal.Zero,
		TotalIncVAT: decimal.Zero,
	}
	for _, inv := range l.invoices {
		for _, p := range inv.Products() {
			stats.Products += p.Quantity()
		}
		stats.TotalExVAT = stats.TotalExVAT.Add(inv.TotalExVAT())
		stats.TotalVAT = stats.TotalVAT.Add(inv.TotalVAT())
		stats.TotalIncVAT = stats.TotalIncVAT.Add(inv.TotalIncVAT())
	}
	return stats
}
