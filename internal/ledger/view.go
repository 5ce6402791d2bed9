package ledger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lusitania/vatledger/internal/model"
	"github.com/lusitania/vatledger/internal/money"
	"github.com/lusitania/vatledger/internal/store"
)

// InvoiceLine is the per-product breakdown of an invoice view.
type InvoiceLine struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	RatePercent decimal.Decimal `json:"rate_percent"`
	ExVAT       decimal.Decimal `json:"ex_vat"`
	VAT         decimal.Decimal `json:"vat"`
	IncVAT      decimal.Decimal `json:"inc_vat"`
	Details     string          `json:"details"`
}

// InvoiceView is the full rendering of one invoice.
type InvoiceView struct {
	Number      int             `json:"number"`
	IssueDate   time.Time       `json:"issue_date"`
	ClientName  string          `json:"client_name"`
	ClientTaxID int             `json:"client_tax_id"`
	Region      string          `json:"region"`
	Lines       []InvoiceLine   `json:"lines"`
	TotalExVAT  decimal.Decimal `json:"total_ex_vat"`
	TotalVAT    decimal.Decimal `json:"total_vat"`
	TotalIncVAT decimal.Decimal `json:"total_inc_vat"`
}

// ViewInvoice builds the detailed view of one invoice, including the
// effective rate applied to each line.
func (l *Ledger) ViewInvoice(number int) (*InvoiceView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	inv := l.findInvoice(number)
	if inv == nil {
		return nil, model.NewNotFoundError("invoice", number)
	}
	client := inv.Client()

	view := &InvoiceView{
		Number:      inv.Number(),
		IssueDate:   inv.IssueDate(),
		ClientName:  client.Name(),
		ClientTaxID: client.TaxID(),
		Region:      string(client.Region()),
		TotalExVAT:  inv.TotalExVAT(),
		TotalVAT:    inv.TotalVAT(),
		TotalIncVAT: inv.TotalIncVAT(),
	}

	for _, p := range inv.Products() {
		subtotal := p.UnitPrice().Mul(decimal.NewFromInt(int64(p.Quantity())))
		tax, err := p.CalculateTax(client.Region())
		if err != nil {
			return nil, err
		}
		rate := decimal.Zero
		if money.IsPositive(subtotal) {
			rate = tax.Div(subtotal).Mul(money.Hundred).Round(2)
		}
		view.Lines = append(view.Lines, InvoiceLine{
			Code:        p.Code(),
			Name:        p.Name(),
			Description: p.Description(),
			Type:        string(p.Type()),
			Quantity:    p.Quantity(),
			Category:    p.Category(),
			UnitPrice:   p.UnitPrice(),
			RatePercent: rate,
			ExVAT:       money.Round2(subtotal),
			VAT:         money.Round2(tax),
			IncVAT:      money.Round2(subtotal.Add(tax)),
			Details:     lineDetails(p),
		})
	}
	return view, nil
}

func lineDetails(p model.Product) string {
	switch v := p.(type) {
	case *model.FoodProduct:
		organic := "não"
		if v.Organic() {
			organic = "sim"
		}
		return fmt.Sprintf("biológico: %s, certificações: %d", organic, len(v.Certifications()))
	case *model.PharmacyProduct:
		if v.RequiresPrescription() {
			return fmt.Sprintf("prescrição: %s", v.PrescribingDoctor())
		}
		return fmt.Sprintf("categoria: %s", v.Category())
	}
	return ""
}

// WriteReport writes the human-readable invoice report to w, one block per
// invoice.
func (l *Ledger) WriteReport(w io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, inv := range l.invoices {
		client := inv.Client()
		fmt.Fprintf(w, "Fatura Nº: %d\n", inv.Number())
		fmt.Fprintf(w, "Cliente: %s\n", client.Name())
		fmt.Fprintf(w, "Data: %s\n", inv.IssueDate().Format("2006-01-02"))
		fmt.Fprintf(w, "Número de Contribuinte: %d\n", client.TaxID())
		fmt.Fprintln(w, "Produtos:")
		for _, p := range inv.Products() {
			fmt.Fprintf(w, "  Código: %s, Nome: %s, Descrição: %s, Quantidade: %d, Valor Unitário: %s\n",
				p.Code(), p.Name(), p.Description(), p.Quantity(), p.UnitPrice().String())
		}
		fmt.Fprintf(w, "Valor Total Sem IVA: %s\n", inv.TotalExVAT().String())
		fmt.Fprintf(w, "Valor Total Com IVA: %s\n", inv.TotalIncVAT().String())
		fmt.Fprintln(w, strings.Repeat("-", 50))
	}
	return nil
}

// ExportCSV writes one CSV row per invoice line item to w.
func (l *Ledger) ExportCSV(w io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return store.ExportCSV(w, l.invoices)
}
