package store

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/lusitania/vatledger/internal/model"
	"github.com/lusitania/vatledger/internal/money"
)

// InvoiceLineRow is one CSV row per invoice line item.
type InvoiceLineRow struct {
	InvoiceNumber int    `csv:"invoice_number"`
	IssueDate     string `csv:"issue_date"`
	ClientName    string `csv:"client_name"`
	ClientTaxID   int    `csv:"client_tax_id"`
	Region        string `csv:"region"`
	ProductCode   string `csv:"product_code"`
	ProductName   string `csv:"product_name"`
	ProductType   string `csv:"product_type"`
	Quantity      int    `csv:"quantity"`
	UnitPrice     string `csv:"unit_price"`
	LineExVAT     string `csv:"line_ex_vat"`
	LineVAT       string `csv:"line_vat"`
	LineIncVAT    string `csv:"line_inc_vat"`
}

// ExportCSV writes one row per invoice line item to w.
func ExportCSV(w io.Writer, invoices []*model.Invoice) error {
	rows := make([]*InvoiceLineRow, 0)
	for _, inv := range invoices {
		client := inv.Client()
		for _, p := range inv.Products() {
			subtotal := p.UnitPrice().Mul(decimal.NewFromInt(int64(p.Quantity())))
			tax, err := p.CalculateTax(client.Region())
			if err != nil {
				return err
			}
			rows = append(rows, &InvoiceLineRow{
				InvoiceNumber: inv.Number(),
				IssueDate:     inv.IssueDate().Format("2006-01-02"),
				ClientName:    client.Name(),
				ClientTaxID:   client.TaxID(),
				Region:        string(client.Region()),
				ProductCode:   p.Code(),
				ProductName:   p.Name(),
				ProductType:   string(p.Type()),
				Quantity:      p.Quantity(),
				UnitPrice:     p.UnitPrice().String(),
				LineExVAT:     money.Round2(subtotal).String(),
				LineVAT:       money.Round2(tax).String(),
				LineIncVAT:    money.Round2(subtotal.Add(tax)).String(),
			})
		}
	}
	return gocsv.Marshal(&rows, w)
}
