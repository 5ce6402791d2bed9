package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lusitania/vatledger/internal/money"
)

// Invoice associates a client with an ordered list of products and derives
// its totals from them. The client is observed by reference: the invoice
// does not own its lifecycle, and totals are only recomputed when the
// invoice itself changes.
type Invoice struct {
	number      int
	client      *Client
	products    []Product
	issueDate   time.Time
	totalExVAT  decimal.Decimal
	totalVAT    decimal.Decimal
	totalIncVAT decimal.Decimal
}

// NewInvoice creates an empty invoice for the given client.
func NewInvoice(number int, client *Client, issueDate time.Time) (*Invoice, error) {
	if number <= 0 {
		return nil, NewValidationError("number", number, "gt", "invoice number must be positive")
	}
	if client == nil {
		return nil, NewValidationError("client", nil, "required", "invoice requires a client")
	}
	inv := &Invoice{
		number:      number,
		client:      client,
		issueDate:   issueDate,
		totalExVAT:  decimal.Zero,
		totalVAT:    decimal.Zero,
		totalIncVAT: decimal.Zero,
	}
	return inv, nil
}

// Number returns the invoice number.
func (inv *Invoice) Number() int { return inv.number }

// Client returns the invoiced client.
func (inv *Invoice) Client() *Client { return inv.client }

// IssueDate returns the issue date.
func (inv *Invoice) IssueDate() time.Time { return inv.issueDate }

// SetIssueDate sets the issue date.
func (inv *Invoice) SetIssueDate(issueDate time.Time) { inv.issueDate = issueDate }

// TotalExVAT returns the sum of unitPrice×quantity over all products.
func (inv *Invoice) TotalExVAT() decimal.Decimal { return inv.totalExVAT }

// TotalVAT returns the sum of line VAT amounts.
func (inv *Invoice) TotalVAT() decimal.Decimal { return inv.totalVAT }

// TotalIncVAT returns TotalExVAT + TotalVAT.
func (inv *Invoice) TotalIncVAT() decimal.Decimal { return inv.totalIncVAT }

// Products returns a copy of the product list, in addition order. Mutating
// the returned slice does not affect the invoice.
func (inv *Invoice) Products() []Product {
	out := make([]Product, len(inv.products))
	copy(out, inv.products)
	return out
}

// AddProduct appends a product and recomputes totals. On error the invoice
// is left unchanged.
func (inv *Invoice) AddProduct(p Product) error {
	if p == nil {
		return NewValidationError("product", nil, "required", "product must not be nil")
	}
	inv.products = append(inv.products, p)
	if err := inv.Recalculate(); err != nil {
		inv.products = inv.products[:len(inv.products)-1]
		return err
	}
	return nil
}

// ReplaceProducts swaps the whole product list (defensively copied) and
// recomputes totals. On error the invoice is left unchanged.
func (inv *Invoice) ReplaceProducts(products []Product) error {
	replacement := make([]Product, len(products))
	copy(replacement, products)

	previous := inv.products
	inv.products = replacement
	if err := inv.Recalculate(); err != nil {
		inv.products = previous
		return err
	}
	return nil
}

// SetClient replaces the client reference and recomputes totals, since the
// tax depends on the client region. On error the invoice is left unchanged.
func (inv *Invoice) SetClient(client *Client) error {
	if client == nil {
		return NewValidationError("client", nil, "required", "invoice requires a client")
	}
	previous := inv.client
	inv.client = client
	if err := inv.Recalculate(); err != nil {
		inv.client = previous
		return err
	}
	return nil
}

// Recalculate recomputes the three totals from the product list. It is
// idempotent and has no other side effects.
func (inv *Invoice) Recalculate() error {
	exVAT := decimal.Zero
	vat := decimal.Zero

	for _, p := range inv.products {
		subtotal := p.UnitPrice().Mul(decimal.NewFromInt(int64(p.Quantity())))
		tax, err := p.CalculateTax(inv.client.Region())
		if err != nil {
			return err
		}
		exVAT = exVAT.Add(subtotal)
		vat = vat.Add(tax)
	}

	inv.totalExVAT = money.Round2(exVAT)
	inv.totalVAT = money.Round2(vat)
	inv.totalIncVAT = inv.totalExVAT.Add(inv.totalVAT)
	return nil
}
