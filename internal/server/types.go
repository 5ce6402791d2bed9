package server

import (
	"time"

	"github.com/lusitania/vatledger/internal/ledger"
	"github.com/lusitania/vatledger/internal/model"
)

// CreateClientRequest is the payload for POST /clients.
type CreateClientRequest struct {
	Name   string `json:"name" binding:"required"`
	Region string `json:"region" binding:"required"`
	TaxID  int    `json:"tax_id" binding:"required"`
}

// UpdateClientRequest is the payload for PUT /clients/:taxid. Omitted
// fields keep their current value.
type UpdateClientRequest struct {
	Name   string `json:"name"`
	Region string `json:"region"`
	TaxID  int    `json:"tax_id"`
}

// ClientResponse mirrors a client on the wire.
type ClientResponse struct {
	Name   string `json:"name"`
	Region string `json:"region"`
	TaxID  int    `json:"tax_id"`
}

func clientResponse(c *model.Client) ClientResponse {
	return ClientResponse{Name: c.Name(), Region: string(c.Region()), TaxID: c.TaxID()}
}

// CreateInvoiceRequest is the payload for POST /invoices.
type CreateInvoiceRequest struct {
	ClientTaxID int    `json:"client_tax_id" binding:"required"`
	IssueDate   string `json:"issue_date" binding:"required"`
}

// UpdateInvoiceRequest is the payload for PUT /invoices/:number. Omitted
// fields keep their current value.
type UpdateInvoiceRequest struct {
	ClientTaxID int    `json:"client_tax_id"`
	IssueDate   string `json:"issue_date"`
}

// ProductRequest is the payload for POST /invoices/:number/products. The
// type discriminator selects which of the variant fields apply.
type ProductRequest struct {
	Type        string  `json:"type" binding:"required"`
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	UnitPrice   float64 `json:"unit_price" binding:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"gte=0"`

	// Food fields
	TaxTier        string   `json:"tax_tier,omitempty"`
	Organic        bool     `json:"organic,omitempty"`
	Certifications []string `json:"certifications,omitempty"`

	// Shared by both variants (food category or pharmacy category)
	Category string `json:"category,omitempty"`

	// Pharmacy fields
	Prescribed bool   `json:"prescribed,omitempty"`
	Doctor     string `json:"doctor,omitempty"`
}

// InvoiceResponse is the summary representation of an invoice.
type InvoiceResponse struct {
	Number      int    `json:"number"`
	IssueDate   string `json:"issue_date"`
	ClientName  string `json:"client_name"`
	ClientTaxID int    `json:"client_tax_id"`
	Products    int    `json:"products"`
	TotalExVAT  string `json:"total_ex_vat"`
	TotalVAT    string `json:"total_vat"`
	TotalIncVAT string `json:"total_inc_vat"`
}

func invoiceResponse(inv *model.Invoice) InvoiceResponse {
	return InvoiceResponse{
		Number:      inv.Number(),
		IssueDate:   inv.IssueDate().Format("2006-01-02"),
		ClientName:  inv.Client().Name(),
		ClientTaxID: inv.Client().TaxID(),
		Products:    len(inv.Products()),
		TotalExVAT:  inv.TotalExVAT().String(),
		TotalVAT:    inv.TotalVAT().String(),
		TotalIncVAT: inv.TotalIncVAT().String(),
	}
}

// StatsResponse mirrors ledger.Stats on the wire.
type StatsResponse struct {
	Invoices    int    `json:"invoices"`
	Products    int    `json:"products"`
	TotalExVAT  string `json:"total_ex_vat"`
	TotalVAT    string `json:"total_vat"`
	TotalIncVAT string `json:"total_inc_vat"`
}

func statsResponse(s ledger.Stats) StatsResponse {
	return StatsResponse{
		Invoices:    s.Invoices,
		Products:    s.Products,
		TotalExVAT:  s.TotalExVAT.String(),
		TotalVAT:    s.TotalVAT.String(),
		TotalIncVAT: s.TotalIncVAT.String(),
	}
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
