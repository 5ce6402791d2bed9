// Package codec implements the line-oriented text format for clients,
// invoices and products.
//
// The format is schema-less and positional: a `# Clientes` section with one
// semicolon-delimited line per client, then a `# Faturas` section where a
// 3-field line opens an invoice and the ≥6-field lines that follow attach
// products to it. Malformed lines never abort a decode; they are skipped
// and reported as diagnostics. Field values must not contain `;`, the
// format has no escaping.
package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lusitania/vatledger/internal/model"
)

const (
	clientsHeader  = "# Clientes"
	invoicesHeader = "# Faturas"

	dateLayout = "2006-01-02"

	// nullField is the literal written for absent category/doctor fields.
	nullField = "null"
)

// Diagnostic reports a skipped record during a decode.
type Diagnostic struct {
	Line   int
	Text   string
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s (%q)", d.Line, d.Reason, d.Text)
}

// Result holds everything a decode produced. Invoice totals are recomputed
// while products are attached, never read from the file.
type Result struct {
	Clients     []*model.Client
	Invoices    []*model.Invoice
	Diagnostics []Diagnostic
}

func (r *Result) findClient(taxID int) *model.Client {
	for _, c := range r.Clients {
		if c.TaxID() == taxID {
			return c
		}
	}
	return nil
}

func (r *Result) report(line int, text, reason string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Line: line, Text: text, Reason: reason})
}

// Decode reads the whole store from r. Only I/O failures are returned as
// errors; malformed records become diagnostics on the result.
func Decode(r io.Reader) (*Result, error) {
	res := &Result{}
	sc := bufio.NewScanner(r)

	inInvoices := false
	var current *model.Invoice
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())

		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if strings.HasPrefix(line, invoicesHeader) {
				inInvoices = true
			}
			continue
		}

		fields := strings.Split(line, ";")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		if !inInvoices {
			res.decodeClient(lineNo, line, fields)
			continue
		}

		switch {
		case len(fields) == 3:
			current = res.decodeInvoiceHeader(lineNo, line, fields, current)
		case len(fields) >= 6 && current != nil:
			res.decodeProduct(lineNo, line, fields, current)
		default:
			res.report(lineNo, line, "malformed invoice or product line")
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading store: %w", err)
	}
	return res, nil
}

func (r *Result) decodeClient(lineNo int, line string, fields []string) {
	if len(fields) != 3 {
		r.report(lineNo, line, "malformed client line")
		return
	}
	region, err := model.ParseRegion(fields[1])
	if err != nil {
		r.report(lineNo, line, err.Error())
		return
	}
	taxID, err := strconv.Atoi(fields[2])
	if err != nil {
		r.report(lineNo, line, "invalid tax ID")
		return
	}
	client, err := model.NewClient(fields[0], region, taxID)
	if err != nil {
		r.report(lineNo, line, err.Error())
		return
	}
	r.Clients = append(r.Clients, client)
}

// decodeInvoiceHeader opens a new invoice. When the referenced client is
// unknown the invoice is dropped and the previously open invoice stays
// current, so stray product lines keep attaching where they did before.
func (r *Result) decodeInvoiceHeader(lineNo int, line string, fields []string, current *model.Invoice) *model.Invoice {
	number, err := strconv.Atoi(fields[0])
	if err != nil {
		r.report(lineNo, line, "invalid invoice number")
		return current
	}
	date, err := time.Parse(dateLayout, fields[1])
	if err != nil {
		r.report(lineNo, line, "invalid issue date")
		return current
	}
	taxID, err := strconv.Atoi(fields[2])
	if err != nil {
		r.report(lineNo, line, "invalid client tax ID")
		return current
	}
	client := r.findClient(taxID)
	if client == nil {
		r.report(lineNo, line, fmt.Sprintf("client %d not found, invoice dropped", taxID))
		return current
	}
	inv, err := model.NewInvoice(number, client, date)
	if err != nil {
		r.report(lineNo, line, err.Error())
		return current
	}
	r.Invoices = append(r.Invoices, inv)
	return inv
}

func (r *Result) decodeProduct(lineNo int, line string, fields []string, current *model.Invoice) {
	vc := variantFor(fields[3])
	if vc == nil {
		r.report(lineNo, line, fmt.Sprintf("unknown product type %q", fields[3]))
		return
	}
	product, err := vc.decode(fields)
	if err != nil {
		r.report(lineNo, line, err.Error())
		return
	}
	if err := current.AddProduct(product); err != nil {
		r.report(lineNo, line, err.Error())
	}
}

// Encode writes the whole store to w, the inverse projection of Decode.
// Food tax tiers are not written; Decode re-derives them from the organic
// flag, the certification list and the category.
func Encode(w io.Writer, clients []*model.Client, invoices []*model.Invoice) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, clientsHeader)
	for _, c := range clients {
		fmt.Fprintf(bw, "%s;%s;%d\n", c.Name(), c.Region(), c.TaxID())
	}

	fmt.Fprintln(bw, invoicesHeader)
	for _, inv := range invoices {
		fmt.Fprintf(bw, "%d;%s;%d\n", inv.Number(), inv.IssueDate().Format(dateLayout), inv.Client().TaxID())
		for _, p := range inv.Products() {
			vc := variantForProduct(p)
			if vc == nil {
				return model.NewValidationError("type", string(p.Type()), "oneof", "unknown product variant")
			}
			category := p.Category()
			if category == "" {
				category = nullField
			}
			extra1, extra2 := vc.extras(p)
			fmt.Fprintf(bw, "%s;%s;%s;%s;%s;%d;%s;%s;%s\n",
				p.Code(), p.Name(), p.Description(), p.Type(),
				p.UnitPrice().String(), p.Quantity(), category, extra1, extra2)
		}
	}
	return bw.Flush()
}
