package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lusitania/vatledger/internal/model"
	"github.com/lusitania/vatledger/internal/money"
)

var (
	invoiceClientTaxID int
	invoiceDate        string

	productType     string
	productCode     string
	productName     string
	productDesc     string
	productPrice    float64
	productQuantity int
	productTaxTier  string
	productOrganic  bool
	productCerts    []string
	productCategory string
	productRx       bool
	productDoctor   string
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Manage invoices",
}

var invoiceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new invoice for a client",
	Long: `Open an empty invoice referencing an existing client. The invoice number
is assigned automatically and never reused.

Examples:
  vatledger invoice create --client 1234
  vatledger invoice create --client 1234 --date 2026-01-15`,
	RunE: runInvoiceCreate,
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all invoices",
	RunE:  runInvoiceList,
}

var invoiceViewCmd = &cobra.Command{
	Use:   "view <number>",
	Short: "Show one invoice with its full line breakdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoiceView,
}

var invoiceEditCmd = &cobra.Command{
	Use:   "edit <number>",
	Short: "Change an invoice's client or issue date",
	Long: `Change an invoice's client or issue date. Re-pointing the invoice at
another client recomputes its totals, since the VAT rates depend on the
client region.

Examples:
  vatledger invoice edit 1 --client 4321
  vatledger invoice edit 1 --date 2026-02-01`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoiceEdit,
}

var invoiceAddProductCmd = &cobra.Command{
	Use:   "add-product <number>",
	Short: "Append a product line to an invoice",
	Long: `Append a product line to an invoice and recompute its totals.

Food products (--type alimentar) require a tax tier. Reduced-tier products
carry 1 to 4 certifications, intermediate-tier products a category
(congelados, enlatados, vinho). Pharmacy products (--type farmacia) carry a
prescribing doctor when --prescribed is set, otherwise a category (Beleza,
Bem-estar, Bebês, Animais, Outro).

Examples:
  vatledger invoice add-product 1 --type alimentar --code A1 --name "Maçãs" \
    --description "Maçãs biológicas" --price 10 --quantity 2 \
    --tax-tier "Taxa reduzida" --organic --certifications ISO22000,HACCP

  vatledger invoice add-product 1 --type farmacia --code F1 --name "Xarope" \
    --description "Xarope para a tosse" --price 7.5 --quantity 1 \
    --prescribed --doctor "Dr. Costa"`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoiceAddProduct,
}

func init() {
	rootCmd.AddCommand(invoiceCmd)
	invoiceCmd.AddCommand(invoiceCreateCmd, invoiceListCmd, invoiceViewCmd, invoiceEditCmd, invoiceAddProductCmd)

	invoiceCreateCmd.Flags().IntVar(&invoiceClientTaxID, "client", 0, "Client tax ID")
	invoiceCreateCmd.Flags().StringVar(&invoiceDate, "date", "", "Issue date (YYYY-MM-DD, default: today)")
	invoiceCreateCmd.MarkFlagRequired("client")

	invoiceEditCmd.Flags().IntVar(&invoiceClientTaxID, "client", 0, "New client tax ID")
	invoiceEditCmd.Flags().StringVar(&invoiceDate, "date", "", "New issue date (YYYY-MM-DD)")

	f := invoiceAddProductCmd.Flags()
	f.StringVar(&productType, "type", "", "Product type (alimentar, farmacia)")
	f.StringVar(&productCode, "code", "", "Product code")
	f.StringVar(&productName, "name", "", "Product name")
	f.StringVar(&productDesc, "description", "", "Product description")
	f.Float64Var(&productPrice, "price", 0, "Unit price ex VAT")
	f.IntVar(&productQuantity, "quantity", 0, "Quantity")
	f.StringVar(&productTaxTier, "tax-tier", "", "Food tax tier (Taxa reduzida, Taxa intermédia, Taxa normal)")
	f.BoolVar(&productOrganic, "organic", false, "Food product is organic")
	f.StringSliceVar(&productCerts, "certifications", nil, "Food certifications (ISO22000, FSSC22000, HACCP, GMP)")
	f.StringVar(&productCategory, "category", "", "Food or pharmacy category")
	f.BoolVar(&productRx, "prescribed", false, "Pharmacy product requires a prescription")
	f.StringVar(&productDoctor, "doctor", "", "Prescribing doctor")
	invoiceAddProductCmd.MarkFlagRequired("type")
	invoiceAddProductCmd.MarkFlagRequired("code")
	invoiceAddProductCmd.MarkFlagRequired("name")
	invoiceAddProductCmd.MarkFlagRequired("description")
	invoiceAddProductCmd.MarkFlagRequired("price")
}

func parsePositiveInt(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %s", what, s)
	}
	return n, nil
}

func parseIssueDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}

func runInvoiceCreate(cmd *cobra.Command, args []string) error {
	date, err := parseIssueDate(invoiceDate)
	if err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", invoiceDate)
	}
	l, err := openLedger()
	if err != nil {
		return err
	}
	inv, err := l.CreateInvoice(invoiceClientTaxID, date)
	if err != nil {
		return err
	}
	fmt.Printf("Invoice %d created for client %d\n", inv.Number(), inv.Client().TaxID())
	return nil
}

func runInvoiceList(cmd *cobra.Command, args []string) error {
	l, err := openLedger()
	if err != nil {
		return err
	}
	invoices := l.Invoices()
	if len(invoices) == 0 {
		fmt.Println("No invoices registered.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tDATE\tCLIENT\tREGION\tPRODUCTS\tEX VAT\tINC VAT")
	for _, inv := range invoices {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			inv.Number(),
			inv.IssueDate().Format("2006-01-02"),
			inv.Client().Name(),
			inv.Client().Region(),
			len(inv.Products()),
			inv.TotalExVAT().String(),
			inv.TotalIncVAT().String(),
		)
	}
	return tw.Flush()
}

func runInvoiceView(cmd *cobra.Command, args []string) error {
	number, err := parsePositiveInt(args[0], "invoice number")
	if err != nil {
		return err
	}
	l, err := openLedger()
	if err != nil {
		return err
	}
	view, err := l.ViewInvoice(number)
	if err != nil {
		return err
	}

	fmt.Printf("Fatura Nº: %d\n", view.Number)
	fmt.Printf("Data: %s\n", view.IssueDate.Format("2006-01-02"))
	fmt.Printf("Cliente: %s (%d)\n", view.ClientName, view.ClientTaxID)
	fmt.Printf("Localização: %s\n", view.Region)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tTYPE\tQTY\tUNIT\tRATE%\tVAT\tTOTAL\tDETAILS")
	for _, line := range view.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			line.Code, line.Name, line.Type, line.Quantity,
			line.UnitPrice.String(), line.RatePercent.String(),
			line.VAT.String(), line.IncVAT.String(), line.Details)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Printf("Total Sem IVA: %s\n", view.TotalExVAT.String())
	fmt.Printf("Total do IVA: %s\n", view.TotalVAT.String())
	fmt.Printf("Total Com IVA: %s\n", view.TotalIncVAT.String())
	return nil
}

func runInvoiceEdit(cmd *cobra.Command, args []string) error {
	number, err := parsePositiveInt(args[0], "invoice number")
	if err != nil {
		return err
	}
	l, err := openLedger()
	if err != nil {
		return err
	}
	if invoiceClientTaxID != 0 {
		if err := l.SetInvoiceClient(number, invoiceClientTaxID); err != nil {
			return err
		}
	}
	if invoiceDate != "" {
		date, err := time.Parse("2006-01-02", invoiceDate)
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", invoiceDate)
		}
		if err := l.SetInvoiceDate(number, date); err != nil {
			return err
		}
	}
	fmt.Printf("Invoice %d updated\n", number)
	return nil
}

func runInvoiceAddProduct(cmd *cobra.Command, args []string) error {
	number, err := parsePositiveInt(args[0], "invoice number")
	if err != nil {
		return err
	}
	product, err := buildProductFromFlags()
	if err != nil {
		return err
	}
	l, err := openLedger()
	if err != nil {
		return err
	}
	if err := l.AddProduct(number, product); err != nil {
		return err
	}
	inv, err := l.FindInvoice(number)
	if err != nil {
		return err
	}
	fmt.Printf("Product %s added to invoice %d (total inc VAT: %s)\n",
		product.Code(), number, inv.TotalIncVAT().String())
	return nil
}

func buildProductFromFlags() (model.Product, error) {
	unitPrice := money.FromFloat(productPrice)
	switch productType {
	case "alimentar", "food":
		tier, err := model.ParseTaxTier(productTaxTier)
		if err != nil {
			return nil, err
		}
		return model.NewFoodProduct(productCode, productName, productDesc, unitPrice, productQuantity,
			tier, productOrganic, productCerts, productCategory)
	case "farmacia", "farmácia", "pharmacy":
		return model.NewPharmacyProduct(productCode, productName, productDesc, unitPrice, productQuantity,
			productRx, productDoctor, productCategory)
	}
	return nil, fmt.Errorf("unknown product type %q, want alimentar or farmacia", productType)
}
