package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lusitania/vatledger/internal/model"
)

var (
	clientName   string
	clientRegion string
	clientTaxID  int

	editName   string
	editRegion string
	editTaxID  int
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
}

var clientCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new client",
	Long: `Register a new client. The tax ID must have exactly four digits and be
unique across the client set.

Examples:
  vatledger client create --name Ana --region Continente --tax-id 1234
  vatledger client create --name "João Silva" --region Madeira --tax-id 4321`,
	RunE: runClientCreate,
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE:  runClientList,
}

var clientEditCmd = &cobra.Command{
	Use:   "edit <tax-id>",
	Short: "Edit an existing client",
	Long: `Edit a client found by tax ID. Only the provided flags change; omitted
fields keep their current value.

Examples:
  vatledger client edit 1234 --region Açores
  vatledger client edit 1234 --name "Ana Santos" --new-tax-id 5678`,
	Args: cobra.ExactArgs(1),
	RunE: runClientEdit,
}

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(clientCreateCmd, clientListCmd, clientEditCmd)

	clientCreateCmd.Flags().StringVar(&clientName, "name", "", "Client name")
	clientCreateCmd.Flags().StringVar(&clientRegion, "region", "", "Region (Continente, Madeira, Açores)")
	clientCreateCmd.Flags().IntVar(&clientTaxID, "tax-id", 0, "Four-digit tax ID")
	clientCreateCmd.MarkFlagRequired("name")
	clientCreateCmd.MarkFlagRequired("region")
	clientCreateCmd.MarkFlagRequired("tax-id")

	clientEditCmd.Flags().StringVar(&editName, "name", "", "New name")
	clientEditCmd.Flags().StringVar(&editRegion, "region", "", "New region")
	clientEditCmd.Flags().IntVar(&editTaxID, "new-tax-id", 0, "New four-digit tax ID")
}

func runClientCreate(cmd *cobra.Command, args []string) error {
	region, err := model.ParseRegion(clientRegion)
	if err != nil {
		return err
	}
	l, err := openLedger()
	if err != nil {
		return err
	}
	client, err := l.CreateClient(clientName, region, clientTaxID)
	if err != nil {
		return err
	}
	fmt.Printf("Client %s (%d) created\n", client.Name(), client.TaxID())
	return nil
}

func runClientList(cmd *cobra.Command, args []string) error {
	l, err := openLedger()
	if err != nil {
		return err
	}
	clients := l.Clients()
	if len(clients) == 0 {
		fmt.Println("No clients registered.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TAX ID\tNAME\tREGION")
	for _, c := range clients {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.TaxID(), c.Name(), c.Region())
	}
	return tw.Flush()
}

func runClientEdit(cmd *cobra.Command, args []string) error {
	taxID, err := parsePositiveInt(args[0], "tax ID")
	if err != nil {
		return err
	}
	var region model.Region
	if editRegion != "" {
		region, err = model.ParseRegion(editRegion)
		if err != nil {
			return err
		}
	}
	l, err := openLedger()
	if err != nil {
		return err
	}
	client, err := l.EditClient(taxID, editName, region, editTaxID)
	if err != nil {
		return err
	}
	fmt.Printf("Client %s (%d) updated\n", client.Name(), client.TaxID())
	return nil
}
