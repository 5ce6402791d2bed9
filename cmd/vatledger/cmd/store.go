package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportFormat string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Re-read the text store and replace the in-memory dataset",
	Long: `Re-read the text store. When it yields at least one invoice the loaded
dataset replaces the current one. Malformed records are skipped and
reported; they never abort the import.`,
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the dataset to a file",
	Long: `Export the dataset to a file in one of three formats:

  store   the lossless flat-text store format (re-importable)
  report  a human-readable per-invoice report
  csv     one row per invoice line item

Examples:
  vatledger export backup.txt
  vatledger export faturas.txt --format report
  vatledger export faturas.csv --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Dump the dataset to the binary snapshot",
	Long: `Dump the whole dataset to the bbolt snapshot file. At startup the
snapshot is preferred over the text store whenever it holds clients.`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd, snapshotCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "store", "Export format (store, report, csv)")
}

func runImport(cmd *cobra.Command, args []string) error {
	l, err := openLedger()
	if err != nil {
		return err
	}
	imported, err := l.ImportText()
	if err != nil {
		return err
	}
	fmt.Printf("%d invoices imported\n", imported)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]
	l, err := openLedger()
	if err != nil {
		return err
	}

	switch exportFormat {
	case "store":
		if err := l.ExportText(path); err != nil {
			return err
		}
	case "report", "csv":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if exportFormat == "report" {
			err = l.WriteReport(f)
		} else {
			err = l.ExportCSV(f)
		}
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported export format: %s", exportFormat)
	}

	fmt.Printf("Dataset exported to %s\n", path)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	l, err := openLedger()
	if err != nil {
		return err
	}
	if err := l.SaveSnapshot(); err != nil {
		return err
	}
	fmt.Println("Snapshot saved")
	return nil
}
