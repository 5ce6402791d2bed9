package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lusitania/vatledger/internal/config"
	"github.com/lusitania/vatledger/internal/ledger"
	"github.com/lusitania/vatledger/internal/store"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	storePath    string
	snapshotPath string

	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vatledger",
	Short: "Manage clients, invoices and VAT for the three Portuguese tax regions",
	Long: `vatledger is a small invoicing engine: it maintains clients and invoices,
computes per-line VAT from the regional rate tables, and persists the whole
dataset to a flat-text store and a binary snapshot.

Examples:
  # Register a client and open an invoice
  vatledger client create --name Ana --region Continente --tax-id 1234
  vatledger invoice create --client 1234 --date 2026-01-15

  # Add a reduced-tier organic food product
  vatledger invoice add-product 1 --type alimentar --code A1 --name "Maçãs" \
    --description "Maçãs biológicas" --price 10 --quantity 2 \
    --tax-tier "Taxa reduzida" --organic --certifications ISO22000,HACCP

  # Inspect and export
  vatledger invoice view 1
  vatledger stats
  vatledger export faturas.csv --format csv`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Text store path (default: clientes.txt)")
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "Snapshot path (default: vatledger.db)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if storePath != "" {
		cfg.StorePath = storePath
	}
	if snapshotPath != "" {
		cfg.SnapshotPath = snapshotPath
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// openLedger builds the stores and loads the dataset.
func openLedger() (*ledger.Ledger, error) {
	text := store.NewTextStore(cfg.StorePath, logger)
	snapshot := store.NewSnapshotStore(cfg.SnapshotPath, logger)
	l := ledger.New(text, snapshot, logger)
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l, nil
}
