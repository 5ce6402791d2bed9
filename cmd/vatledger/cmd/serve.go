package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lusitania/vatledger/internal/server"
)

var (
	serverAddr  string
	serverDebug bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server over the ledger.

The API provides endpoints for:
  - GET  /api/v1/clients            - List clients
  - POST /api/v1/clients            - Create a client
  - PUT  /api/v1/clients/:taxid     - Edit a client
  - GET  /api/v1/invoices           - List invoices
  - POST /api/v1/invoices           - Open an invoice
  - GET  /api/v1/invoices/:number   - View an invoice
  - POST /api/v1/invoices/:number/products - Add a product line
  - GET  /api/v1/stats              - Aggregate statistics
  - GET  /api/v1/export             - Dump the store format
  - GET  /api/v1/export/csv         - CSV of all line items
  - GET  /health                    - Health check

Examples:
  vatledger serve
  vatledger serve --address :9000 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default from config)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
}

func runServe(cmd *cobra.Command, args []string) error {
	l, err := openLedger()
	if err != nil {
		return err
	}

	addr := cfg.ListenAddr
	if serverAddr != "" {
		addr = serverAddr
	}
	srvConfig := &server.Config{
		Address:      addr,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		Debug:        serverDebug || cfg.Debug,
	}
	srv := server.NewServer(srvConfig, l, logger)

	// Save a snapshot on shutdown so the next start restores from it.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		if err := l.SaveSnapshot(); err != nil {
			logger.Error().Err(err).Msg("snapshot on shutdown failed")
		}
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", addr)
	return srv.Run()
}
