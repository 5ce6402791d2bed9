package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/lusitania/vatledger/cmd/vatledger/cmd"
)

func main() {
	// Optional .env in the working directory
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
