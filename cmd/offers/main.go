// cmd/offers/main.go
package main

import (
	"fmt"
	"os"

	"github.com/deploymenttheory/go-api-offers-client/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
