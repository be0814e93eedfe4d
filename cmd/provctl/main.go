// Command provctl is a thin cobra client over the provisioner's HTTP
// surface (pkg/httpapi). It carries no business logic of its own; every
// subcommand is a single HTTP call whose response is printed as JSON.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var apiAddr string

func main() {
	root := &cobra.Command{
		Use:   "provctl",
		Short: "Operate the infrastructure provisioner over its HTTP API",
	}
	root.PersistentFlags().StringVar(&apiAddr, "api-addr", envOr("PROVCTL_API_ADDR", "http://localhost:8080"), "provisioner-api base address")

	root.AddCommand(
		newJurisdictionCmd(),
		newJurisdictionTypeCmd(),
		newTemplateCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
