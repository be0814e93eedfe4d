package main

import "github.com/spf13/cobra"

func newJurisdictionTypeCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "jurisdiction-type", Short: "Inspect the fixed jurisdiction type tree"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List jurisdiction types",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := call("GET", "/v1/jurisdiction_types", nil)
			if err != nil {
				return err
			}
			return printResult(out)
		},
	})
	return cmd
}
