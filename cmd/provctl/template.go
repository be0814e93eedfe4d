package main

import "github.com/spf13/cobra"

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "template", Short: "Inspect configuration templates"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configuration templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := call("GET", "/v1/configuration_templates", nil)
			if err != nil {
				return err
			}
			return printResult(out)
		},
	})
	return cmd
}
