package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newJurisdictionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jurisdiction",
		Short: "Manage jurisdictions (control groups, tiers, clusters)",
	}
	cmd.AddCommand(
		newJurisdictionGetCmd(),
		newJurisdictionCreateCmd(),
		newJurisdictionEditCmd(),
		newJurisdictionProvisionCmd(),
		newJurisdictionDecommissionCmd(),
	)
	return cmd
}

func newJurisdictionGetCmd() *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch one jurisdiction, or all if --id is omitted",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/v1/jurisdictions"
			if id != 0 {
				path = fmt.Sprintf("/v1/jurisdictions/%d", id)
			}
			out, err := call("GET", path, nil)
			if err != nil {
				return err
			}
			return printResult(out)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "jurisdiction id")
	return cmd
}

func newJurisdictionCreateCmd() *cobra.Command {
	var name string
	var typeID, templateID int64
	var parentID int64
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new jurisdiction from a configuration template",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"name":        name,
				"type_id":     typeID,
				"template_id": templateID,
			}
			if parentID != 0 {
				body["parent_id"] = parentID
			}
			out, err := call("POST", "/v1/jurisdictions", body)
			if err != nil {
				return err
			}
			return printResult(out)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "jurisdiction name (required)")
	cmd.Flags().Int64Var(&typeID, "type-id", 0, "jurisdiction type id (required)")
	cmd.Flags().Int64Var(&templateID, "template-id", 0, "configuration template id (required)")
	cmd.Flags().Int64Var(&parentID, "parent-id", 0, "parent jurisdiction id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type-id")
	_ = cmd.MarkFlagRequired("template-id")
	return cmd
}

func newJurisdictionEditCmd() *cobra.Command {
	var id int64
	var name string
	var configurationJSON string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit an inactive jurisdiction's name and/or configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{}
			if name != "" {
				body["name"] = name
			}
			if configurationJSON != "" {
				var cfg map[string]any
				if err := json.Unmarshal([]byte(configurationJSON), &cfg); err != nil {
					return fmt.Errorf("error parsing --configuration as JSON: %w", err)
				}
				body["configuration"] = cfg
			}
			out, err := call("PUT", fmt.Sprintf("/v1/jurisdictions/%d", id), body)
			if err != nil {
				return err
			}
			return printResult(out)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "jurisdiction id (required)")
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&configurationJSON, "configuration", "", "configuration overrides as a JSON object")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newJurisdictionProvisionCmd() *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Begin provisioning a jurisdiction's cloud resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := call("PUT", fmt.Sprintf("/v1/jurisdictions/%d/provision", id), nil)
			if err != nil {
				return err
			}
			return printResult(out)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "jurisdiction id (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newJurisdictionDecommissionCmd() *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "decommission",
		Short: "Begin tearing down a jurisdiction's cloud resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := call("PUT", fmt.Sprintf("/v1/jurisdictions/%d/decommission", id), nil)
			if err != nil {
				return err
			}
			return printResult(out)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "jurisdiction id (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
