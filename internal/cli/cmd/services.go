package cmd

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

func newServicesCmd(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "services",
		Short: "Manage offered services (providers only)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List offered services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := opts.client().call(cmd.Context(), http.MethodGet, "/api/v1/services", nil)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	}

	var (
		description string
		price       float64
		category    string
	)
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an offered service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"name":        args[0],
				"description": description,
				"price":       price,
				"category":    category,
			}
			data, err := opts.client().call(cmd.Context(), http.MethodPost, "/api/v1/services", body)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	}
	create.Flags().StringVar(&description, "description", "", "service description")
	create.Flags().Float64Var(&price, "price", 0, "service price")
	create.Flags().StringVar(&category, "category", "OTHER", "HAIRCARE, NAILS, SKINCARE, MASSAGE, DIET, FITNESS or OTHER")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an offered service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.ParseUint(args[0], 10, 64); err != nil {
				return err
			}
			_, err := opts.client().call(cmd.Context(), http.MethodDelete, "/api/v1/services/"+args[0], nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
			return nil
		},
	}

	c.AddCommand(list, create, del)
	return c
}
