package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func newRegisterCmd(opts *options) *cobra.Command {
	var role string
	c := &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"username": args[0], "password": args[1], "role": role}
			data, err := opts.client().call(cmd.Context(), http.MethodPost, "/api/v1/users", body)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	}
	c.Flags().StringVar(&role, "role", "client", "account role, e.g. client or provider")
	return c
}

func newLoginCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Print a bearer token",
		Long:  "Print a bearer token. Use it with: export APPOINTMENTS_TOKEN=$(appointments login alice pw)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"username": args[0], "password": args[1]}
			data, err := opts.client().call(cmd.Context(), http.MethodPost, "/api/v1/tokens", body)
			if err != nil {
				return err
			}
			var resp struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(data, &resp); err != nil {
				return fmt.Errorf("decode token response: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
			return nil
		},
	}
}

func newWhoamiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the principal behind the current token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := opts.client().call(cmd.Context(), http.MethodGet, "/api/v1/me", nil)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	}
}
