package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8080"

type options struct {
	server string
	token  string
}

// NewRootCmd builds the appointments CLI.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "appointments",
		Short:         "CLI client for the appointments API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	server := os.Getenv("APPOINTMENTS_URL")
	if server == "" {
		server = defaultServer
	}
	root.PersistentFlags().StringVar(&opts.server, "server", server, "API base URL (env APPOINTMENTS_URL)")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("APPOINTMENTS_TOKEN"), "bearer token (env APPOINTMENTS_TOKEN)")

	root.AddCommand(
		newRegisterCmd(opts),
		newLoginCmd(opts),
		newWhoamiCmd(opts),
		newServicesCmd(opts),
	)
	return root
}

func (o *options) client() *apiClient {
	return &apiClient{
		baseURL: o.server,
		token:   o.token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
