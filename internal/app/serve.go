package app

import (
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != 0 {
				cfg.Serve.Port = port
			}
			return RunServer(cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides config)")
	return cmd
}
