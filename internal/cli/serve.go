package cli

import (
	"github.com/spf13/cobra"

	"github.com/avandres/prreview/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the review HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := buildAgent()
		if err != nil {
			return err
		}
		defer cleanup()

		return server.New(a, cfg.Server.Addr).Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
