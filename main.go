package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Aashish23092/soil-health-scanner/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "soilscan",
	Short: "Soil Health Card scanner",
	Long:  "Reads government Soil Health Cards from photos or PDFs, grades the readings against crop standards and prices a fertilizer plan.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "soilscan: load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "soilscan: init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
