package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seeddb [command]",
	Short: "Seed the food-ordering database with a synthetic demo dataset",
	Long: `Creates the food-ordering schema and fills it with an internally-consistent
synthetic dataset: customers, a fixed product catalog, multi-year order history
and the analytics tables derived from it.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
