package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/QuickAct/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and open the overlay",
	Long:  `Switch to the specified profile and immediately open the quick action overlay.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		if err := cfg.Use(args[0]); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}

		// Save config with new active profile
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		runOverlay()
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
