package cmd

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rorical/QuickAct/internal/app"
	"github.com/Rorical/QuickAct/internal/config"
	"github.com/Rorical/QuickAct/internal/core"
)

var rootCmd = &cobra.Command{
	Use:   "quickact",
	Short: "Proofread, re-tone or draft the text on your clipboard",
	Long: `QuickAct rewrites the text on your clipboard with a language model and puts
the result back, ready to paste. Press space on the idle line to open it again.`,
	Run: func(cmd *cobra.Command, args []string) {
		runOverlay()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("profile", "", "profile to use instead of the active one")
	flags.String("api-key", "", "OpenRouter API key (overrides the profile)")
	flags.String("model", "", "model ID (overrides the profile)")
	flags.String("base-url", "", "API base URL (overrides the profile)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("log-file", "", "log file (default is quickact.log next to the config file)")
	flags.Duration("grace", core.DefaultGracePeriod, "delay between a result and the automatic hide")
	flags.Bool("no-notify", false, "disable desktop notifications")

	for _, name := range []string{"profile", "api-key", "model", "base-url", "debug", "log-file", "grace", "no-notify"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}

// InitConfig lets QUICKACT_* environment variables stand in for flags,
// e.g. QUICKACT_API_KEY for --api-key.
func InitConfig() {
	viper.SetEnvPrefix("quickact")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func overrides() config.Overrides {
	return config.Overrides{
		Profile: viper.GetString("profile"),
		APIKey:  viper.GetString("api-key"),
		Model:   viper.GetString("model"),
		BaseURL: viper.GetString("base-url"),
	}
}

func gracePeriod() time.Duration {
	if d := viper.GetDuration("grace"); d > 0 {
		return d
	}
	return core.DefaultGracePeriod
}

func appOptions() app.Options {
	return app.Options{
		Overrides:     overrides(),
		GracePeriod:   gracePeriod(),
		Debug:         viper.GetBool("debug"),
		LogFile:       viper.GetString("log-file"),
		Notifications: !viper.GetBool("no-notify"),
	}
}

func runOverlay() {
	application, err := app.NewApplication(appOptions())
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
