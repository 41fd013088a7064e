package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/QuickAct/internal/ai"
	"github.com/Rorical/QuickAct/internal/config"
)

var selectModel bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available models",
	Long: `List the models your API key can use. With --select, pick one and store it
on the active profile (or the one given with --profile).`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := config.NewStore(overrides())
		if err != nil {
			log.Fatalf("Failed to open config: %v", err)
		}
		settings, err := store.RequestSettings()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := config.ValidateAPIKey(settings.APIKey, config.DefaultKeyPrefix); err != nil {
			log.Fatalf("Invalid API key: %v (run: quickact profile edit)", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		ids, err := ai.NewClient().ListModels(ctx, settings.APIKey, settings.BaseURL)
		if err != nil {
			log.Fatalf("Failed to fetch models: %v", err)
		}
		if len(ids) == 0 {
			fmt.Println("No models available")
			return
		}

		if !selectModel {
			for _, id := range ids {
				marker := ""
				if id == settings.ModelID {
					marker = " (selected)"
				}
				fmt.Printf("  %s%s\n", id, marker)
			}
			if settings.ModelID == "" {
				fmt.Printf("\nNo model selected. Suggested: %s (run: quickact models --select)\n", ai.DefaultModel(ids))
			}
			return
		}

		current := settings.ModelID
		if current == "" {
			current = ai.DefaultModel(ids)
		}
		cursor := 0
		for i, id := range ids {
			if id == current {
				cursor = i
			}
		}
		prompt := promptui.Select{
			Label:     "Select model",
			Items:     ids,
			Size:      15,
			CursorPos: cursor,
			Searcher: func(input string, index int) bool {
				return strings.Contains(strings.ToLower(ids[index]), strings.ToLower(input))
			},
			StartInSearchMode: true,
		}
		_, choice, err := prompt.Run()
		if err != nil {
			log.Fatalf("Selection failed: %v", err)
		}

		profile, err := store.SetModel(choice)
		if err != nil {
			log.Fatalf("Failed to save model: %v", err)
		}
		fmt.Printf("Profile '%s' now uses %s\n", profile, choice)
	},
}

func init() {
	modelsCmd.Flags().BoolVar(&selectModel, "select", false, "choose a model interactively and save it")
	rootCmd.AddCommand(modelsCmd)
}
