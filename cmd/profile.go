package cmd

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/QuickAct/internal/config"
	"github.com/Rorical/QuickAct/internal/models"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage API profiles",
	Long:  `Manage API profiles: credentials, model, token budget, default tone and auto-close.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range profileNames(cfg, "") {
			profile := cfg.Profiles[name]
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			printProfile(profile, "    ")
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName := args[0]
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		printProfile(profile, "")
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label: "Profile name",
				Validate: func(s string) error {
					if s == "" {
						return errors.New("name is required")
					}
					return nil
				},
			}
			profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		profile, err := promptProfile(config.Profile{
			BaseURL:     config.DefaultBaseURL,
			MaxTokens:   config.DefaultMaxTokens,
			DefaultTone: string(models.DefaultTone),
		})
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.SetProfile(profileName, profile)
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			profileName = selectProfile(cfg, "Select profile to edit", "")
		}

		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		profile, err = promptProfile(profile)
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.SetProfile(profileName, profile)
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			profileName = selectProfile(cfg, "Select profile to delete", "")
		}

		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		// Confirm deletion
		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		if err := cfg.Delete(profileName); err != nil {
			log.Fatalf("Failed to delete profile: %v", err)
		}
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			if len(profileNames(cfg, cfg.ActiveProfile)) == 0 {
				fmt.Println("No other profiles available to switch to")
				return
			}
			profileName = selectProfile(cfg, "Select profile to switch to", cfg.ActiveProfile)
		}

		if err := cfg.Use(profileName); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

func init() {
	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}

func printProfile(p config.Profile, indent string) {
	model := p.Model
	if model == "" {
		model = "Not selected"
	}
	fmt.Printf("%sModel: %s\n", indent, model)
	if p.BaseURL != "" {
		fmt.Printf("%sBase URL: %s\n", indent, p.BaseURL)
	}
	hasKey := "Not set"
	if p.APIKey != "" {
		hasKey = "Set (hidden for security)"
	}
	fmt.Printf("%sAPI Key: %s\n", indent, hasKey)
	fmt.Printf("%sMax Tokens: %d\n", indent, config.ClampMaxTokens(p.MaxTokens))
	fmt.Printf("%sDefault Tone: %s\n", indent, config.NormalizeTone(p.DefaultTone).Label())
	fmt.Printf("%sAuto-close: %t\n", indent, p.AutoClose)
}

// profileNames lists profile names in order, leaving out exclude.
func profileNames(cfg *config.Config, exclude string) []string {
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		if name != exclude {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func selectProfile(cfg *config.Config, label, exclude string) string {
	names := profileNames(cfg, exclude)
	if len(names) == 0 {
		log.Fatalf("No profiles available")
	}
	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

// promptProfile asks for every profile field, starting from p.
func promptProfile(p config.Profile) (config.Profile, error) {
	apiKeyPrompt := promptui.Prompt{
		Label:   "API Key",
		Default: p.APIKey,
		Mask:    '*',
		Validate: func(s string) error {
			if s == "" {
				return nil
			}
			return config.ValidateAPIKey(s, config.DefaultKeyPrefix)
		},
	}
	apiKey, err := apiKeyPrompt.Run()
	if err != nil {
		return p, err
	}
	p.APIKey = apiKey

	modelPrompt := promptui.Prompt{
		Label:   "Model (empty to pick with 'quickact models --select')",
		Default: p.Model,
	}
	if p.Model, err = modelPrompt.Run(); err != nil {
		return p, err
	}

	baseURLPrompt := promptui.Prompt{
		Label:   "Base URL",
		Default: p.BaseURL,
	}
	if p.BaseURL, err = baseURLPrompt.Run(); err != nil {
		return p, err
	}

	maxTokensPrompt := promptui.Prompt{
		Label:   fmt.Sprintf("Max tokens (%d-%d)", config.MinMaxTokens, config.MaxMaxTokens),
		Default: strconv.Itoa(config.ClampMaxTokens(p.MaxTokens)),
		Validate: func(s string) error {
			_, err := strconv.Atoi(s)
			return err
		},
	}
	raw, err := maxTokensPrompt.Run()
	if err != nil {
		return p, err
	}
	n, _ := strconv.Atoi(raw)
	p.MaxTokens = config.ClampMaxTokens(n)

	tones := models.Tones()
	labels := make([]string, len(tones))
	cursor := 0
	current := config.NormalizeTone(p.DefaultTone)
	for i, t := range tones {
		labels[i] = t.Label()
		if t == current {
			cursor = i
		}
	}
	tonePrompt := promptui.Select{
		Label:     "Default tone",
		Items:     labels,
		CursorPos: cursor,
	}
	idx, _, err := tonePrompt.Run()
	if err != nil {
		return p, err
	}
	p.DefaultTone = string(tones[idx])

	autoCursor := 1
	if p.AutoClose {
		autoCursor = 0
	}
	autoClosePrompt := promptui.Select{
		Label:     "Hide automatically after tone changes and drafts",
		Items:     []string{"Yes", "No"},
		CursorPos: autoCursor,
	}
	idx, _, err = autoClosePrompt.Run()
	if err != nil {
		return p, err
	}
	p.AutoClose = idx == 0

	return p, nil
}
