package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rorical/QuickAct/internal/ai"
	"github.com/Rorical/QuickAct/internal/clipboard"
	"github.com/Rorical/QuickAct/internal/config"
	"github.com/Rorical/QuickAct/internal/core"
	"github.com/Rorical/QuickAct/internal/logging"
	"github.com/Rorical/QuickAct/internal/models"
	"github.com/Rorical/QuickAct/internal/window"
)

var (
	onceAction string
	onceTone   string
	onceText   string
)

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run one action on the clipboard without the overlay",
	Long: `Read the clipboard (or --text), run one action, copy the result back and
print it. Follows the same auto-close rules as the overlay, so proofreads
wait for the grace period before exiting.`,
	Example: `  quickact once --action proofread
  quickact once --action tone --tone concise
  quickact once --action draft --text "notes for the standup"`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		action, err := models.ParseAction(onceAction)
		if err != nil {
			log.Fatalf("Invalid action: %v", err)
		}

		store, err := config.NewStore(overrides())
		if err != nil {
			log.Fatalf("Failed to open config: %v", err)
		}

		logger := logging.New(os.Stderr, viper.GetBool("debug"))
		head := window.NewHeadless(os.Stderr)
		ctrl := core.NewController(core.Deps{
			Clipboard: clipboard.New(nil),
			AI:        ai.NewClient(),
			Window:    head,
			Notifier:  head,
			Settings:  store,
		},
			core.WithLogger(logger),
			core.WithGracePeriod(gracePeriod()),
			core.WithRunner(func(f func()) { f() }),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		ctrl.Show()
		if onceText != "" {
			ctrl.SetInput(onceText)
		}
		if err := ctrl.SelectAction(action); err != nil {
			log.Fatalf("Invalid action: %v", err)
		}
		if onceTone != "" {
			tone, err := models.ParseTone(onceTone)
			if err != nil {
				log.Fatalf("Invalid tone: %v", err)
			}
			if err := ctrl.SelectTone(tone); err != nil {
				log.Fatalf("Invalid tone: %v", err)
			}
		}

		if err := ctrl.Send(ctx); err != nil {
			log.Fatalf("%v", err)
		}

		snap := ctrl.Snapshot()
		if snap.Result == "" {
			msg := snap.ErrorText
			if snap.ErrorHint != "" {
				msg += " " + snap.ErrorHint
			}
			log.Fatalf("%s failed: %s", action.Label(), msg)
		}
		fmt.Println(snap.Result)
		if snap.ErrorText != "" {
			fmt.Fprintln(os.Stderr, snap.ErrorText)
		}

		if snap.HidePending {
			waitForHide(ctx, head)
		}
	},
}

func waitForHide(ctx context.Context, head *window.Headless) {
	select {
	case <-head.Done():
	case <-ctx.Done():
	}
}

func init() {
	onceCmd.Flags().StringVarP(&onceAction, "action", "a", models.Proofread.String(), "proofread, tone or draft")
	onceCmd.Flags().StringVarP(&onceTone, "tone", "t", "", "tone for --action tone (defaults to the profile's tone)")
	onceCmd.Flags().StringVar(&onceText, "text", "", "text to use instead of the clipboard")
	rootCmd.AddCommand(onceCmd)
}
