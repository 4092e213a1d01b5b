package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
	"github.com/vivla-tech/vivla-guides-sub001/internal/interface/tui"
	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/logging"
	"github.com/vivla-tech/vivla-guides-sub001/internal/storage"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Open the interactive admin screen",
	Long: `Opens the interactive admin screen.

Resource screens:
  homes, rooms, room-types, amenities, brands, categories, suppliers,
  home-inventory, styling-guides, appliance-guides, playbooks,
  technical-plans

Keys:
  n new   e edit   d delete   / search   r reload
  ←/→ page   tab next screen   : palette   ? help   q quit`,
	RunE: runAdmin,
}

var startResource string

func init() {
	rootCmd.AddCommand(adminCmd)

	adminCmd.Flags().StringVarP(&startResource, "resource", "r", "homes",
		"resource screen to open first")
}

func runAdmin(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	// TUI owns the terminal; logs go nowhere unless debugging elsewhere.
	log := logging.Nop()

	client := api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(log),
	)
	bucket := storage.NewBucketClient(cfg.Storage.Endpoint,
		storage.WithLimits(cfg.Storage.Limits()),
		storage.WithLogger(log),
	)

	app := tui.NewApp(client, bucket,
		tui.WithStartResource(api.ResourceType(startResource)),
		tui.WithPageSize(cfg.PageSize),
	)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running admin screen: %w", err)
	}

	return nil
}
