package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Run:   runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration value",
	Long: `Persists a configuration value to the config file.

Keys:
  api.base_url           backend API base URL
  api.request_timeout    per-request timeout (e.g. 30s)
  ui.page_size           rows per page in list screens
  log.level              trace, debug, info, warn, error
  storage.endpoint       file bucket endpoint
  storage.max_file_size  upload size cap in bytes`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Run: func(cmd *cobra.Command, args []string) {
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Println(used)
			return
		}
		fmt.Println(defaultConfigPath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}
	return home + "/.vivla-admin/config.yaml"
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	fmt.Println("Configuration")
	fmt.Println("=============")
	fmt.Printf("api.base_url:           %s\n", cfg.APIBaseURL)
	fmt.Printf("api.request_timeout:    %s\n", cfg.RequestTimeout)
	fmt.Printf("ui.page_size:           %d\n", cfg.PageSize)
	fmt.Printf("log.level:              %s\n", cfg.LogLevel)
	fmt.Printf("storage.endpoint:       %s\n", cfg.Storage.Endpoint)
	fmt.Printf("storage.max_file_size:  %d\n", cfg.Storage.Limits().MaxFileSize)
	fmt.Printf("storage.allowed_types:  %v\n", cfg.Storage.Limits().AllowedTypes)

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Printf("\nconfig file: %s\n", used)
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	switch key {
	case "api.base_url", "api.request_timeout", "ui.page_size",
		"log.level", "storage.endpoint", "storage.max_file_size":
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	viper.Set(key, value)

	target := viper.ConfigFileUsed()
	if target == "" {
		target = defaultConfigPath()
		if err := os.MkdirAll(target[:len(target)-len("/config.yaml")], 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	if err := viper.WriteConfigAs(target); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ %s = %s (%s)\n", key, value, target)
	return nil
}
