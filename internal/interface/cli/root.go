// Package cli wires the vivla-admin commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vivla-tech/vivla-guides-sub001/internal/application"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vivla-admin",
	Short: "Admin client for the vivla-guides backend",
	Long: `vivla-admin manages homes, rooms, inventory, suppliers and guides
through the vivla-guides REST API.

Getting started:
  vivla-admin admin                 open the interactive admin screen
  vivla-admin data list homes       list homes
  vivla-admin data create suppliers --payload '{...}'
  vivla-admin config show           inspect configuration`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot locate home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home + "/.vivla-admin")
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("VIVLA_ADMIN")
	viper.AutomaticEnv()

	// Missing config file is fine; defaults and env cover everything.
	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadConfig resolves the effective configuration from defaults, the config
// file, and the environment.
func loadConfig() *application.Config {
	cfg := application.DefaultConfig()

	if v := viper.GetString("api.base_url"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := viper.GetDuration("api.request_timeout"); v > 0 {
		cfg.RequestTimeout = v
	}
	if v := viper.GetInt("ui.page_size"); v > 0 {
		cfg.PageSize = v
	}
	if v := viper.GetString("log.level"); v != "" {
		cfg.LogLevel = v
	}
	if v := viper.GetString("storage.endpoint"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := viper.GetInt64("storage.max_file_size"); v > 0 {
		cfg.Storage.MaxFileSize = v
	}
	if v := viper.GetStringSlice("storage.allowed_types"); len(v) > 0 {
		cfg.Storage.AllowedTypes = v
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg
}
