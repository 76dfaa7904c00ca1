package cmd

import (
	"fmt"
	"net/url"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardsmith/internal/config"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the cardsmith configuration",
	Long:  `Commands for managing the configuration file at XDG_CONFIG_HOME/cardsmith/config.toml.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file with default values",
	Run: func(cmd *cobra.Command, args []string) {
		// The root command already loaded, and if needed created, the config
		fmt.Println("Config file initialized at:", config.GetConfigFilePath())
		fmt.Println("Export caches are kept in:", config.GetCacheDir())
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		label := colorize.New(colorize.FgCyan).SprintFunc()
		fmt.Println(label("Config file:      "), config.GetConfigFilePath())
		fmt.Println(label("Image base URL:   "), cfg.ImageBaseURL)
		fmt.Println(label("Search depth:     "), cfg.SearchDepth)
		fmt.Println(label("Output directory: "), cfg.OutputDir)
		fmt.Println(label("Log level:        "), cfg.LogLevel)
		if cfg.PoolDescription != "" {
			fmt.Println(label("Pool description: "), cfg.PoolDescription)
		}
	},
}

// configSetBaseURLCmd represents the config set-base-url command
var configSetBaseURLCmd = &cobra.Command{
	Use:   "set-base-url [url]",
	Short: "Set the base URL of exported card images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL := args[0]

		u, err := url.Parse(baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("not an absolute URL: %s", baseURL)
		}

		if err := config.SetImageBaseURL(baseURL); err != nil {
			return fmt.Errorf("error setting image base URL: %v", err)
		}

		fmt.Printf("Image base URL set to: %s\n", baseURL)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetBaseURLCmd)
}
