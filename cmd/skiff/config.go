// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skiffworks/skiff/internal/config"
	"github.com/skiffworks/skiff/internal/issue"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage skiff host configuration",
	Long: `Manage skiff host configuration.

Configuration is stored in:
  - Linux: ~/.config/skiff/config.cue
  - macOS: ~/Library/Application Support/skiff/config.cue
  - Windows: %APPDATA%\skiff\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context())
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})
}

func showConfig(ctx context.Context) error {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgDir, dirErr := config.ConfigDir()
	if dirErr == nil {
		fmt.Printf("%s: %s\n", SubtitleStyle.Render("Config dir"), cfgDir)
	}
	fmt.Println()

	fmt.Printf("%s: %t\n", SubtitleStyle.Render("ui.verbose"), cfg.UI.Verbose)
	fmt.Printf("%s: %s\n", SubtitleStyle.Render("ui.color_scheme"), cfg.UI.ColorScheme)

	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(cfgDir + string(os.PathSeparator) + config.ConfigFileName + "." + config.ConfigFileExt)
	return nil
}
