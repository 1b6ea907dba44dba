package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/hyperstore/internal/config"
)

// skipConfigLoad marks commands that must run even when the config file is
// missing or invalid.
const skipConfigLoad = "skip-config-load"

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented default config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigLoad: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return usageErrorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode(a.cfg); err != nil {
				return err
			}
			return encoder.Close()
		},
	}

	setCmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set one setting in the config file, keeping comments",
		Long: `Set one dotted setting, such as cache.ttl or database.path, in the config
file named by --config (default ./.hyperstore/config.yaml). The file is
created if needed.

Examples:
  hyperstore config set database.path /var/lib/hyperstore/meta.db
  hyperstore config set tracing.enabled true`,
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{skipConfigLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SaveSetting(a.configPath(), args[0], args[1]); err != nil {
				return usageErrorf("%v", err)
			}
			return nil
		},
	}

	configCmd.AddCommand(initCmd, showCmd, setCmd)
	return configCmd
}

// configPath is the file config init and config set write to.
func (a *app) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return config.LocalConfigPath
}
