package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mvp-joe/project-pir/internal/config"
	"github.com/mvp-joe/project-pir/internal/extractor"
)

// configCmd groups configuration helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect pir configuration",
}

// configShowCmd prints the effective configuration for a tree.
var configShowCmd = &cobra.Command{
	Use:   "show <root>",
	Short: "Print the effective configuration (defaults, file and PIR_* environment merged)",
	Long: `Show prints the configuration extract would use for <root> as YAML.
The output can be saved as <root>/.pir/config.yml and edited.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := extractor.CheckRoot(args[0]); err != nil {
			return err
		}
		cfg, err := loadConfig(extractOptions{rootDir: args[0], configFile: cfgFile})
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return writeConfig(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func writeConfig(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}
