// cmd/config.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexDouze/git-site-clone/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Configure the base directory and the per-host mappings used for cloning repositories.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Long:  `Print the configuration file as it is stored on disk.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		raw, err := store.Raw()
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(raw)
		return err
	},
}

var configBaseCmd = &cobra.Command{
	Use:   "base <path>",
	Short: "Set the base directory for cloning repositories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := config.ExpandPath(args[0])
		if err != nil {
			return err
		}

		return updateConfig(func(cfg *config.Config) {
			cfg.SetBase(base)
			log.Infof("Base directory set to %s", base)
		})
	},
}

var configMappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Configure per-host directories",
	Long: `A mapping replaces <base>/<host> with the given directory for every
repository hosted on <host>. Hosts are matched exactly.`,
}

var configMappingsAddCmd = &cobra.Command{
	Use:   "add <host> <path>",
	Short: "Add or replace the mapping for a host",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		host := args[0]
		if err := validateHost(host); err != nil {
			return err
		}

		path, err := config.ExpandPath(args[1])
		if err != nil {
			return err
		}

		return updateConfig(func(cfg *config.Config) {
			cfg.AddMapping(host, path)
			log.Infof("Mapped %s to %s", host, path)
		})
	},
}

var configMappingsRemoveCmd = &cobra.Command{
	Use:   "remove <host>",
	Short: "Remove the mapping for a host",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		host := args[0]
		return updateConfig(func(cfg *config.Config) {
			if _, ok := cfg.Mapping(host); !ok {
				log.Infof("No mapping for %s", host)
			}
			cfg.RemoveMapping(host)
		})
	},
}

// updateConfig loads the configuration, applies mutate and stores the result
func updateConfig(mutate func(cfg *config.Config)) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	mutate(cfg)

	if err := store.Save(cfg); err != nil {
		return fmt.Errorf("failed to store configuration: %w", err)
	}
	return nil
}

// validateHost rejects mapping keys that cannot match a parsed URL host
func validateHost(host string) error {
	if host == "" {
		return fmt.Errorf("host must not be empty")
	}
	if strings.ContainsAny(host, "/:@ \t") {
		return fmt.Errorf("invalid host %q: expected a plain hostname such as github.com", host)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configBaseCmd)
	configCmd.AddCommand(configMappingsCmd)
	configMappingsCmd.AddCommand(configMappingsAddCmd)
	configMappingsCmd.AddCommand(configMappingsRemoveCmd)
}
