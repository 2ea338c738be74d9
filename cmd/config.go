package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/phanxgames/xrinput/tracker"
	"github.com/spf13/cobra"
)

const (
	configFileMode = 0o600
	configDirMode  = 0o700
)

// configFile is the TOML layout read back through viper's tracker.* keys.
type configFile struct {
	Tracker tracker.Config `toml:"tracker"`
}

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the xrbridge config file",
	}
	configCmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(a))
	return configCmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		path  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				p, err := defaultConfigPath()
				if err != nil {
					return err
				}
				path = p
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("stat %s: %w", path, err)
				}
			}
			if err := writeConfigFile(path, tracker.DefaultConfig()); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "destination file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.trackerConfig()
			if err != nil {
				return err
			}
			data, err := toml.Marshal(configFile{Tracker: cfg})
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func writeConfigFile(path string, cfg tracker.Config) error {
	data, err := toml.Marshal(configFile{Tracker: cfg})
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, configFileMode); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
