package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phanxgames/xrinput/tracker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".config/xrbridge"
)

func Execute() error {
	return newRootCmd().Execute()
}

// app is the state shared by subcommands.
type app struct {
	v          *viper.Viper
	configPath string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	rootCmd := &cobra.Command{
		Use:           "xrbridge",
		Short:         "xrbridge: talk to a tracked stylus and eye tracker",
		Long:          "xrbridge monitors pose reports from a stylus and eye tracker, emits synthetic reports for testing, and sends vibration and XR mode commands.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.readConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $HOME/"+configDir+"/config.toml)")
	flags.String("mode", "", "transport: udp or websocket")
	flags.String("host", "", "tracker host")
	flags.Int("port", 0, "tracker port")
	for key, name := range map[string]string{
		"tracker.mode": "mode",
		"tracker.host": "host",
		"tracker.port": "port",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(a),
		newMonitorCmd(a),
		newEmitCmd(a),
		newVibrateCmd(a),
		newXRModeCmd(a),
	)
	return rootCmd
}

func (a *app) readConfig() error {
	if a.configPath != "" {
		a.v.SetConfigFile(a.configPath)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.configPath, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	a.v.SetConfigName(configName)
	a.v.SetConfigType(configType)
	a.v.AddConfigPath(filepath.Join(home, configDir))
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}
	return nil
}

func (a *app) trackerConfig() (tracker.Config, error) {
	return tracker.LoadConfig(a.v)
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, configDir, configName+"."+configType), nil
}
