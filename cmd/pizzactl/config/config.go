// Package config manages the pizzactl CLI configuration file: named
// contexts pointing at storefront backends, and the location of the local
// state database.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	AppName        = "pizzactl"
	ConfigFileName = "config"
	ConfigFileType = "yaml"
	StateFileName  = "state.db"
)

// Context is a named backend the CLI can talk to.
type Context struct {
	Name           string `mapstructure:"name"`
	ServerEndpoint string `mapstructure:"server_endpoint"`
}

// CLIConfig is the whole configuration file.
type CLIConfig struct {
	CurrentContext string              `mapstructure:"current_context"`
	Contexts       map[string]*Context `mapstructure:"contexts"`
}

var (
	GlobalConfig *CLIConfig
	CfgFile      string // path of the config file in use
)

// InitConfig points viper at the config file (flag-provided or the default
// under $HOME/.pizzactl) and unmarshals it. A missing file is fine; it is
// created on the first save.
func InitConfig() error {
	if CfgFile != "" {
		viper.SetConfigFile(CfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		configPath := filepath.Join(home, "."+AppName)

		viper.AddConfigPath(configPath)
		viper.SetConfigName(ConfigFileName)
		viper.SetConfigType(ConfigFileType)

		if err := os.MkdirAll(configPath, 0o750); err != nil {
			return fmt.Errorf("failed to create config directory %s: %w", configPath, err)
		}
		CfgFile = filepath.Join(configPath, ConfigFileName+"."+ConfigFileType)
	}

	viper.SetEnvPrefix(AppName)
	viper.AutomaticEnv()

	GlobalConfig = &CLIConfig{Contexts: make(map[string]*Context)}

	if err := viper.ReadInConfig(); err == nil {
		CfgFile = viper.ConfigFileUsed()
	} else {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(GlobalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if GlobalConfig.Contexts == nil {
		GlobalConfig.Contexts = make(map[string]*Context)
	}
	return nil
}

// SaveConfig writes GlobalConfig back to the config file.
func SaveConfig() error {
	if CfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		CfgFile = filepath.Join(home, "."+AppName, ConfigFileName+"."+ConfigFileType)
	}
	if err := os.MkdirAll(filepath.Dir(CfgFile), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settings := map[string]any{
		"current_context": GlobalConfig.CurrentContext,
		"contexts":        GlobalConfig.Contexts,
	}
	if err := viper.MergeConfigMap(settings); err != nil {
		return fmt.Errorf("failed to merge config for saving: %w", err)
	}
	if err := viper.WriteConfigAs(CfgFile); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", CfgFile, err)
	}
	return nil
}

// GetCurrentContext returns the active context, defaulting to the only
// defined context when none is marked current.
func GetCurrentContext() (*Context, error) {
	if GlobalConfig == nil || GlobalConfig.Contexts == nil {
		return nil, errors.New("config not initialized")
	}
	if GlobalConfig.CurrentContext == "" {
		if len(GlobalConfig.Contexts) == 1 {
			for name, ctx := range GlobalConfig.Contexts {
				GlobalConfig.CurrentContext = name
				return ctx, nil
			}
		}
		return nil, errors.New("no current context set")
	}
	ctx, ok := GlobalConfig.Contexts[GlobalConfig.CurrentContext]
	if !ok {
		return nil, fmt.Errorf("current context %q not found", GlobalConfig.CurrentContext)
	}
	return ctx, nil
}

// StateDBPath is where the durable local state (session, cart,
// preferences) lives, next to the config file.
func StateDBPath() string {
	if CfgFile != "" {
		return filepath.Join(filepath.Dir(CfgFile), StateFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return StateFileName
	}
	return filepath.Join(home, "."+AppName, StateFileName)
}
