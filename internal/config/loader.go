package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Loader handles configuration loading from various sources
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForProvision loads configuration for a provisioning run
func (l *Loader) LoadForProvision(cmd *cobra.Command) (*Config, error) {
	l.setupViperDefaults()
	l.loadGlobalConfig()
	l.loadLocalConfig()
	l.bindEnvironment()
	l.bindCommandFlags(cmd)

	return Load()
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("arch", DefaultArchitecture)
	viper.SetDefault("url_template", DefaultURLTemplate)
	viper.SetDefault("engine", DefaultEngine)
	viper.SetDefault("register_com", DefaultRegisterCOM)
	viper.SetDefault("verbose", DefaultVerbose)
}

// loadGlobalConfig loads global configuration from APPDATA
func (l *Loader) loadGlobalConfig() {
	appdata := os.Getenv("APPDATA")
	if appdata != "" {
		globalDir := filepath.Join(appdata, "advup")

		for _, ext := range []string{"yml", "yaml", "json", "toml"} {
			globalPath := filepath.Join(globalDir, "config."+ext)

			if _, err := os.Stat(globalPath); err == nil {
				viper.SetConfigFile(globalPath)

				if err := viper.ReadInConfig(); err == nil {
					break
				}
			}
		}
	}
}

// loadLocalConfig loads local configuration found from the working directory
func (l *Loader) loadLocalConfig() {
	cwd, err := os.Getwd()
	if err != nil {
		return // silently ignore, Load() will handle validation
	}

	localPath := FindLocalConfig(cwd)
	if localPath != "" {
		viper.SetConfigFile(localPath)
		_ = viper.ReadInConfig()
	}
}

// bindEnvironment binds secrets that should not appear on the command line
func (l *Loader) bindEnvironment() {
	_ = viper.BindEnv("license", LicenseEnv)
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	_ = viper.BindPFlag("version", cmd.Flags().Lookup("advinst-version"))
	_ = viper.BindPFlag("license", cmd.Flags().Lookup("license"))
	_ = viper.BindPFlag("register_com", cmd.Flags().Lookup("register-com"))
	_ = viper.BindPFlag("arch", cmd.Flags().Lookup("arch"))
	_ = viper.BindPFlag("cache_dir", cmd.Flags().Lookup("cache-dir"))
	_ = viper.BindPFlag("url_template", cmd.Flags().Lookup("url-template"))
	_ = viper.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))
}
