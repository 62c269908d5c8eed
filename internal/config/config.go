package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultURLTemplate  = "https://www.advancedinstaller.com/downloads/%s/advinst.msi"
	DefaultArchitecture = "x86"
	DefaultEngine       = "msiexec"
	DefaultRegisterCOM  = false
	DefaultVerbose      = false
)

// Fixed identity and environment contract constants
const (
	// ToolName is the store key tool name
	ToolName = "advinst"

	// ExecutableName is the tool executable under bin/<arch>/
	ExecutableName = "AdvancedInstaller.com"

	// OverrideURLEnv, when set, is used verbatim as the payload source
	OverrideURLEnv = "ADVINST_DOWNLOAD_URL"

	// LicenseEnv supplies the license key without putting it on the command line
	LicenseEnv = "ADVINST_LICENSE"

	// RootEnvVar is exported with the resolved installation root
	RootEnvVar = "ADVINST_ROOT"

	// TargetsEnvVar is exported with the MSBuild targets path
	TargetsEnvVar = "ADVINST_MSBUILD_TARGETS"

	// MSBuildTargetsRel is the targets directory relative to the root
	MSBuildTargetsRel = "ProgramFilesFolder/MSBuild/Caphyon/Advanced Installer"
)

// Holds the configuration options for advup
type Config struct {
	// Requested Advanced Installer version (free-form, e.g., "19" or "19.5.1")
	Version string

	// License key to register; empty runs unlicensed
	License string

	// Register the COM automation interface
	RegisterCOM bool

	// Target architecture inside the extracted image (cache key component)
	Architecture string

	// Store directory; empty uses the user cache directory
	CacheDir string

	// Download URL template with a %s verb for the version
	URLTemplate string

	// Installer engine executable
	Engine string

	// Enable verbose output
	Verbose bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Version:      viper.GetString("version"),
		License:      viper.GetString("license"),
		RegisterCOM:  viper.GetBool("register_com"),
		Architecture: viper.GetString("arch"),
		CacheDir:     viper.GetString("cache_dir"),
		URLTemplate:  viper.GetString("url_template"),
		Engine:       viper.GetString("engine"),
		Verbose:      viper.GetBool("verbose"),
	}

	// Apply defaults if not set
	if cfg.Architecture == "" {
		cfg.Architecture = DefaultArchitecture
	}

	if cfg.URLTemplate == "" {
		cfg.URLTemplate = DefaultURLTemplate
	}

	if cfg.Engine == "" {
		cfg.Engine = DefaultEngine
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version not specified")
	}

	if strings.Count(c.URLTemplate, "%s") != 1 {
		return fmt.Errorf("invalid url template: %s", c.URLTemplate)
	}

	return nil
}
