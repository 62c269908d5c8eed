package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Norgate-AV/advup/internal/command"
	"github.com/Norgate-AV/advup/internal/config"
	"github.com/Norgate-AV/advup/internal/envexport"
	"github.com/Norgate-AV/advup/internal/extract"
	"github.com/Norgate-AV/advup/internal/fetch"
	"github.com/Norgate-AV/advup/internal/provision"
	"github.com/Norgate-AV/advup/internal/register"
	"github.com/Norgate-AV/advup/internal/store"
)

const licenseEnvHint = config.LicenseEnv

var provisionCmd = &cobra.Command{
	Use:          "provision",
	Short:        "Provision Advanced Installer",
	Long:         `Resolve the requested version from the cache or a fresh download, register it, and publish its paths for downstream build steps.`,
	RunE:         runProvision,
	SilenceUsage: true,
}

func runProvision(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadForProvision(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	st, err := store.Open(cfg.CacheDir)
	if err != nil {
		return err
	}
	defer st.Close()

	runner := command.NewRunner()

	p := provision.New(
		provision.Config{
			Tool:         config.ToolName,
			Architecture: cfg.Architecture,
			Executable:   config.ExecutableName,
		},
		provision.Deps{
			Store:     st,
			Fetcher:   fetch.New(cfg.URLTemplate, config.OverrideURLEnv, "", logger),
			Extractor: extract.New(runner, st, cfg.Engine, config.ToolName, cfg.Architecture, logger),
			Registrar: register.New(runner, logger),
			Exporter:  envexport.New(envexport.OSSink{}, config.RootEnvVar, config.TargetsEnvVar, config.MSBuildTargetsRel),
			Path:      envexport.OSSink{},
			Logger:    logger,
		},
	)

	exe, err := p.Provision(provision.Request{
		Version:   cfg.Version,
		License:   cfg.License,
		EnableCOM: cfg.RegisterCOM,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), exe)

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true

	return cfg.Build()
}
