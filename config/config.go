// Package config loads mkrun's layered configuration: built-in defaults,
// overridden by a global ~/.mkrun.yaml, overridden by a project ./.mkrun.yaml,
// overridden last by command-line flags set directly on the returned Config.
package config

import (
	"github.com/mkrun-go/mkrun/internal/export"
	"github.com/mkrun-go/mkrun/internal/safety"
	"github.com/mkrun-go/mkrun/internal/shellintegration"
	"github.com/spf13/viper"
)

// Config is the fully merged, ready-to-use configuration for one invocation.
type Config struct {
	MakefilePath string
	Theme        string

	Export           *export.Config
	ShellIntegration *shellintegration.Config
	Safety           *safety.Config
}

// Load resolves global defaults, then merges the global and project config
// files (project wins on conflicts), and returns the combined Config.
// Flags are applied afterward by the caller, directly on the fields.
func Load() (*Config, error) {
	viper.SetDefault("makefile", "Makefile")
	viper.SetDefault("theme", "default")

	viper.SetConfigName(".mkrun")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	// Ignore error if config file doesn't exist.
	_ = viper.ReadInConfig()

	globalV := loadViperFromFile(globalConfigPath())
	projectV := loadViperFromFile(projectConfigPath())

	globalExport, globalExportSet := readExportConfig(globalV)
	projectExport, projectExportSet := readExportConfig(projectV)
	exportCfg := mergeExportConfigs(globalExport, projectExport, globalExportSet, projectExportSet)

	globalShell, globalShellSet := readShellConfig(globalV)
	projectShell, projectShellSet := readShellConfig(projectV)
	shellCfg := mergeShellConfigs(globalShell, projectShell, globalShellSet, projectShellSet)

	globalSafety, globalSafetySet := readSafetyConfig(globalV)
	projectSafety, projectSafetySet := readSafetyConfig(projectV)
	safetyCfg := mergeSafetyConfigs(globalSafety, projectSafety, globalSafetySet, projectSafetySet)

	return &Config{
		MakefilePath:     viper.GetString("makefile"),
		Theme:            viper.GetString("theme"),
		Export:           exportCfg,
		ShellIntegration: shellCfg,
		Safety:           safetyCfg,
	}, nil
}
