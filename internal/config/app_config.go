// Package config loads application configuration defaults from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/tvaleev/gitstructure/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds configuration defaults for the tool.
type ApplicationConfiguration struct {
	Structure StructureConfiguration `mapstructure:"structure"`
}

// StructureConfiguration defines defaults for the structure command.
type StructureConfiguration struct {
	Format    string              `mapstructure:"format"`
	Indent    IndentConfiguration `mapstructure:"indent"`
	Exclude   []string            `mapstructure:"exclude"`
	Enumerate EnumerateDefaults   `mapstructure:"enumerate"`
	Clipboard *bool               `mapstructure:"clipboard"`
	Tokens    TokenConfiguration  `mapstructure:"tokens"`
}

// IndentConfiguration configures the YAML renderer's indentation.
type IndentConfiguration struct {
	Type  string `mapstructure:"type"`
	Width *int   `mapstructure:"width"`
}

// EnumerateDefaults configures the default Git file states to report.
type EnumerateDefaults struct {
	Others          *bool `mapstructure:"others"`
	Stage           *bool `mapstructure:"stage"`
	Cached          *bool `mapstructure:"cached"`
	ExcludeStandard *bool `mapstructure:"exclude_standard"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from the global and local
// files, with local values overriding global ones. Missing files are not an
// error.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged.Structure.Exclude = utils.DeduplicatePatterns(merged.Structure.Exclude)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Structure = result.Structure.merge(override.Structure)
	return result
}

func (config StructureConfiguration) merge(override StructureConfiguration) StructureConfiguration {
	result := config
	if override.Format != "" {
		result.Format = override.Format
	}
	result.Indent = result.Indent.merge(override.Indent)
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	result.Enumerate = result.Enumerate.merge(override.Enumerate)
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (config IndentConfiguration) merge(override IndentConfiguration) IndentConfiguration {
	result := config
	if override.Type != "" {
		result.Type = override.Type
	}
	if override.Width != nil {
		width := *override.Width
		result.Width = &width
	}
	return result
}

func (config EnumerateDefaults) merge(override EnumerateDefaults) EnumerateDefaults {
	result := config
	if override.Others != nil {
		result.Others = cloneBool(override.Others)
	}
	if override.Stage != nil {
		result.Stage = cloneBool(override.Stage)
	}
	if override.Cached != nil {
		result.Cached = cloneBool(override.Cached)
	}
	if override.ExcludeStandard != nil {
		result.ExcludeStandard = cloneBool(override.ExcludeStandard)
	}
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
