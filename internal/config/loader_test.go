package config_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/temirov/supacode-demo/internal/config"
)

const (
	workingDirectory           = "/work"
	homeDirectory              = "/home/demo"
	explicitFileName           = "explicit.yaml"
	missingExplicitFileName    = "missing.yaml"
	explicitLoggingLevel       = "debug"
	workingLoggingLevel        = "warn"
	homeLoggingLevel           = "error"
	embeddedLoggingLevel       = "info"
	configurationTemplate      = "common:\n  logging:\n    level: %s\n    format: console\nextension:\n  edge_function_url: https://demo.supabase.co/functions/v1/ai-assistant\nsimulation:\n  delay_milliseconds: 250\n"
	configurationFilePerm      = 0o644
	configurationDirectoryPerm = 0o755
)

func TestRootConfigurationLoader_Load(t *testing.T) {
	testCases := []struct {
		name                 string
		setup                func(t *testing.T, filesystem afero.Fs) (string, string)
		expectedLoggingLevel string
	}{
		{
			name: "explicit path used when available",
			setup: func(t *testing.T, filesystem afero.Fs) (string, string) {
				path := filepath.Join(workingDirectory, explicitFileName)
				writeConfiguration(t, filesystem, path, explicitLoggingLevel)
				writeConfiguration(t, filesystem, filepath.Join(workingDirectory, "config.yaml"), workingLoggingLevel)
				return path, path
			},
			expectedLoggingLevel: explicitLoggingLevel,
		},
		{
			name: "missing explicit path falls back to working directory",
			setup: func(t *testing.T, filesystem afero.Fs) (string, string) {
				workingPath := filepath.Join(workingDirectory, "config.yaml")
				writeConfiguration(t, filesystem, workingPath, workingLoggingLevel)
				return filepath.Join(workingDirectory, missingExplicitFileName), workingPath
			},
			expectedLoggingLevel: workingLoggingLevel,
		},
		{
			name: "home directory used when working directory has no file",
			setup: func(t *testing.T, filesystem afero.Fs) (string, string) {
				homePath := filepath.Join(homeDirectory, ".supacode-demo", "config.yaml")
				writeConfiguration(t, filesystem, homePath, homeLoggingLevel)
				return "", homePath
			},
			expectedLoggingLevel: homeLoggingLevel,
		},
		{
			name: "embedded configuration used when no files exist",
			setup: func(t *testing.T, filesystem afero.Fs) (string, string) {
				return "", config.EmbeddedRootConfigurationReference
			},
			expectedLoggingLevel: embeddedLoggingLevel,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			filesystem := afero.NewMemMapFs()
			explicitPath, expectedReference := testCase.setup(t, filesystem)

			loader := config.NewRootConfigurationLoader(filesystem, workingDirectory, homeDirectory)
			source, loadErr := loader.Load(explicitPath)
			if loadErr != nil {
				t.Fatalf("load configuration source: %v", loadErr)
			}
			if source.Reference != expectedReference {
				t.Fatalf("expected reference %s, got %s", expectedReference, source.Reference)
			}

			rootConfiguration, parseErr := config.LoadRoot(source)
			if parseErr != nil {
				t.Fatalf("parse root configuration: %v", parseErr)
			}
			if rootConfiguration.Common.Logging.Level != testCase.expectedLoggingLevel {
				t.Fatalf("expected logging level %s, got %s", testCase.expectedLoggingLevel, rootConfiguration.Common.Logging.Level)
			}
		})
	}
}

func writeConfiguration(t *testing.T, filesystem afero.Fs, path string, loggingLevel string) {
	t.Helper()
	if err := filesystem.MkdirAll(filepath.Dir(path), configurationDirectoryPerm); err != nil {
		t.Fatalf("create configuration directory: %v", err)
	}
	content := fmt.Sprintf(configurationTemplate, loggingLevel)
	if err := afero.WriteFile(filesystem, path, []byte(content), configurationFilePerm); err != nil {
		t.Fatalf("write configuration file: %v", err)
	}
}
