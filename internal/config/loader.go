package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// EmbeddedRootConfigurationReference identifies the embedded fallback configuration source.
	EmbeddedRootConfigurationReference   = "embedded default configuration"
	explicitConfigurationReadErrorFormat = "read explicit configuration %s: %w"
	workingDirectoryLookupErrorFormat    = "determine working directory: %w"
	homeEnvironmentVariableName          = "HOME"
	configurationFileName                = "config.yaml"
	homeConfigurationDirectoryName       = ".supacode-demo"
)

//go:embed default_root_configuration.yaml
var embeddedRootConfigurationBytes []byte

// RootConfigurationSource holds the raw configuration data and its origin.
type RootConfigurationSource struct {
	Reference string
	Content   []byte
}

// RootConfigurationLoader resolves the configuration file from, in order: an explicit
// path, the working directory, the home directory and finally the embedded default.
type RootConfigurationLoader struct {
	filesystem       afero.Fs
	workingDirectory string
	homeDirectory    string
}

func NewRootConfigurationLoader(filesystem afero.Fs, workingDirectory string, homeDirectory string) RootConfigurationLoader {
	return RootConfigurationLoader{
		filesystem:       filesystem,
		workingDirectory: workingDirectory,
		homeDirectory:    homeDirectory,
	}
}

// NewDefaultRootConfigurationLoader reads from the OS filesystem relative to the process working directory and HOME.
func NewDefaultRootConfigurationLoader() (RootConfigurationLoader, error) {
	workingDirectory, workingDirectoryErr := os.Getwd()
	if workingDirectoryErr != nil {
		return RootConfigurationLoader{}, fmt.Errorf(workingDirectoryLookupErrorFormat, workingDirectoryErr)
	}
	return NewRootConfigurationLoader(afero.NewOsFs(), workingDirectory, os.Getenv(homeEnvironmentVariableName)), nil
}

// Load returns the first readable candidate. A missing explicit file falls through to the
// next candidate; any other read failure of an explicit file is reported.
func (loader RootConfigurationLoader) Load(explicitPath string) (RootConfigurationSource, error) {
	if explicitPath != "" {
		content, readErr := afero.ReadFile(loader.filesystem, explicitPath)
		if readErr == nil {
			return RootConfigurationSource{Reference: explicitPath, Content: content}, nil
		}
		if !errors.Is(readErr, fs.ErrNotExist) && !errors.Is(readErr, fs.ErrPermission) {
			return RootConfigurationSource{}, fmt.Errorf(explicitConfigurationReadErrorFormat, explicitPath, readErr)
		}
	}

	for _, candidatePath := range loader.searchPaths() {
		content, readErr := afero.ReadFile(loader.filesystem, candidatePath)
		if readErr != nil {
			continue
		}
		return RootConfigurationSource{Reference: candidatePath, Content: content}, nil
	}
	return RootConfigurationSource{Reference: EmbeddedRootConfigurationReference, Content: embeddedRootConfigurationBytes}, nil
}

func (loader RootConfigurationLoader) searchPaths() []string {
	var paths []string
	if loader.workingDirectory != "" {
		paths = append(paths, filepath.Join(loader.workingDirectory, configurationFileName))
	}
	if loader.homeDirectory != "" {
		paths = append(paths, filepath.Join(loader.homeDirectory, homeConfigurationDirectoryName, configurationFileName))
	}
	return paths
}
