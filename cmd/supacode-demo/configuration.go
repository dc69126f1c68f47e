package supacodedemo

import (
	"fmt"

	"github.com/temirov/supacode-demo/internal/config"
)

func loadRootConfiguration(configurationPath string) (config.Root, error) {
	configurationLoader, loaderErr := config.NewDefaultRootConfigurationLoader()
	if loaderErr != nil {
		return config.Root{}, fmt.Errorf(configurationLoaderErrorFormat, loaderErr)
	}
	configurationSource, sourceErr := configurationLoader.Load(configurationPath)
	if sourceErr != nil {
		return config.Root{}, fmt.Errorf(configurationSourceErrorFormat, sourceErr)
	}
	rootConfiguration, loadErr := config.LoadRoot(configurationSource)
	if loadErr != nil {
		return config.Root{}, fmt.Errorf(rootConfigurationLoadErrorFormat, configurationSource.Reference, loadErr)
	}
	overriddenConfiguration, overrideErr := config.ApplyEnvironmentOverrides(rootConfiguration)
	if overrideErr != nil {
		return config.Root{}, fmt.Errorf(environmentOverrideErrorFormat, overrideErr)
	}
	return overriddenConfiguration, nil
}
