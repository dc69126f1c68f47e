package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	environmentPrefix                = "SUPACODE"
	edgeFunctionURLKey               = "extension.edge_function_url"
	modelKey                         = "extension.model"
	delayMillisecondsKey             = "simulation.delay_milliseconds"
	serverAddressKey                 = "server.address"
	loggingLevelKey                  = "logging.level"
	loggingFormatKey                 = "logging.format"
	environmentBindingErrorFormat    = "bind environment for %s: %w"
	environmentDelayParseErrorFormat = "parse %s_%s: %w"
	environmentOverrideFailureFormat = "apply environment overrides: %w"
)

var environmentKeys = []string{
	edgeFunctionURLKey,
	modelKey,
	delayMillisecondsKey,
	serverAddressKey,
	loggingLevelKey,
	loggingFormatKey,
}

// ApplyEnvironmentOverrides replaces configured values with SUPACODE_* environment variables,
// e.g. SUPACODE_EXTENSION_EDGE_FUNCTION_URL or SUPACODE_SIMULATION_DELAY_MILLISECONDS.
// A variable that is set but empty clears the value, so an empty edge function URL removes a
// configured endpoint and other empty values fall back to their defaults.
func ApplyEnvironmentOverrides(root Root) (Root, error) {
	environment := viper.New()
	environment.SetEnvPrefix(environmentPrefix)
	environment.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	environment.AllowEmptyEnv(true)
	for _, key := range environmentKeys {
		if err := environment.BindEnv(key); err != nil {
			return Root{}, fmt.Errorf(environmentBindingErrorFormat, key, err)
		}
	}

	if environment.IsSet(edgeFunctionURLKey) {
		root.Extension.EdgeFunctionURL = strings.TrimSpace(environment.GetString(edgeFunctionURLKey))
	}
	if environment.IsSet(modelKey) {
		root.Extension.Model = strings.TrimSpace(environment.GetString(modelKey))
	}
	if environment.IsSet(delayMillisecondsKey) {
		rawDelay := strings.TrimSpace(environment.GetString(delayMillisecondsKey))
		delay := 0
		if rawDelay != "" {
			parsedDelay, castErr := strconv.Atoi(rawDelay)
			if castErr != nil {
				return Root{}, fmt.Errorf(environmentDelayParseErrorFormat, environmentPrefix, environmentVariableSuffix(delayMillisecondsKey), castErr)
			}
			delay = parsedDelay
		}
		root.Simulation.DelayMilliseconds = delay
	}
	if environment.IsSet(serverAddressKey) {
		root.Server.Address = strings.TrimSpace(environment.GetString(serverAddressKey))
	}
	if environment.IsSet(loggingLevelKey) {
		root.Common.Logging.Level = strings.TrimSpace(environment.GetString(loggingLevelKey))
	}
	if environment.IsSet(loggingFormatKey) {
		root.Common.Logging.Format = strings.TrimSpace(environment.GetString(loggingFormatKey))
	}

	root.applyDefaults()
	if err := root.Validate(); err != nil {
		return Root{}, fmt.Errorf(environmentOverrideFailureFormat, err)
	}
	return root, nil
}

func environmentVariableSuffix(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
