package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultLoggingLevel                      = "info"
	defaultLoggingFormat                     = "console"
	defaultTimeoutSeconds                    = 30
	defaultDelayMilliseconds                 = 1000
	defaultModel                             = "gpt-4o"
	defaultAPIKeyEnvironmentVariable         = "SUPACODE_API_KEY"
	defaultServerAddress                     = ":8080"
	requiredEdgeFunctionScheme               = "https"
	rootConfigurationEmptyContentErrorFormat = "root configuration %s is empty"
	rootConfigurationUnmarshalErrorFormat    = "unmarshal root configuration %s: %w"
	edgeFunctionURLErrorFormat               = "%w: %q"
	negativeDelayErrorFormat                 = "simulation.delay_milliseconds must not be negative (got %d)"
)

// ErrInvalidEdgeFunctionURL reports an edge function URL that is not an absolute HTTPS URL.
var ErrInvalidEdgeFunctionURL = errors.New("edge function URL must be an absolute https:// URL")

type Root struct {
	Common     Common     `yaml:"common"`
	Extension  Extension  `yaml:"extension"`
	Simulation Simulation `yaml:"simulation"`
	Server     Server     `yaml:"server"`
}

type Common struct {
	Logging  Logging `yaml:"logging"`
	Defaults struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"defaults"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Extension mirrors the settings the editor extension exposes.
type Extension struct {
	EdgeFunctionURL   string `yaml:"edge_function_url"`
	Model             string `yaml:"model"`
	APIKeyEnv         string `yaml:"api_key_env"`
	InlineCompletions bool   `yaml:"inline_completions"`
}

type Simulation struct {
	DelayMilliseconds int `yaml:"delay_milliseconds"`
}

type Server struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoadRoot parses the provided configuration source, fills defaults and validates it.
func LoadRoot(source RootConfigurationSource) (Root, error) {
	if len(source.Content) == 0 {
		return Root{}, fmt.Errorf(rootConfigurationEmptyContentErrorFormat, source.Reference)
	}

	var rootConfiguration Root
	if err := yaml.Unmarshal(source.Content, &rootConfiguration); err != nil {
		return Root{}, fmt.Errorf(rootConfigurationUnmarshalErrorFormat, source.Reference, err)
	}
	rootConfiguration.applyDefaults()
	if err := rootConfiguration.Validate(); err != nil {
		return Root{}, err
	}
	return rootConfiguration, nil
}

func (root *Root) applyDefaults() {
	if strings.TrimSpace(root.Common.Logging.Level) == "" {
		root.Common.Logging.Level = defaultLoggingLevel
	}
	if strings.TrimSpace(root.Common.Logging.Format) == "" {
		root.Common.Logging.Format = defaultLoggingFormat
	}
	if root.Common.Defaults.TimeoutSeconds <= 0 {
		root.Common.Defaults.TimeoutSeconds = defaultTimeoutSeconds
	}
	if strings.TrimSpace(root.Extension.Model) == "" {
		root.Extension.Model = defaultModel
	}
	if strings.TrimSpace(root.Extension.APIKeyEnv) == "" {
		root.Extension.APIKeyEnv = defaultAPIKeyEnvironmentVariable
	}
	if strings.TrimSpace(root.Server.Address) == "" {
		root.Server.Address = defaultServerAddress
	}
	if len(root.Server.AllowedOrigins) == 0 {
		root.Server.AllowedOrigins = []string{"*"}
	}
	root.Extension.EdgeFunctionURL = strings.TrimSpace(root.Extension.EdgeFunctionURL)
}

func (root Root) Validate() error {
	if root.Simulation.DelayMilliseconds < 0 {
		return fmt.Errorf(negativeDelayErrorFormat, root.Simulation.DelayMilliseconds)
	}
	if root.Extension.EdgeFunctionURL != "" {
		if err := ValidateEdgeFunctionURL(root.Extension.EdgeFunctionURL); err != nil {
			return err
		}
	}
	return nil
}

// SimulatedDelay is the configured latency; an unset value means the default of one second.
func (root Root) SimulatedDelay() time.Duration {
	if root.Simulation.DelayMilliseconds == 0 {
		return defaultDelayMilliseconds * time.Millisecond
	}
	return time.Duration(root.Simulation.DelayMilliseconds) * time.Millisecond
}

func (root Root) Timeout() time.Duration {
	return time.Duration(root.Common.Defaults.TimeoutSeconds) * time.Second
}

// ValidateEdgeFunctionURL accepts only absolute https URLs with a host.
func ValidateEdgeFunctionURL(rawURL string) error {
	trimmed := strings.TrimSpace(rawURL)
	parsed, parseErr := url.Parse(trimmed)
	if parseErr != nil || !strings.EqualFold(parsed.Scheme, requiredEdgeFunctionScheme) || parsed.Host == "" {
		return fmt.Errorf(edgeFunctionURLErrorFormat, ErrInvalidEdgeFunctionURL, rawURL)
	}
	return nil
}
