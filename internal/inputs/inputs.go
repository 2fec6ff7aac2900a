package inputs

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-version"
)

const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// minAPIVersion is the first API version serving organization scoped variable groups with project references
var minAPIVersion = version.Must(version.NewVersion("5.1"))

// Config holds everything read from the environment before any API call is made
type Config struct {
	Token        string `env:"AZURE_DEVOPS_EXT_PAT,required,notEmpty"`
	Organization string `env:"AZURE_ORGANIZATION,required,notEmpty"`
	Project      string `env:"AZURE_PROJECT,required,notEmpty"`
	GroupName    string `env:"AZURE_VARIABLE_GROUP_NAME,required,notEmpty"`
	Address      string `env:"AZURE_DEVOPS_URL" envDefault:"https://dev.azure.com"`
	APIVersion   string `env:"AZURE_DEVOPS_API_VERSION" envDefault:"7.1"`
	OutputFormat string `env:"AZURE_VARIABLE_GROUP_OUTPUT_FORMAT" envDefault:"json"`
}

// Load parses the passed environment, or the process environment when it is nil
func Load(environment map[string]string) (*Config, error) {
	config := &Config{}

	if err := env.ParseWithOptions(config, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the optional inputs
func (c *Config) Validate() error {
	v, err := version.NewVersion(c.APIVersion)
	if err != nil {
		return fmt.Errorf("failed to parse API version %q: %w", c.APIVersion, err)
	}

	if v.Core().LessThan(minAPIVersion) {
		return fmt.Errorf("API version %s is not supported, must be at least %s", c.APIVersion, minAPIVersion)
	}

	c.OutputFormat = strings.ToLower(c.OutputFormat)

	switch c.OutputFormat {
	case OutputFormatJSON, OutputFormatYAML:
	default:
		return fmt.Errorf("output format %q must be one of %s or %s", c.OutputFormat, OutputFormatJSON, OutputFormatYAML)
	}

	return nil
}
