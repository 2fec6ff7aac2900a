package action

import (
	_ "embed"
	"fmt"

	"github.com/takescoop/azure-devops-variable-group-action/internal/azdo"
	yaml "gopkg.in/yaml.v2"
)

//go:embed variables.yaml
var defaultVariables []byte

// ManagedVariable is an environment variable synced into the variable group
type ManagedVariable struct {
	Name string `yaml:"name"`
	// Secret defaults to true when unset
	Secret *bool `yaml:"secret,omitempty"`
}

// IsSecret reports whether the variable is stored as a secret
func (mv ManagedVariable) IsSecret() bool {
	return mv.Secret == nil || *mv.Secret
}

// DefaultVariables returns the variables managed by this action
func DefaultVariables() ([]ManagedVariable, error) {
	return ParseVariables(defaultVariables)
}

// ParseVariables decodes a YAML list of managed variables
func ParseVariables(b []byte) ([]ManagedVariable, error) {
	var vars []ManagedVariable

	if err := yaml.UnmarshalStrict(b, &vars); err != nil {
		return nil, fmt.Errorf("failed to parse managed variables: %w", err)
	}

	seen := make(map[string]bool, len(vars))

	for i, v := range vars {
		if v.Name == "" {
			return nil, fmt.Errorf("managed variable %d has no name", i)
		}

		if seen[v.Name] {
			return nil, fmt.Errorf("managed variable %q is listed more than once", v.Name)
		}

		seen[v.Name] = true
	}

	return vars, nil
}

// BuildVariables reads every managed variable from getenv. Unset variables are synced as empty strings.
// Non-empty secret values are passed to mask when it is set.
func BuildVariables(vars []ManagedVariable, getenv func(string) string, mask func(string), log Logger) map[string]azdo.Variable {
	variables := make(map[string]azdo.Variable, len(vars))

	for _, mv := range vars {
		value := getenv(mv.Name)
		secret := mv.IsSecret()

		variables[mv.Name] = azdo.NewVariable(value, secret)

		if value != "" && secret {
			if mask != nil {
				mask(value)
			}

			log.Infof("Will set %s=<redacted>", mv.Name)
		} else {
			log.Infof("Will set %s=%s", mv.Name, value)
		}
	}

	return variables
}
