package action

import (
	"context"
	"fmt"

	"github.com/takescoop/azure-devops-variable-group-action/internal/azdo"
)

// VariableGroupType is the type of variable groups stored in Azure DevOps itself, as opposed to Key Vault backed groups
const VariableGroupType = "Vsts"

type Logger interface {
	Infof(msg string, args ...any)
}

type VariableGroupClient interface {
	GetVariableGroup(ctx context.Context, name string) (*azdo.VariableGroup, error)
	AddVariableGroup(ctx context.Context, group *azdo.VariableGroup) (*azdo.VariableGroup, error)
	UpdateVariableGroup(ctx context.Context, id int, group *azdo.VariableGroup) (*azdo.VariableGroup, error)
}

type RunConfig struct {
	GroupName string
	Variables []ManagedVariable
	Getenv    func(string) string
	// Mask registers a secret value with the log consumer. Nil when nothing consumes masks.
	Mask func(string)
}

// Run creates the variable group, or merges the managed variables into it if it already exists
func Run(ctx context.Context, client VariableGroupClient, config *RunConfig, log Logger) (*azdo.VariableGroup, error) {
	variables := BuildVariables(config.Variables, config.Getenv, config.Mask, log)

	log.Infof("Searching for '%s' variable group", config.GroupName)

	group, err := client.GetVariableGroup(ctx, config.GroupName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up variable group %q: %w", config.GroupName, err)
	}

	if group == nil {
		log.Infof("Creating a new variable group")

		created, err := client.AddVariableGroup(ctx, &azdo.VariableGroup{
			Type:      VariableGroupType,
			Name:      config.GroupName,
			Variables: variables,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create variable group %q: %w", config.GroupName, err)
		}

		return created, nil
	}

	log.Infof("Updating existing variable group (id %d)", group.ID)

	MergeVariables(group, variables)

	updated, err := client.UpdateVariableGroup(ctx, group.ID, group)
	if err != nil {
		return nil, fmt.Errorf("failed to update variable group %q (id %d): %w", config.GroupName, group.ID, err)
	}

	return updated, nil
}

// MergeVariables sets variables on the group, overwriting keys it already has and keeping the rest
func MergeVariables(group *azdo.VariableGroup, variables map[string]azdo.Variable) {
	if group.Variables == nil {
		group.Variables = make(map[string]azdo.Variable, len(variables))
	}

	for k, v := range variables {
		group.Variables[k] = v
	}
}
