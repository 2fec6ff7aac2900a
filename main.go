package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/sethvargo/go-githubactions"

	"github.com/takescoop/azure-devops-variable-group-action/internal/action"
	"github.com/takescoop/azure-devops-variable-group-action/internal/azdo"
	"github.com/takescoop/azure-devops-variable-group-action/internal/inputs"
)

func main() {
	// stdout only carries the variable group
	a := githubactions.New(githubactions.WithWriter(os.Stderr))

	if err := run(context.Background(), env.ToMap(os.Environ()), os.Stdout, a); err != nil {
		a.Fatalf("%s", err)
	}
}

func run(ctx context.Context, environment map[string]string, stdout io.Writer, a *githubactions.Action) error {
	config, err := inputs.Load(environment)
	if err != nil {
		return err
	}

	// add-mask lines are only consumed by the Actions runner, elsewhere they would print the secret
	actions := environment["GITHUB_ACTIONS"] == "true"

	var mask func(string)

	if actions {
		mask = a.AddMask
		mask(config.Token)
	}

	vars, err := action.DefaultVariables()
	if err != nil {
		return err
	}

	sessionID := uuid.New().String()
	a.Debugf("Session ID: %s", sessionID)

	client, err := azdo.NewClient(&azdo.Config{
		Address:      config.Address,
		Organization: config.Organization,
		Project:      config.Project,
		Token:        config.Token,
		APIVersion:   config.APIVersion,
		SessionID:    sessionID,
		Logger:       a,
	})
	if err != nil {
		return fmt.Errorf("failed to create Azure DevOps client: %w", err)
	}

	group, err := action.Run(ctx, client, &action.RunConfig{
		GroupName: config.GroupName,
		Variables: vars,
		Getenv: func(key string) string {
			return environment[key]
		},
		Mask: mask,
	}, a)
	if err != nil {
		return err
	}

	if err := action.WriteVariableGroup(stdout, group, config.OutputFormat); err != nil {
		return err
	}

	if actions {
		b, err := json.Marshal(group)
		if err != nil {
			return fmt.Errorf("failed to convert variable group to JSON: %w", err)
		}

		a.SetOutput("variable_group_id", strconv.Itoa(group.ID))
		a.SetOutput("variable_group", string(b))
	}

	return nil
}
