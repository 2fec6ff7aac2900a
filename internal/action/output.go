package action

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/takescoop/azure-devops-variable-group-action/internal/azdo"
	"github.com/takescoop/azure-devops-variable-group-action/internal/inputs"
	"sigs.k8s.io/yaml"
)

// WriteVariableGroup renders the group to w as indented JSON, or as YAML with the same field names
func WriteVariableGroup(w io.Writer, group *azdo.VariableGroup, format string) error {
	var (
		b   []byte
		err error
	)

	switch format {
	case inputs.OutputFormatYAML:
		b, err = yaml.Marshal(group)
	case inputs.OutputFormatJSON, "":
		b, err = json.MarshalIndent(group, "", "  ")
		b = append(b, '\n')
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal variable group: %w", err)
	}

	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("failed to write variable group: %w", err)
	}

	return nil
}
