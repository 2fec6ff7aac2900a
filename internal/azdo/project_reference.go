package azdo

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// addProjectReference returns a copy of group that references the configured project exactly once
func (c *Client) addProjectReference(group *VariableGroup) (*VariableGroup, error) {
	ref := &VariableGroup{}

	if err := copier.CopyWithOption(ref, group, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to copy variable group %q: %w", group.Name, err)
	}

	if ref.VariableGroupProjectReferences == nil {
		ref.VariableGroupProjectReferences = []ProjectReferenceEntry{}
	}

	for _, r := range ref.VariableGroupProjectReferences {
		if r.ProjectReference != nil && r.ProjectReference.Name == c.project {
			return ref, nil
		}
	}

	ref.VariableGroupProjectReferences = append(ref.VariableGroupProjectReferences, ProjectReferenceEntry{
		Name: ref.Name,
		ProjectReference: &ProjectReference{
			Name: c.project,
		},
	})

	return ref, nil
}
